// Package logger builds configured slog.Logger instances with automatic
// context attribute injection.
//
// Handlers produced here extract request-scoped attributes (tenant
// identifier, request ID) from context on every log call, so operational
// logs from the provisioning pipeline always carry the tenant and database
// they concern:
//
//	log := logger.New(
//	    logger.WithProduction("tenantd"),
//	    logger.WithContextExtractors(
//	        requestid.LoggerExtractor(),
//	        tenant.LoggerExtractor(),
//	    ),
//	)
//
// Attribute helpers such as logger.TenantID and logger.Database keep log
// field names consistent across packages.
package logger
