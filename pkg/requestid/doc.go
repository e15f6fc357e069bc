// Package requestid provides HTTP middleware and helper utilities for working
// with request correlation identifiers.
//
// A request ID is a short opaque string that uniquely identifies an incoming
// HTTP request. Propagating the same ID through headers, context and
// structured logs ties together the log records of one tenant request, which
// matters here because a single request can span registry lookup, database
// provisioning and schema migration.
//
// The package offers:
//
//   - Middleware that attaches a request ID to every request. If the client
//     supplies an "X-Request-ID" header its value is validated and reused;
//     otherwise a new UUIDv4 string is generated. The chosen ID is stored in
//     the request context and echoed back in the response header.
//
//   - Context helpers WithContext and FromContext.
//
//   - LoggerExtractor for injecting the request ID into slog attributes via
//     logger.WithContextExtractors.
//
// # Usage
//
//	import (
//		"net/http"
//
//		"github.com/tenantkit/tenantkit/pkg/requestid"
//	)
//
//	mux := http.NewServeMux()
//	mux.Handle("/hello", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		id := requestid.FromContext(r.Context())
//		w.Write([]byte("hello, your request id is " + id))
//	}))
//
//	http.ListenAndServe(":8080", requestid.Middleware(mux))
//
// The package does not return errors. Invalid or empty request IDs supplied
// by a client are silently replaced by a freshly generated UUID.
package requestid
