package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a logger ContextExtractor that annotates log
// records with the current request ID. A tenant request can fan out into
// registry lookup, database creation and schema migration; the shared ID is
// what ties those log lines back together.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if requestID := FromContext(ctx); requestID != "" {
			return slog.String("request_id", requestID), true
		}
		return slog.Attr{}, false
	}
}
