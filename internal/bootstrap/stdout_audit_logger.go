package bootstrap

import (
	"context"
	"time"

	"go-sirh/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes the administrative audit trail to the
// process log. Deployments needing a durable trail plug a persistent
// implementation behind AuditLogger instead.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	if requestID := contextutil.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	zap.L().Named("audit").Info("audit event", fields...)
}
