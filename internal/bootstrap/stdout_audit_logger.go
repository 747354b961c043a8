package bootstrap

import (
	"context"
	"time"

	"go-exitflow/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes the workflow audit trail as structured log lines.
// Request id and actor are pulled from the context when a request-scoped
// caller emits the entry; lifecycle events carry neither.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("actor_id", contextutil.GetActorID(ctx)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
