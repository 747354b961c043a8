package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events (startup, shutdown, degraded mode).
// Stdout is the only implementation today; the interface keeps a future sink
// swappable.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
