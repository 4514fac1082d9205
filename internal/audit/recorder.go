package audit

import (
	"context"

	"go.uber.org/zap"

	"medassist/internal/models"
	"medassist/internal/store"
)

// Entry describes one state-mutating operation: who did what to which
// resource.
type Entry struct {
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
	IP           string
}

// Recorder appends immutable audit entries. Audit writes are best-effort:
// a failed write must not roll back the mutation it describes, but it is a
// compliance property of this domain, so failures are logged at error level
// rather than dropped silently.
type Recorder struct {
	logs store.AuditLogs
	lg   *zap.SugaredLogger
}

func NewRecorder(logs store.AuditLogs, lg *zap.SugaredLogger) *Recorder {
	return &Recorder{logs: logs, lg: lg}
}

func (r *Recorder) Record(ctx context.Context, e Entry) {
	entry := models.AuditLog{
		UserID:       e.Actor,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      models.FromAny(e.Details),
	}
	if e.IP != "" {
		ip := e.IP
		entry.IPAddress = &ip
	}
	if err := r.logs.Append(ctx, &entry); err != nil {
		r.lg.Errorw("audit write failed",
			"action", e.Action,
			"resource_type", e.ResourceType,
			"resource_id", e.ResourceID,
			"actor", e.Actor,
			"error", err,
		)
	}
}
