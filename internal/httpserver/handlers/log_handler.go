package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"medassist/internal/auth"
	"medassist/internal/models"
	"medassist/internal/store"
)

// MyLogs returns recent audit entries. Regular users see their own; admins
// can pass ?all=1 to see recent entries for everyone.
func MyLogs(logs store.AuditLogs, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const recent = 200
		claims := auth.FromContext(r.Context())
		var (
			entries []models.AuditLog
			err     error
		)
		if r.URL.Query().Get("all") == "1" && claims.HasRole(models.RoleAdmin) {
			entries, err = logs.ListRecent(r.Context(), recent)
		} else {
			entries, err = logs.ListByUser(r.Context(), claims.UserID, recent)
		}
		if err != nil {
			lg.Errorw("audit log list failed", "user", claims.UserID, "error", err)
			respondError(w, "Failed to retrieve audit logs", err)
			return
		}
		respondOK(w, "Audit logs retrieved successfully", entries)
	}
}
