package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medassist/internal/audit"
	"medassist/internal/auth"
	"medassist/internal/store"
	"medassist/pkg/apperror"
)

func ListUsers(users store.Users, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		us, err := users.List(r.Context())
		if err != nil {
			lg.Errorw("user list failed", "error", err)
			respondError(w, "Failed to retrieve users", err)
			return
		}
		respondOK(w, "Users retrieved successfully", us)
	}
}

type updateUserReq struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Institution *string `json:"institution"`
	Role        *string `json:"role" validate:"omitempty,oneof=student instructor admin"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateUser applies admin edits to a user's profile, role, or active flag.
// Users are never hard-deleted; deactivation is the only removal path.
func UpdateUser(users store.Users, rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Failed to update user", apperror.Validation("invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, "Failed to update user", apperror.Validation("%v", err))
			return
		}
		fields := map[string]any{}
		if req.FirstName != nil {
			fields["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			fields["last_name"] = *req.LastName
		}
		if req.Institution != nil {
			fields["institution"] = *req.Institution
		}
		if req.Role != nil {
			fields["role"] = *req.Role
		}
		if req.IsActive != nil {
			fields["is_active"] = *req.IsActive
		}
		if len(fields) == 0 {
			respondError(w, "Failed to update user", apperror.Validation("no fields to update"))
			return
		}
		if err := users.UpdateFields(r.Context(), id, fields); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				respondError(w, "Failed to update user", apperror.ErrNotFound)
				return
			}
			lg.Errorw("user update failed", "user_id", id, "error", err)
			respondError(w, "Failed to update user", err)
			return
		}
		rec.Record(r.Context(), audit.Entry{
			Actor:        auth.UserID(r.Context()),
			Action:       "update_user",
			ResourceType: "user",
			ResourceID:   id,
			Details:      auditableFields(fields),
			IP:           r.RemoteAddr,
		})
		respondOK(w, "User updated successfully", nil)
	}
}
