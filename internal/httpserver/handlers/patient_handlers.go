package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"medassist/internal/audit"
	"medassist/internal/auth"
	"medassist/internal/models"
	"medassist/internal/store"
	"medassist/pkg/apperror"
)

type createPatientReq struct {
	PatientID      string     `json:"patient_id" validate:"required"`
	FirstName      string     `json:"first_name" validate:"required"`
	LastName       string     `json:"last_name" validate:"required"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `json:"gender"`
	MedicalHistory *string    `json:"medical_history"`
}

func CreatePatient(patients store.Patients, rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPatientReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Failed to create patient", apperror.Validation("invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, "Failed to create patient", apperror.Validation("%v", err))
			return
		}
		uid := auth.UserID(r.Context())
		p := models.Patient{
			PatientID:      req.PatientID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			DateOfBirth:    req.DateOfBirth,
			Gender:         req.Gender,
			MedicalHistory: req.MedicalHistory,
			CreatedBy:      uid,
		}
		if err := patients.Create(r.Context(), &p); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				respondError(w, "Failed to create patient", apperror.Conflict("patient with this ID already exists"))
				return
			}
			lg.Errorw("patient create failed", "patient_id", req.PatientID, "error", err)
			respondError(w, "Failed to create patient", err)
			return
		}
		rec.Record(r.Context(), audit.Entry{
			Actor:        uid,
			Action:       "create_patient",
			ResourceType: "patient",
			ResourceID:   p.ID,
			Details:      map[string]any{"patient_id": p.PatientID},
			IP:           r.RemoteAddr,
		})
		respondCreated(w, "Patient created successfully", map[string]any{"patient_id": p.ID})
	}
}

// ListPatients returns only patients created by the caller. Pagination is a
// naive in-memory slice over the owned list, matching the observed behavior.
func ListPatients(patients store.Patients, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip := queryInt(r, "skip", 0)
		limit := queryInt(r, "limit", 100)
		ps, err := patients.ListByOwner(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			lg.Errorw("patient list failed", "error", err)
			respondError(w, "Failed to retrieve patients", err)
			return
		}
		respondOK(w, "Patients retrieved successfully", slicePage(ps, skip, limit))
	}
}

func queryInt(r *http.Request, name string, def int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func slicePage[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
