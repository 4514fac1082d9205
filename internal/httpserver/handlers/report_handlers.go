package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medassist/internal/audit"
	"medassist/internal/auth"
	"medassist/internal/models"
	"medassist/internal/store"
	"medassist/pkg/apperror"
)

type createReportReq struct {
	PatientID  string          `json:"patient_id" validate:"required"`
	ImageID    string          `json:"image_id" validate:"required"`
	StudyType  string          `json:"study_type" validate:"required,oneof=chest_xray abdominal_ct brain_mri spine_mri mammography general"`
	Findings   string          `json:"findings" validate:"required"`
	Impression string          `json:"impression" validate:"required"`
	AIAnalysis json.RawMessage `json:"ai_analysis"`
}

// CreateReport opens a report in draft status at version 1. Both fields are
// set exactly once here and never touched by updates.
func CreateReport(reports store.Reports, rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReportReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Failed to create report", apperror.Validation("invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, "Failed to create report", apperror.Validation("%v", err))
			return
		}
		uid := auth.UserID(r.Context())
		rep := models.Report{
			PatientID:  req.PatientID,
			ImageID:    req.ImageID,
			StudyType:  models.StudyType(req.StudyType),
			Findings:   req.Findings,
			Impression: req.Impression,
			AIAnalysis: models.JSONB(req.AIAnalysis),
			Status:     models.StatusDraft,
			Version:    1,
			CreatedBy:  uid,
		}
		if err := reports.Create(r.Context(), &rep); err != nil {
			lg.Errorw("report create failed", "patient_id", req.PatientID, "error", err)
			respondError(w, "Failed to create report", err)
			return
		}
		rec.Record(r.Context(), audit.Entry{
			Actor:        uid,
			Action:       "create_report",
			ResourceType: "report",
			ResourceID:   rep.ID,
			Details:      map[string]any{"patient_id": req.PatientID, "image_id": req.ImageID},
			IP:           r.RemoteAddr,
		})
		respondCreated(w, "Report created successfully", map[string]any{"report_id": rep.ID})
	}
}

func GetPatientReports(reports store.Reports, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patient_id")
		reps, err := reports.ListByPatient(r.Context(), patientID)
		if err != nil {
			lg.Errorw("report list failed", "patient_id", patientID, "error", err)
			respondError(w, "Failed to retrieve reports", err)
			return
		}
		respondOK(w, "Reports retrieved successfully", reps)
	}
}

type updateReportReq struct {
	Findings    *string `json:"findings"`
	Impression  *string `json:"impression"`
	Status      *string `json:"status"`
	ReviewedBy  *string `json:"reviewed_by"`
	ReviewNotes *string `json:"review_notes"`
}

// UpdateReport applies only the fields present in the body and stamps
// updated_at. Status values must parse as a known ReportStatus, but any
// transition between known states is accepted; reviewed_by and review_notes
// may be set regardless of status. The looseness is intentional.
func UpdateReport(reports store.Reports, rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID := chi.URLParam(r, "report_id")
		var req updateReportReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Failed to update report", apperror.Validation("invalid request body"))
			return
		}
		fields := map[string]any{}
		if req.Findings != nil {
			fields["findings"] = *req.Findings
		}
		if req.Impression != nil {
			fields["impression"] = *req.Impression
		}
		if req.Status != nil {
			st := models.ReportStatus(*req.Status)
			if !st.Valid() {
				respondError(w, "Failed to update report", apperror.Validation("unrecognized status %q", *req.Status))
				return
			}
			fields["status"] = st
		}
		if req.ReviewedBy != nil {
			fields["reviewed_by"] = *req.ReviewedBy
		}
		if req.ReviewNotes != nil {
			fields["review_notes"] = *req.ReviewNotes
		}
		fields["updated_at"] = time.Now().UTC()

		if err := reports.UpdateFields(r.Context(), reportID, fields); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				respondError(w, "Failed to update report", apperror.ErrNotFound)
				return
			}
			lg.Errorw("report update failed", "report_id", reportID, "error", err)
			respondError(w, "Failed to update report", err)
			return
		}
		rec.Record(r.Context(), audit.Entry{
			Actor:        auth.UserID(r.Context()),
			Action:       "update_report",
			ResourceType: "report",
			ResourceID:   reportID,
			Details:      auditableFields(fields),
			IP:           r.RemoteAddr,
		})
		respondOK(w, "Report updated successfully", nil)
	}
}

func auditableFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if t, ok := v.(time.Time); ok {
			out[k] = t.Format(time.RFC3339)
			continue
		}
		out[k] = v
	}
	return out
}
