package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"medassist/internal/storage"
	"medassist/internal/synthesizer"
	"medassist/pkg/apperror"
)

// Analyze writes the uploaded file to a temporary location, runs the
// synthesizer, removes the temp file, and returns the analysis text. Nothing
// is persisted, so no audit entry is written.
func Analyze(an synthesizer.Analyzer, files *storage.Local, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, "Analysis failed", apperror.Validation("invalid multipart form"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, "Analysis failed", apperror.Validation("file is required"))
			return
		}
		defer file.Close()

		studyType := r.FormValue("study_type")
		if studyType == "" {
			studyType = "general"
		}
		patientID := r.FormValue("patient_id")

		storedName, _, _, err := files.Save("temp_"+header.Filename, file)
		if err != nil {
			lg.Errorw("temp file save failed", "filename", header.Filename, "error", err)
			respondError(w, "Analysis failed", apperror.ErrInternal)
			return
		}
		defer func() {
			if err := files.Remove(storedName); err != nil {
				lg.Warnw("temp file cleanup failed", "file", storedName, "error", err)
			}
		}()

		var analysis string
		res, err := an.GenerateReport(r.Context(), studyType)
		if err != nil {
			lg.Errorw("synthesis failed", "study_type", studyType, "error", err)
			analysis = synthesizer.DegradedReport(studyType)
		} else {
			analysis = synthesizer.RenderReport(studyType, res)
		}

		respondOK(w, "Analysis completed successfully", map[string]any{
			"analysis":   analysis,
			"study_type": studyType,
			"patient_id": patientID,
		})
	}
}
