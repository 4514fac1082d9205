package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medassist/internal/audit"
	"medassist/internal/auth"
	"medassist/internal/models"
	"medassist/internal/storage"
	"medassist/internal/store"
	"medassist/pkg/apperror"
)

const maxUploadBytes = 32 << 20

var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tiff": true, ".dicom": true,
}

func UploadImage(images store.Images, files *storage.Local, rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, "Failed to upload image", apperror.Validation("invalid multipart form"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, "Failed to upload image", apperror.Validation("file is required"))
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			respondError(w, "Failed to upload image",
				apperror.Validation("unsupported file type, upload PNG, JPG, TIFF, or DICOM files"))
			return
		}
		patientID := r.FormValue("patient_id")
		if patientID == "" {
			respondError(w, "Failed to upload image", apperror.Validation("patient_id is required"))
			return
		}
		studyType, ok := models.ParseStudyType(r.FormValue("study_type"))
		if !ok {
			respondError(w, "Failed to upload image", apperror.Validation("unrecognized study_type"))
			return
		}

		storedName, path, size, err := files.Save(header.Filename, file)
		if err != nil {
			lg.Errorw("file save failed", "filename", header.Filename, "error", err)
			respondError(w, "Failed to upload image", apperror.ErrInternal)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "unknown"
		}
		img := models.MedicalImage{
			PatientID:  patientID,
			StudyType:  studyType,
			FileName:   header.Filename,
			FileType:   contentType,
			FileSize:   size,
			ImageURL:   "/" + filepath.ToSlash(path),
			UploadedBy: auth.UserID(r.Context()),
		}
		if desc := r.FormValue("description"); desc != "" {
			img.Description = &desc
		}
		if err := images.Create(r.Context(), &img); err != nil {
			lg.Errorw("image record create failed", "patient_id", patientID, "error", err)
			_ = files.Remove(storedName)
			respondError(w, "Failed to upload image", err)
			return
		}
		rec.Record(r.Context(), audit.Entry{
			Actor:        img.UploadedBy,
			Action:       "upload_image",
			ResourceType: "image",
			ResourceID:   img.ID,
			Details:      map[string]any{"filename": header.Filename, "patient_id": patientID},
			IP:           r.RemoteAddr,
		})
		respondCreated(w, "Image uploaded successfully", map[string]any{
			"image_id":  img.ID,
			"file_path": path,
		})
	}
}

// GetPatientImages returns every image for the patient. Unlike the patient
// list, this path applies no ownership filter; the asymmetry is preserved
// from the observed behavior.
func GetPatientImages(images store.Images, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patient_id")
		imgs, err := images.ListByPatient(r.Context(), patientID)
		if err != nil {
			lg.Errorw("image list failed", "patient_id", patientID, "error", err)
			respondError(w, "Failed to retrieve images", err)
			return
		}
		respondOK(w, "Images retrieved successfully", imgs)
	}
}
