package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medassist/internal/audit"
	"medassist/internal/auth"
	"medassist/internal/models"
	"medassist/internal/storage"
)

func multipartRequest(t *testing.T, target, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(auth.WithClaims(req.Context(), studentA))
}

func newTestLocal(t *testing.T) *storage.Local {
	t.Helper()
	l, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return l
}

func TestUploadImage(t *testing.T) {
	images := &mockImages{}
	logs := &mockAuditLogs{}
	files := newTestLocal(t)
	h := UploadImage(images, files, audit.NewRecorder(logs, zap.NewNop().Sugar()), zap.NewNop().Sugar())

	req := multipartRequest(t, "/images/upload", "scan.png", "fake png bytes",
		map[string]string{"patient_id": "P001", "study_type": "chest_xray", "description": "routine"})
	rr := httptest.NewRecorder()
	h(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rr.Code != http.StatusCreated || !env.Success {
		t.Fatalf("status = %d, errors = %v", rr.Code, env.Errors)
	}

	if len(images.images) != 1 {
		t.Fatalf("image records = %d, want 1", len(images.images))
	}
	img := images.images[0]
	if img.FileName != "scan.png" || img.StudyType != models.StudyChestXray || img.PatientID != "P001" || img.UploadedBy != "user-a" {
		t.Errorf("record = %+v", img)
	}
	if img.FileSize != int64(len("fake png bytes")) {
		t.Errorf("file_size = %d", img.FileSize)
	}
	if img.Description == nil || *img.Description != "routine" {
		t.Errorf("description = %v", img.Description)
	}

	// File landed in the uploads dir under a namespaced name.
	path, _ := env.Data["file_path"].(string)
	if filepath.Dir(path) != files.Dir() {
		t.Errorf("file_path %q outside uploads dir %q", path, files.Dir())
	}
	base := filepath.Base(path)
	if base == "scan.png" || !strings.HasSuffix(base, "_scan.png") {
		t.Errorf("stored name %q not uuid-namespaced", base)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	if len(logs.entries) != 1 {
		t.Fatalf("audit entries = %d, want exactly 1", len(logs.entries))
	}
	if e := logs.entries[0]; e.Action != "upload_image" || e.ResourceType != "image" || e.ResourceID != img.ID {
		t.Errorf("audit entry = %+v", e)
	}
}

func TestUploadImageValidation(t *testing.T) {
	h := UploadImage(&mockImages{}, newTestLocal(t), audit.NewRecorder(&mockAuditLogs{}, zap.NewNop().Sugar()), zap.NewNop().Sugar())
	tests := []struct {
		name     string
		filename string
		fields   map[string]string
	}{
		{"bad extension", "notes.txt", map[string]string{"patient_id": "P001", "study_type": "general"}},
		{"executable extension", "scan.exe", map[string]string{"patient_id": "P001", "study_type": "general"}},
		{"missing patient_id", "scan.png", map[string]string{"study_type": "general"}},
		{"unknown study type", "scan.png", map[string]string{"patient_id": "P001", "study_type": "xyz"}},
		{"missing file", "", map[string]string{"patient_id": "P001", "study_type": "general"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h(rr, multipartRequest(t, "/images/upload", tt.filename, "x", tt.fields))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestUploadImageAcceptsAllAllowedExtensions(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.tiff", "e.dicom"} {
		h := UploadImage(&mockImages{}, newTestLocal(t), audit.NewRecorder(&mockAuditLogs{}, zap.NewNop().Sugar()), zap.NewNop().Sugar())
		rr := httptest.NewRecorder()
		h(rr, multipartRequest(t, "/images/upload", name, "x",
			map[string]string{"patient_id": "P001", "study_type": "general"}))
		if rr.Code != http.StatusCreated {
			t.Errorf("%s: status = %d, want 201", name, rr.Code)
		}
	}
}

func TestGetPatientImages(t *testing.T) {
	images := &mockImages{}
	images.Create(context.Background(), &models.MedicalImage{PatientID: "P001", StudyType: models.StudyGeneral, FileName: "a.png", UploadedBy: "user-b"})
	images.Create(context.Background(), &models.MedicalImage{PatientID: "P002", StudyType: models.StudyGeneral, FileName: "b.png", UploadedBy: "user-b"})

	r := chi.NewRouter()
	r.Get("/images/patient/{patient_id}", GetPatientImages(images, zap.NewNop().Sugar()))

	rr, _ := authedJSON(t, r.ServeHTTP, http.MethodGet, "/images/patient/P001", studentA, nil)
	var out struct {
		Data []models.MedicalImage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// No ownership filter here, unlike the patient list.
	if len(out.Data) != 1 || out.Data[0].FileName != "a.png" {
		t.Errorf("images = %+v", out.Data)
	}
}
