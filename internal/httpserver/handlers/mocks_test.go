package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"medassist/internal/models"
	"medassist/pkg/apperror"
)

type mockUsers struct {
	users map[string]*models.User // keyed by id
}

func newMockUsers() *mockUsers {
	return &mockUsers{users: make(map[string]*models.User)}
}

func (m *mockUsers) Create(_ context.Context, u *models.User) error {
	email := strings.ToLower(u.Email)
	for _, existing := range m.users {
		if existing.Email == email {
			return apperror.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = email
	u.CreatedAt = time.Now().UTC()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *mockUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUsers) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUsers) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.ErrNotFound
	}
	if v, ok := fields["first_name"].(string); ok {
		u.FirstName = v
	}
	if v, ok := fields["last_name"].(string); ok {
		u.LastName = v
	}
	if v, ok := fields["institution"].(string); ok {
		u.Institution = &v
	}
	if v, ok := fields["role"].(string); ok {
		u.Role = models.Role(v)
	}
	if v, ok := fields["is_active"].(bool); ok {
		u.IsActive = v
	}
	return nil
}

func (m *mockUsers) UpdateLastLogin(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.ErrNotFound
	}
	now := time.Now().UTC()
	u.LastLogin = &now
	return nil
}

type mockPatients struct {
	patients []*models.Patient
}

func (m *mockPatients) Create(_ context.Context, p *models.Patient) error {
	for _, existing := range m.patients {
		if existing.PatientID == p.PatientID {
			return apperror.ErrConflict
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	cp := *p
	m.patients = append(m.patients, &cp)
	return nil
}

func (m *mockPatients) GetByPatientID(_ context.Context, patientID string) (*models.Patient, error) {
	for _, p := range m.patients {
		if p.PatientID == patientID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *mockPatients) ListByOwner(_ context.Context, ownerID string) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range m.patients {
		if p.CreatedBy == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type mockImages struct {
	images []*models.MedicalImage
}

func (m *mockImages) Create(_ context.Context, img *models.MedicalImage) error {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	img.CreatedAt = time.Now().UTC()
	cp := *img
	m.images = append(m.images, &cp)
	return nil
}

func (m *mockImages) ListByPatient(_ context.Context, patientID string) ([]models.MedicalImage, error) {
	var out []models.MedicalImage
	for _, img := range m.images {
		if img.PatientID == patientID {
			out = append(out, *img)
		}
	}
	return out, nil
}

type mockReports struct {
	reports map[string]*models.Report
}

func newMockReports() *mockReports {
	return &mockReports{reports: make(map[string]*models.Report)}
}

func (m *mockReports) Create(_ context.Context, rep *models.Report) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	rep.CreatedAt = time.Now().UTC()
	cp := *rep
	m.reports[rep.ID] = &cp
	return nil
}

func (m *mockReports) GetByID(_ context.Context, id string) (*models.Report, error) {
	rep, ok := m.reports[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *rep
	return &cp, nil
}

func (m *mockReports) ListByPatient(_ context.Context, patientID string) ([]models.Report, error) {
	var out []models.Report
	for _, rep := range m.reports {
		if rep.PatientID == patientID {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (m *mockReports) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	rep, ok := m.reports[id]
	if !ok {
		return apperror.ErrNotFound
	}
	if v, ok := fields["findings"].(string); ok {
		rep.Findings = v
	}
	if v, ok := fields["impression"].(string); ok {
		rep.Impression = v
	}
	if v, ok := fields["status"].(models.ReportStatus); ok {
		rep.Status = v
	}
	if v, ok := fields["reviewed_by"].(string); ok {
		rep.ReviewedBy = &v
	}
	if v, ok := fields["review_notes"].(string); ok {
		rep.ReviewNotes = &v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		rep.UpdatedAt = &v
	}
	return nil
}

type mockAuditLogs struct {
	entries []models.AuditLog
	fail    bool
}

func (m *mockAuditLogs) Append(_ context.Context, entry *models.AuditLog) error {
	if m.fail {
		return apperror.ErrInternal
	}
	entry.ID = int64(len(m.entries) + 1)
	entry.Timestamp = time.Now().UTC()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditLogs) ListByUser(_ context.Context, userID string, limit int) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAuditLogs) ListRecent(_ context.Context, limit int) ([]models.AuditLog, error) {
	out := append([]models.AuditLog(nil), m.entries...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
