package store

import (
	"context"

	"medassist/internal/models"
)

// Users holds registered accounts. Emails are unique; Create returns
// apperror.ErrConflict on a duplicate.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	UpdateLastLogin(ctx context.Context, id string) error
}

// Patients holds patient records. The business key patient_id is unique, and
// listing is owner-scoped: ListByOwner is the only read path, so a caller can
// never observe another user's patients through it.
type Patients interface {
	Create(ctx context.Context, p *models.Patient) error
	GetByPatientID(ctx context.Context, patientID string) (*models.Patient, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Patient, error)
}

// Images holds uploaded medical images; records are never mutated.
type Images interface {
	Create(ctx context.Context, img *models.MedicalImage) error
	ListByPatient(ctx context.Context, patientID string) ([]models.MedicalImage, error)
}

// Reports holds diagnostic reports. UpdateFields applies a partial field set
// and returns apperror.ErrNotFound when no matching row exists.
type Reports interface {
	Create(ctx context.Context, rep *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Report, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}

// AuditLogs is append-only.
type AuditLogs interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// Store bundles the per-entity collections behind one handle.
type Store struct {
	Users    Users
	Patients Patients
	Images   Images
	Reports  Reports
	Audit    AuditLogs
}
