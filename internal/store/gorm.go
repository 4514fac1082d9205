package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medassist/internal/models"
	"medassist/pkg/apperror"
)

// NewGorm wires all collections onto the given DB handle. The handle is owned
// by the caller; opening and closing it is main's job.
func NewGorm(db *gorm.DB) Store {
	return Store{
		Users:    &gormUsers{db: db},
		Patients: &gormPatients{db: db},
		Images:   &gormImages{db: db},
		Reports:  &gormReports{db: db},
		Audit:    &gormAuditLogs{db: db},
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	default:
		return fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}
}

type gormUsers struct{ db *gorm.DB }

func (s *gormUsers) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *gormUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormUsers) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&users).Error
	return users, translate(err)
}

func (s *gormUsers) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *gormUsers) UpdateLastLogin(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).Update("last_login", time.Now().UTC()).Error)
}

type gormPatients struct{ db *gorm.DB }

func (s *gormPatients) Create(ctx context.Context, p *models.Patient) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *gormPatients) GetByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	var p models.Patient
	err := s.db.WithContext(ctx).First(&p, "patient_id = ?", patientID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormPatients) ListByOwner(ctx context.Context, ownerID string) ([]models.Patient, error) {
	var ps []models.Patient
	err := s.db.WithContext(ctx).Where("created_by = ?", ownerID).
		Order("created_at desc").Find(&ps).Error
	return ps, translate(err)
}

type gormImages struct{ db *gorm.DB }

func (s *gormImages) Create(ctx context.Context, img *models.MedicalImage) error {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}
	return translate(s.db.WithContext(ctx).Create(img).Error)
}

func (s *gormImages) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalImage, error) {
	var imgs []models.MedicalImage
	err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).
		Order("created_at desc").Find(&imgs).Error
	return imgs, translate(err)
}

type gormReports struct{ db *gorm.DB }

func (s *gormReports) Create(ctx context.Context, rep *models.Report) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	return translate(s.db.WithContext(ctx).Create(rep).Error)
}

func (s *gormReports) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var rep models.Report
	err := s.db.WithContext(ctx).First(&rep, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rep, nil
}

func (s *gormReports) ListByPatient(ctx context.Context, patientID string) ([]models.Report, error) {
	var reps []models.Report
	err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).
		Order("created_at desc").Find(&reps).Error
	return reps, translate(err)
}

func (s *gormReports) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

type gormAuditLogs struct{ db *gorm.DB }

func (s *gormAuditLogs) Append(ctx context.Context, entry *models.AuditLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return translate(s.db.WithContext(ctx).Create(entry).Error)
}

func (s *gormAuditLogs) ListByUser(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("timestamp desc").Limit(limit).Find(&logs).Error
	return logs, translate(err)
}

func (s *gormAuditLogs) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).Order("timestamp desc").Limit(limit).Find(&logs).Error
	return logs, translate(err)
}
