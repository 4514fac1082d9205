package models

import "time"

type User struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `gorm:"not null" json:"first_name"`
	LastName     string     `gorm:"not null" json:"last_name"`
	Role         Role       `gorm:"index;not null;default:student" json:"role"`
	Institution  *string    `json:"institution,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

type Patient struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID      string     `gorm:"uniqueIndex;not null" json:"patient_id"`
	FirstName      string     `gorm:"not null" json:"first_name"`
	LastName       string     `gorm:"not null" json:"last_name"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	MedicalHistory *string    `json:"medical_history,omitempty"`
	CreatedBy      string     `gorm:"type:uuid;index;not null" json:"created_by"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type MedicalImage struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   string    `gorm:"index;not null" json:"patient_id"`
	StudyType   StudyType `gorm:"not null" json:"study_type"`
	Description *string   `json:"description,omitempty"`
	FileName    string    `gorm:"not null" json:"file_name"`
	FileType    string    `gorm:"index;not null" json:"file_type"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	ImageURL    string    `json:"image_url"`
	UploadedBy  string    `gorm:"type:uuid;index;not null" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	AIAnalysis  JSONB     `gorm:"type:jsonb" json:"ai_analysis,omitempty"`
	Annotations JSONB     `gorm:"type:jsonb" json:"annotations,omitempty"`
}

type Report struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   string       `gorm:"index;not null" json:"patient_id"`
	ImageID     string       `gorm:"index;not null" json:"image_id"`
	StudyType   StudyType    `gorm:"not null" json:"study_type"`
	Findings    string       `gorm:"not null" json:"findings"`
	Impression  string       `gorm:"not null" json:"impression"`
	AIAnalysis  JSONB        `gorm:"type:jsonb" json:"ai_analysis,omitempty"`
	Status      ReportStatus `gorm:"index;not null;default:draft" json:"status"`
	Version     int          `gorm:"not null;default:1" json:"version"`
	CreatedBy   string       `gorm:"type:uuid;index;not null" json:"created_by"`
	ReviewedBy  *string      `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewNotes *string      `json:"review_notes,omitempty"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

// AuditLog entries are append-only: no code path updates or deletes a row
// once written.
type AuditLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Action       string    `gorm:"index;not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"details"`
	IPAddress    *string   `json:"ip_address,omitempty"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
}
