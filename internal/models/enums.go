package models

import "strings"

// Role is the closed set of user roles. Unrecognized values are rejected at
// the transport boundary, never persisted.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// ReportStatus is the closed set of report lifecycle states. Transitions
// between states are intentionally unconstrained; only the value set is.
type ReportStatus string

const (
	StatusDraft     ReportStatus = "draft"
	StatusFinalized ReportStatus = "finalized"
	StatusReviewed  ReportStatus = "reviewed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusFinalized, StatusReviewed:
		return true
	}
	return false
}

// StudyType classifies an image's imaging modality / body region.
type StudyType string

const (
	StudyChestXray   StudyType = "chest_xray"
	StudyAbdominalCT StudyType = "abdominal_ct"
	StudyBrainMRI    StudyType = "brain_mri"
	StudySpineMRI    StudyType = "spine_mri"
	StudyMammography StudyType = "mammography"
	StudyGeneral     StudyType = "general"
)

func (t StudyType) Valid() bool {
	switch t {
	case StudyChestXray, StudyAbdominalCT, StudyBrainMRI, StudySpineMRI, StudyMammography, StudyGeneral:
		return true
	}
	return false
}

// ParseStudyType normalizes and validates a study type tag.
func ParseStudyType(s string) (StudyType, bool) {
	t := StudyType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}
