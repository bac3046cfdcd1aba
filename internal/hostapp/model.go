package hostapp

import "time"

// ============================
// 🔷 Enums
const (
	StatusNew         = "NEW"
	StatusUnderReview = "UNDER_REVIEW"
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
)

// ============================
// 🔷 GORM Model

// HostApplication is a public request to list a venue on the platform
type HostApplication struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	HallName        string     `gorm:"type:varchar(255);not null" json:"hall_name"`
	City            string     `gorm:"type:varchar(100)" json:"city"`
	ContactName     string     `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactEmail    string     `gorm:"type:varchar(255);not null;index" json:"contact_email"`
	ContactPhone    string     `gorm:"type:varchar(20)" json:"contact_phone"`
	Message         string     `gorm:"type:text" json:"message"`
	Status          string     `gorm:"type:varchar(20);not null;default:'NEW';index" json:"status"`
	ReviewNotes     string     `gorm:"type:text" json:"review_notes"`
	ReviewerID      *string    `gorm:"type:varchar(64)" json:"reviewer_id,omitempty"`
	ApplicantUserID *string    `gorm:"type:varchar(64);index" json:"applicant_user_id,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HostApplication) TableName() string {
	return "host_applications"
}

// ============================
// 🟡 Requests

type CreateApplicationRequest struct {
	HallName        string  `json:"hall_name" binding:"required"`
	City            string  `json:"city,omitempty"`
	ContactName     string  `json:"contact_name" binding:"required"`
	ContactEmail    string  `json:"contact_email" binding:"required,email"`
	ContactPhone    string  `json:"contact_phone,omitempty"`
	Message         string  `json:"message,omitempty"`
	ApplicantUserID *string `json:"applicant_user_id,omitempty"`
}

type UpdateStatusRequest struct {
	Status      string  `json:"status" binding:"required"`
	ReviewNotes *string `json:"review_notes,omitempty"`
}

type ListFilter struct {
	Status string
	Email  string
	Page   int
	Limit  int
}

// PaginatedApplications is the standard list envelope
type PaginatedApplications struct {
	Data  []HostApplication `json:"data"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

func validStatus(s string) bool {
	return s == StatusNew || s == StatusUnderReview || s == StatusApproved || s == StatusRejected
}

func terminalStatus(s string) bool {
	return s == StatusApproved || s == StatusRejected
}
