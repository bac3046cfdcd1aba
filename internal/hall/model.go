package hall

import (
	"time"
)

// ============================
// 🔷 Statuses & Roles
const (
	StatusDraft    = "DRAFT"
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

const (
	RoleOwner        = "OWNER"
	RoleManager      = "MANAGER"
	RoleReceptionist = "RECEPTIONIST"
	RoleAccountant   = "ACCOUNTANT"
)

// ============================
// 🔷 GORM Hall Model
//
// Halls are never hard-deleted; retiring a listing means ARCHIVED.
type Hall struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GerantID    *string   `gorm:"type:varchar(64);index" json:"gerant_id,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	City        string    `gorm:"type:varchar(120);index" json:"city"`
	Address     string    `gorm:"type:text" json:"address"`
	Capacity    *int      `json:"capacity,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	IsPremium   bool      `gorm:"default:false;index" json:"is_premium"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hall) TableName() string {
	return "halls"
}

// ============================
// 🔷 GORM HallUserRole Model
//
// At most one OWNER row per hall, enforced by the service's owner swap.
type HallUserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HallID    uint      `gorm:"not null;index:idx_hall_user_roles_hall_user" json:"hall_id"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_hall_user_roles_hall_user" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (HallUserRole) TableName() string {
	return "hall_user_roles"
}

// ============================
// 🟡 Create Hall Request
type CreateHallRequest struct {
	Name        string  `json:"name" binding:"required"`
	City        string  `json:"city" binding:"required"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Status      string  `json:"status,omitempty"`
	IsPremium   *bool   `json:"is_premium,omitempty"`
	GerantID    *string `json:"gerant_id,omitempty"`
}

// ============================
// 🟠 Update Hall Request (partial merge)
type UpdateHallRequest struct {
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Status      *string `json:"status,omitempty"`
	IsPremium   *bool   `json:"is_premium,omitempty"`
	GerantID    *string `json:"gerant_id,omitempty"`
}

// ============================
// 🟡 Assign Role Request
type AssignRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// ListFilter narrows the admin hall listing
type ListFilter struct {
	Status    string
	City      string
	IsPremium *bool
	GerantID  *string
	Page      int
	Limit     int
}

// PaginatedHalls is the standard list envelope
type PaginatedHalls struct {
	Data  []Hall `json:"data"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func validStatus(s string) bool {
	return s == StatusDraft || s == StatusActive || s == StatusArchived
}

func validRole(r string) bool {
	switch r {
	case RoleOwner, RoleManager, RoleReceptionist, RoleAccountant:
		return true
	}
	return false
}
