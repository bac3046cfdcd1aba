package auth

import (
	"time"
)

// ============================
// 🔷 Roles
const (
	RoleClient     = "CLIENT"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// ============================
// 🔷 GORM User Model
//
// ID mirrors the identity provider's subject id for provider-authenticated
// users. Admin accounts created locally get a random UUID instead.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FullName     string    `gorm:"type:varchar(255)" json:"full_name"`
	Email        *string   `gorm:"uniqueIndex;type:varchar(255)" json:"email,omitempty"`
	Phone        *string   `gorm:"uniqueIndex;type:varchar(32)" json:"phone,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"` // set for local admin accounts only
	Role         string    `gorm:"type:varchar(20);not null;default:'CLIENT';index" json:"role"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ============================
// 🟡 Login Request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ============================
// 🟡 Refresh Request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse is the public shape of a user
type UserResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role"`
}

func toUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}
