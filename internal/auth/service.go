package auth

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mbokatech/hall-management-backend/config"
	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Identity is what the external provider gives us for a verified bearer token
type Identity struct {
	UID      string
	Email    string
	Phone    string
	FullName string
}

type Service interface {
	Login(input LoginRequest) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(id string) (*User, error)

	// ProvisionFromIdentity upserts the local user row mirroring the
	// provider subject. Called by the auth middleware on every verified
	// request for a subject we have not seen yet.
	ProvisionFromIdentity(ident Identity) (*User, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Login (local admin accounts)
// =============================

func (s *service) Login(in LoginRequest) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("couldn't find your account")
		}
		return nil, nil, err
	}

	if user.PasswordHash == "" {
		// provider-managed account, no local password
		return nil, nil, apperror.Validation("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, apperror.Validation("invalid credentials")
	}

	if user.Status == "inactive" {
		return nil, nil, apperror.Forbidden("your account is inactive")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperror.Validation("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", apperror.Validation("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", apperror.Validation("invalid token claims")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", apperror.NotFound("user not found")
	}

	return s.generateAccessToken(user)
}

// =============================
// Lookup
// =============================

func (s *service) GetUserByID(id string) (*User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// =============================
// Auto-provisioning
// =============================

func (s *service) ProvisionFromIdentity(ident Identity) (*User, error) {
	user, err := s.repo.FindByID(ident.UID)
	if err == nil {
		// keep the mirrored display name in step with the provider
		if ident.FullName != "" && ident.FullName != user.FullName {
			user.FullName = ident.FullName
			if uerr := s.repo.Update(user); uerr != nil {
				return nil, uerr
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := &User{
		ID:       ident.UID,
		FullName: ident.FullName,
		Role:     RoleClient,
		Status:   "active",
	}
	if ident.Email != "" {
		email := strings.ToLower(strings.TrimSpace(ident.Email))
		newUser.Email = &email
	}
	if ident.Phone != "" {
		phone := ident.Phone
		newUser.Phone = &phone
	}

	if err := s.repo.Create(newUser); err != nil {
		// Duplicate email/phone: another row already carries this contact.
		// Retry once by re-querying; no loop, no backoff.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("⚠️ Duplicate contact on user provisioning for %s, re-querying", ident.UID)
			if newUser.Email != nil {
				if existing, ferr := s.repo.FindByEmail(*newUser.Email); ferr == nil {
					return existing, nil
				}
			}
			if newUser.Phone != nil {
				if existing, ferr := s.repo.FindByPhone(*newUser.Phone); ferr == nil {
					return existing, nil
				}
			}
			return nil, apperror.Conflict("email or phone already in use")
		}
		return nil, err
	}

	log.Printf("✅ Provisioned user %s (%s)", newUser.ID, ident.Email)
	return newUser, nil
}

// =============================
// Seeding
// =============================

// SeedSuperAdminUser creates the initial SUPER_ADMIN account if none exists.
// Credentials come from SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD.
func SeedSuperAdminUser(repo Repository) error {
	email := strings.ToLower(os.Getenv("SUPERADMIN_EMAIL"))
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	count, err := repo.CountByRole(RoleSuperAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		ID:           uuid.NewString(),
		FullName:     "Super Admin",
		Email:        &email,
		PasswordHash: string(hash),
		Role:         RoleSuperAdmin,
		Status:       "active",
	}
	if err := repo.Create(admin); err != nil {
		return err
	}

	log.Printf("✅ Seeded super admin %s", email)
	return nil
}
