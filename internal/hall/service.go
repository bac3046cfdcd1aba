package hall

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
	"github.com/mbokatech/hall-management-backend/utils"
	"gorm.io/gorm"
)

// Service wraps hall CRUD, slug uniqueness and owner-role synchronization
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// ===========================
// 🏛 Create Hall
func (s *Service) CreateHall(ctx context.Context, req *CreateHallRequest, actorID *string, ip string) (*Hall, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if !validStatus(status) {
		return nil, apperror.Validation("invalid status: " + status)
	}

	isPremium := false
	if req.IsPremium != nil {
		isPremium = *req.IsPremium
	}

	slug, err := s.resolveSlug(req.Slug, req.Name, req.City, 0)
	if err != nil {
		return nil, err
	}

	hall := &Hall{
		GerantID:    req.GerantID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		Capacity:    req.Capacity,
		Status:      status,
		IsPremium:   isPremium,
	}

	if err := s.Repo.Create(hall); err != nil {
		s.audit(ctx, actorID, nil, "HALL_CREATED", map[string]interface{}{
			"name": req.Name, "city": req.City, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	// Gerant set at creation gets the OWNER role row
	if hall.GerantID != nil {
		if err := s.Repo.ReplaceOwnerRole(hall.ID, *hall.GerantID); err != nil {
			s.audit(ctx, actorID, &hall.ID, "HALL_OWNER_SYNCED", map[string]interface{}{
				"gerant_id": *hall.GerantID, "error": err.Error(),
			}, ip, "failure")
			return nil, err
		}
	}

	s.audit(ctx, actorID, &hall.ID, "HALL_CREATED", map[string]interface{}{
		"name": hall.Name, "slug": hall.Slug, "city": hall.City, "status": hall.Status,
	}, ip, "success")

	return hall, nil
}

// ===========================
// 🛠 Update Hall (partial merge; slug re-derived only on slug change)
func (s *Service) UpdateHall(ctx context.Context, id uint, req *UpdateHallRequest, actorID *string, ip string) (*Hall, error) {
	hall, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("hall not found")
		}
		return nil, err
	}

	previousSlug := hall.Slug
	previousGerant := hall.GerantID

	if req.Name != nil {
		hall.Name = *req.Name
	}
	if req.City != nil {
		hall.City = *req.City
	}
	if req.Description != nil {
		hall.Description = *req.Description
	}
	if req.Address != nil {
		hall.Address = *req.Address
	}
	if req.Capacity != nil {
		hall.Capacity = req.Capacity
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, apperror.Validation("invalid status: " + *req.Status)
		}
		hall.Status = *req.Status
	}
	if req.IsPremium != nil {
		hall.IsPremium = *req.IsPremium
	}
	if req.GerantID != nil {
		if *req.GerantID == "" {
			// explicit empty string detaches the gerant
			hall.GerantID = nil
		} else {
			hall.GerantID = req.GerantID
		}
	}

	if req.Slug != nil && *req.Slug != previousSlug {
		slug, err := s.resolveSlug(*req.Slug, hall.Name, hall.City, hall.ID)
		if err != nil {
			return nil, err
		}
		hall.Slug = slug
	}

	if err := s.Repo.Update(hall); err != nil {
		s.audit(ctx, actorID, &hall.ID, "HALL_UPDATED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	// Owner change: swap the OWNER role row alongside the update
	if gerantChanged(previousGerant, hall.GerantID) {
		if hall.GerantID != nil {
			if err := s.Repo.ReplaceOwnerRole(hall.ID, *hall.GerantID); err != nil {
				s.audit(ctx, actorID, &hall.ID, "HALL_OWNER_SYNCED", map[string]interface{}{
					"gerant_id": *hall.GerantID, "error": err.Error(),
				}, ip, "failure")
				return nil, err
			}
		} else {
			if err := s.Repo.ClearOwnerRole(hall.ID); err != nil {
				return nil, err
			}
		}
		s.audit(ctx, actorID, &hall.ID, "HALL_OWNER_SYNCED", map[string]interface{}{
			"previous": previousGerant, "current": hall.GerantID,
		}, ip, "success")
	}

	// Drop the cached public detail for both slugs
	utils.CacheDel(ctx, "hall_detail:"+previousSlug, "hall_detail:"+hall.Slug)

	s.audit(ctx, actorID, &hall.ID, "HALL_UPDATED", map[string]interface{}{
		"slug": hall.Slug, "status": hall.Status,
	}, ip, "success")

	return hall, nil
}

// ===========================
// 🔍 Lookups
func (s *Service) GetHallByID(id uint) (*Hall, error) {
	hall, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("hall not found")
		}
		return nil, err
	}
	return hall, nil
}

func (s *Service) GetHallBySlug(slug string) (*Hall, error) {
	hall, err := s.Repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("hall not found")
		}
		return nil, err
	}
	return hall, nil
}

// ===========================
// 📄 List Halls (admin/host listing, created_at desc)
func (s *Service) ListHalls(filter ListFilter) (*PaginatedHalls, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, apperror.Validation("invalid status filter: " + filter.Status)
	}

	halls, total, err := s.Repo.List(filter)
	if err != nil {
		return nil, err
	}

	return &PaginatedHalls{
		Data:  halls,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ===========================
// 👥 Roles
func (s *Service) ListRoles(hallID uint) ([]HallUserRole, error) {
	if _, err := s.GetHallByID(hallID); err != nil {
		return nil, err
	}
	return s.Repo.ListRoles(hallID)
}

func (s *Service) AssignRole(ctx context.Context, hallID uint, req *AssignRoleRequest, actorID *string, ip string) error {
	if !validRole(req.Role) {
		return apperror.Validation("invalid role: " + req.Role)
	}

	hall, err := s.GetHallByID(hallID)
	if err != nil {
		return err
	}

	// OWNER is managed through the gerant field, never assigned directly
	if req.Role == RoleOwner {
		return apperror.Validation("owner role is derived from the hall's gerant")
	}

	if err := s.Repo.UpsertRole(&HallUserRole{
		HallID: hall.ID,
		UserID: req.UserID,
		Role:   req.Role,
	}); err != nil {
		return err
	}

	s.audit(ctx, actorID, &hall.ID, "HALL_ROLE_ASSIGNED", map[string]interface{}{
		"user_id": req.UserID, "role": req.Role,
	}, ip, "success")

	return nil
}

func (s *Service) RemoveRole(ctx context.Context, hallID uint, userID, roleName string, actorID *string, ip string) error {
	if roleName == RoleOwner {
		return apperror.Validation("owner role is derived from the hall's gerant")
	}
	if err := s.Repo.DeleteRole(hallID, userID, roleName); err != nil {
		return err
	}
	s.audit(ctx, actorID, &hallID, "HALL_ROLE_REMOVED", map[string]interface{}{
		"user_id": userID, "role": roleName,
	}, ip, "success")
	return nil
}

// IsHallManager reports whether the user carries any role on the hall.
// Used by the host route guard.
func (s *Service) IsHallManager(hallID uint, userID string) (bool, error) {
	hall, err := s.Repo.FindByID(hallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.NotFound("hall not found")
		}
		return false, err
	}
	if hall.GerantID != nil && *hall.GerantID == userID {
		return true, nil
	}
	_, err = s.Repo.FindRole(hallID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ===========================
// 🔗 Slug resolution
//
// Base comes from the explicit slug, else name+city, else a time-based
// fallback. Collisions resolved by sequential -2, -3… suffixes; the loop is
// bounded only by the number of conflicting slugs already stored.
func (s *Service) resolveSlug(explicit, name, city string, excludeID uint) (string, error) {
	base := normalizeSlug(explicit)
	if base == "" {
		base = normalizeSlug(name + " " + city)
	}
	if base == "" {
		base = "hall-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	candidate := base
	for n := 2; ; n++ {
		taken, err := s.Repo.SlugExists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func gerantChanged(prev, next *string) bool {
	if prev == nil && next == nil {
		return false
	}
	if prev == nil || next == nil {
		return true
	}
	return *prev != *next
}

func (s *Service) audit(ctx context.Context, userID *string, hallID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	if err := s.AuditSvc.LogAction(ctx, userID, hallID, action, details, ip, status); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
