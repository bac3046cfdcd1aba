package hostapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
	"github.com/mbokatech/hall-management-backend/internal/hall"
	"github.com/mbokatech/hall-management-backend/utils"
	"gorm.io/gorm"
)

type Service struct {
	Repo     Repository
	HallSvc  *hall.Service
	AuditSvc auditlog.Service
}

func NewService(r Repository, hallSvc *hall.Service, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, HallSvc: hallSvc, AuditSvc: auditSvc}
}

// ===========================
// 📨 Public intake

func (s *Service) CreateApplication(ctx context.Context, req *CreateApplicationRequest, ip string) (*HostApplication, error) {
	app := &HostApplication{
		HallName:        strings.TrimSpace(req.HallName),
		City:            strings.TrimSpace(req.City),
		ContactName:     strings.TrimSpace(req.ContactName),
		ContactEmail:    strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		ContactPhone:    strings.TrimSpace(req.ContactPhone),
		Message:         req.Message,
		Status:          StatusNew,
		ApplicantUserID: req.ApplicantUserID,
	}

	if err := s.Repo.Create(app); err != nil {
		return nil, err
	}

	s.audit(ctx, nil, "APPLICATION_SUBMITTED", map[string]interface{}{
		"application_id": app.ID, "hall_name": app.HallName,
	}, ip)

	utils.PublishApplicationEvent(ctx, utils.ApplicationEvent{
		ApplicationID: app.ID,
		HallName:      app.HallName,
		ContactName:   app.ContactName,
		ContactEmail:  app.ContactEmail,
		Status:        app.Status,
		OccurredAt:    time.Now(),
	})

	return app, nil
}

// ===========================
// 🛂 Admin review

func (s *Service) GetApplication(id uint) (*HostApplication, error) {
	app, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("application not found")
		}
		return nil, err
	}
	return app, nil
}

func (s *Service) ListApplications(filter ListFilter) (*PaginatedApplications, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 50 {
		filter.Limit = 50
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, apperror.Validation("invalid status: " + filter.Status)
	}

	apps, total, err := s.Repo.List(filter)
	if err != nil {
		return nil, err
	}

	return &PaginatedApplications{
		Data:  apps,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	}, nil
}

// UpdateStatus merges the review fields onto the application and, on a
// transition into APPROVED from any non-APPROVED status, creates a DRAFT
// hall owned by the applicant. Transitions are not validated against the
// NEW → UNDER_REVIEW → terminal ladder: a rejected application can be
// approved later, and each such approval creates another hall.
func (s *Service) UpdateStatus(ctx context.Context, id uint, req *UpdateStatusRequest, reviewerID *string, ip string) (*HostApplication, error) {
	if !validStatus(req.Status) {
		return nil, apperror.Validation("invalid status: " + req.Status)
	}

	app, err := s.GetApplication(id)
	if err != nil {
		return nil, err
	}

	previousStatus := app.Status
	app.Status = req.Status
	if req.ReviewNotes != nil {
		app.ReviewNotes = *req.ReviewNotes
	}
	if reviewerID != nil {
		app.ReviewerID = reviewerID
	}
	if terminalStatus(req.Status) && app.ReviewedAt == nil {
		now := time.Now()
		app.ReviewedAt = &now
	}

	if err := s.Repo.Update(app); err != nil {
		return nil, err
	}

	if req.Status == StatusApproved && previousStatus != StatusApproved {
		if app.ApplicantUserID != nil {
			draft, err := s.HallSvc.CreateHall(ctx, &hall.CreateHallRequest{
				Name:     app.HallName,
				City:     app.City,
				GerantID: app.ApplicantUserID,
			}, reviewerID, ip)
			if err != nil {
				return nil, fmt.Errorf("application approved but hall creation failed: %w", err)
			}
			s.audit(ctx, reviewerID, "APPLICATION_HALL_CREATED", map[string]interface{}{
				"application_id": app.ID, "hall_id": draft.ID,
			}, ip)
		}
		// no applicant user attached: approval alone creates nothing
	}

	s.audit(ctx, reviewerID, "APPLICATION_STATUS_CHANGED", map[string]interface{}{
		"application_id": app.ID, "from": previousStatus, "to": app.Status,
	}, ip)

	utils.PublishApplicationEvent(ctx, utils.ApplicationEvent{
		ApplicationID:  app.ID,
		HallName:       app.HallName,
		ContactName:    app.ContactName,
		ContactEmail:   app.ContactEmail,
		PreviousStatus: previousStatus,
		Status:         app.Status,
		ReviewNotes:    app.ReviewNotes,
		OccurredAt:     time.Now(),
	})

	return app, nil
}

func (s *Service) audit(ctx context.Context, userID *string, action string, details map[string]interface{}, ip string) {
	if s.AuditSvc == nil {
		return
	}
	if err := s.AuditSvc.LogAction(ctx, userID, nil, action, details, ip, "success"); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
