package reports

import (
	"context"
	"fmt"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
)

// Service coordinates repo + exporter and audits every export.
type Service interface {
	GetHallsReport(req HallsReportRequest) ([]HallReportRow, error)
	ExportHallsReport(ctx context.Context, req HallsReportRequest, format string, userID *string, ip string) ([]byte, string, string, error)

	GetApplicationsReport(req ApplicationsReportRequest) ([]ApplicationReportRow, error)
	ExportApplicationsReport(ctx context.Context, req ApplicationsReportRequest, format string, userID *string, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, exporter Exporter, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

// ===============================
// Halls register
// ===============================

func (s *service) GetHallsReport(req HallsReportRequest) ([]HallReportRow, error) {
	return s.repo.GetHallsReport(req)
}

func (s *service) ExportHallsReport(ctx context.Context, req HallsReportRequest, format string, userID *string, ip string) ([]byte, string, string, error) {
	if !validFormat(format) {
		return nil, "", "", apperror.Validation("invalid export format: " + format)
	}

	rows, err := s.repo.GetHallsReport(req)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.ExportHalls(format, rows)
	if err != nil {
		return nil, "", "", err
	}

	s.audit(ctx, userID, "HALLS_REPORT_EXPORTED", map[string]interface{}{
		"format": format, "rows": len(rows),
	}, ip)

	return data, filename, contentType, nil
}

// ===============================
// Host applications register
// ===============================

func (s *service) GetApplicationsReport(req ApplicationsReportRequest) ([]ApplicationReportRow, error) {
	return s.repo.GetApplicationsReport(req)
}

func (s *service) ExportApplicationsReport(ctx context.Context, req ApplicationsReportRequest, format string, userID *string, ip string) ([]byte, string, string, error) {
	if !validFormat(format) {
		return nil, "", "", apperror.Validation("invalid export format: " + format)
	}

	rows, err := s.repo.GetApplicationsReport(req)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.ExportApplications(format, rows)
	if err != nil {
		return nil, "", "", err
	}

	s.audit(ctx, userID, "APPLICATIONS_REPORT_EXPORTED", map[string]interface{}{
		"format": format, "rows": len(rows),
	}, ip)

	return data, filename, contentType, nil
}

func (s *service) audit(ctx context.Context, userID *string, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.LogAction(ctx, userID, nil, action, details, ip, "success"); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
