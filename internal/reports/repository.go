package reports

import (
	"gorm.io/gorm"
)

type Repository interface {
	GetHallsReport(req HallsReportRequest) ([]HallReportRow, error)
	GetApplicationsReport(req ApplicationsReportRequest) ([]ApplicationReportRow, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) GetHallsReport(req HallsReportRequest) ([]HallReportRow, error) {
	query := r.db.Table("halls").
		Select("halls.id, halls.name, halls.slug, halls.city, halls.capacity, halls.status, halls.is_premium, COALESCE(users.full_name, '') AS gerant_name, halls.created_at").
		Joins("LEFT JOIN users ON users.id = halls.gerant_id")

	if req.Status != "" {
		query = query.Where("halls.status = ?", req.Status)
	}
	if req.City != "" {
		query = query.Where("halls.city ILIKE ?", req.City)
	}
	if req.StartDate != nil {
		query = query.Where("halls.created_at >= ?", *req.StartDate)
	}
	if req.EndDate != nil {
		query = query.Where("halls.created_at <= ?", *req.EndDate)
	}

	var rows []HallReportRow
	err := query.Order("halls.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) GetApplicationsReport(req ApplicationsReportRequest) ([]ApplicationReportRow, error) {
	query := r.db.Table("host_applications").
		Select("id, hall_name, city, contact_name, contact_email, status, reviewed_at, created_at")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.StartDate != nil {
		query = query.Where("created_at >= ?", *req.StartDate)
	}
	if req.EndDate != nil {
		query = query.Where("created_at <= ?", *req.EndDate)
	}

	var rows []ApplicationReportRow
	err := query.Order("created_at DESC").Scan(&rows).Error
	return rows, err
}
