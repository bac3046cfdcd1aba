package hostapp

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(app *HostApplication) error
	FindByID(id uint) (*HostApplication, error)
	Update(app *HostApplication) error
	List(filter ListFilter) ([]HostApplication, int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(app *HostApplication) error {
	return r.db.Create(app).Error
}

func (r *repository) FindByID(id uint) (*HostApplication, error) {
	var app HostApplication
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) Update(app *HostApplication) error {
	return r.db.Save(app).Error
}

func (r *repository) List(filter ListFilter) ([]HostApplication, int64, error) {
	query := r.db.Model(&HostApplication{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Email != "" {
		query = query.Where("contact_email ILIKE ?", "%"+filter.Email+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []HostApplication
	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}
