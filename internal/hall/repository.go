package hall

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(hall *Hall) error
	Update(hall *Hall) error
	FindByID(id uint) (*Hall, error)
	FindBySlug(slug string) (*Hall, error)
	SlugExists(slug string, excludeID uint) (bool, error)
	List(filter ListFilter) ([]Hall, int64, error)

	// Owner swap runs in one transaction: delete prior OWNER rows, insert
	// the new one. Leaves exactly one OWNER row per hall.
	ReplaceOwnerRole(hallID uint, newOwnerID string) error
	ClearOwnerRole(hallID uint) error

	ListRoles(hallID uint) ([]HallUserRole, error)
	UpsertRole(role *HallUserRole) error
	DeleteRole(hallID uint, userID string, roleName string) error
	FindRole(hallID uint, userID string) (*HallUserRole, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ===========================
// 🏛 Halls
func (r *repository) Create(hall *Hall) error {
	return r.db.Create(hall).Error
}

func (r *repository) Update(hall *Hall) error {
	return r.db.Save(hall).Error
}

func (r *repository) FindByID(id uint) (*Hall, error) {
	var h Hall
	err := r.db.First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) FindBySlug(slug string) (*Hall, error) {
	var h Hall
	err := r.db.Where("slug = ?", slug).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&Hall{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *repository) List(filter ListFilter) ([]Hall, int64, error) {
	query := r.db.Model(&Hall{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", filter.City)
	}
	if filter.IsPremium != nil {
		query = query.Where("is_premium = ?", *filter.IsPremium)
	}
	if filter.GerantID != nil {
		query = query.Where("gerant_id = ?", *filter.GerantID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var halls []Hall
	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&halls).Error
	if err != nil {
		return nil, 0, err
	}

	return halls, total, nil
}

// ===========================
// 👥 Roles
func (r *repository) ReplaceOwnerRole(hallID uint, newOwnerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("hall_id = ? AND role = ?", hallID, RoleOwner).
			Delete(&HallUserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&HallUserRole{
			HallID: hallID,
			UserID: newOwnerID,
			Role:   RoleOwner,
		}).Error
	})
}

func (r *repository) ClearOwnerRole(hallID uint) error {
	return r.db.
		Where("hall_id = ? AND role = ?", hallID, RoleOwner).
		Delete(&HallUserRole{}).Error
}

func (r *repository) ListRoles(hallID uint) ([]HallUserRole, error) {
	var roles []HallUserRole
	err := r.db.
		Where("hall_id = ?", hallID).
		Order("created_at ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repository) UpsertRole(role *HallUserRole) error {
	var existing HallUserRole
	err := r.db.
		Where("hall_id = ? AND user_id = ? AND role = ?", role.HallID, role.UserID, role.Role).
		First(&existing).Error
	if err == nil {
		return nil // already assigned
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(role).Error
}

func (r *repository) DeleteRole(hallID uint, userID string, roleName string) error {
	return r.db.
		Where("hall_id = ? AND user_id = ? AND role = ?", hallID, userID, roleName).
		Delete(&HallUserRole{}).Error
}

func (r *repository) FindRole(hallID uint, userID string) (*HallUserRole, error) {
	var role HallUserRole
	err := r.db.
		Where("hall_id = ? AND user_id = ?", hallID, userID).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}
