package pricing

import (
	"gorm.io/gorm"
)

type Repository interface {
	// Products
	CreateProduct(p *HallProduct) error
	UpdateProduct(p *HallProduct) error
	FindProduct(hallID, productID uint) (*HallProduct, error)
	ListProducts(hallID uint, activeOnly bool) ([]HallProduct, error)
	DeleteProduct(hallID, productID uint) error

	// Rates
	CreateRate(r *HallProductRate) error
	UpdateRate(r *HallProductRate) error
	FindRate(productID, rateID uint) (*HallProductRate, error)
	ListRates(productID uint) ([]HallProductRate, error)
	DeleteRate(productID, rateID uint) error

	// Addons
	CreateAddon(a *HallAddon) error
	UpdateAddon(a *HallAddon) error
	FindAddon(hallID, addonID uint) (*HallAddon, error)
	ListAddons(hallID uint, activeOnly bool) ([]HallAddon, error)
	DeleteAddon(hallID, addonID uint) error

	// Blocked dates
	CreateBlockedDate(b *HallBlockedDate) error
	ListBlockedDates(hallID uint) ([]HallBlockedDate, error)
	DeleteBlockedDate(hallID, blockID uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ===========================
// 📦 Products
func (r *repository) CreateProduct(p *HallProduct) error {
	return r.db.Create(p).Error
}

func (r *repository) UpdateProduct(p *HallProduct) error {
	return r.db.Save(p).Error
}

func (r *repository) FindProduct(hallID, productID uint) (*HallProduct, error) {
	var p HallProduct
	err := r.db.
		Preload("Rates").
		Where("id = ? AND hall_id = ?", productID, hallID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Primary products first, then oldest first
func (r *repository) ListProducts(hallID uint, activeOnly bool) ([]HallProduct, error) {
	query := r.db.Preload("Rates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("hall_id = ?", hallID)
	if activeOnly {
		query = query.Where("is_active = TRUE")
	}

	var products []HallProduct
	err := query.
		Order("is_primary DESC, created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *repository) DeleteProduct(hallID, productID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("hall_product_id = ?", productID).
			Delete(&HallProductRate{}).Error; err != nil {
			return err
		}
		return tx.
			Where("id = ? AND hall_id = ?", productID, hallID).
			Delete(&HallProduct{}).Error
	})
}

// ===========================
// 💰 Rates
func (r *repository) CreateRate(rate *HallProductRate) error {
	return r.db.Create(rate).Error
}

func (r *repository) UpdateRate(rate *HallProductRate) error {
	return r.db.Save(rate).Error
}

func (r *repository) FindRate(productID, rateID uint) (*HallProductRate, error) {
	var rate HallProductRate
	err := r.db.
		Where("id = ? AND hall_product_id = ?", rateID, productID).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *repository) ListRates(productID uint) ([]HallProductRate, error) {
	var rates []HallProductRate
	err := r.db.
		Where("hall_product_id = ?", productID).
		Order("created_at ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) DeleteRate(productID, rateID uint) error {
	return r.db.
		Where("id = ? AND hall_product_id = ?", rateID, productID).
		Delete(&HallProductRate{}).Error
}

// ===========================
// ➕ Addons
func (r *repository) CreateAddon(a *HallAddon) error {
	return r.db.Create(a).Error
}

func (r *repository) UpdateAddon(a *HallAddon) error {
	return r.db.Save(a).Error
}

func (r *repository) FindAddon(hallID, addonID uint) (*HallAddon, error) {
	var a HallAddon
	err := r.db.
		Where("id = ? AND hall_id = ?", addonID, hallID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAddons(hallID uint, activeOnly bool) ([]HallAddon, error) {
	query := r.db.Where("hall_id = ?", hallID)
	if activeOnly {
		query = query.Where("is_active = TRUE")
	}

	var addons []HallAddon
	err := query.
		Order("created_at ASC").
		Find(&addons).Error
	return addons, err
}

func (r *repository) DeleteAddon(hallID, addonID uint) error {
	return r.db.
		Where("id = ? AND hall_id = ?", addonID, hallID).
		Delete(&HallAddon{}).Error
}

// ===========================
// 📅 Blocked dates
func (r *repository) CreateBlockedDate(b *HallBlockedDate) error {
	return r.db.Create(b).Error
}

func (r *repository) ListBlockedDates(hallID uint) ([]HallBlockedDate, error) {
	var blocks []HallBlockedDate
	err := r.db.
		Where("hall_id = ?", hallID).
		Order("created_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *repository) DeleteBlockedDate(hallID, blockID uint) error {
	return r.db.
		Where("id = ? AND hall_id = ?", blockID, hallID).
		Delete(&HallBlockedDate{}).Error
}
