package hallquery

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	SearchHalls(filter PublicListFilter) ([]hallRow, int64, error)
	FindHallBySlug(slug string) (*hallDetailRow, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// buildSearchQuery assembles the aggregated catalogue query up to (and
// including) GROUP BY and HAVING; sorting and pagination are layered on top.
func (r *repository) buildSearchQuery(filter PublicListFilter) *gorm.DB {
	query := r.db.Table("halls").
		Select("halls.id, halls.name, halls.slug, halls.description, halls.city, halls.capacity, halls.is_premium, halls.created_at, MIN(hall_product_rates.price) AS min_price, MIN(hall_product_rates.currency) AS min_currency").
		Joins("LEFT JOIN hall_products ON hall_products.hall_id = halls.id AND hall_products.is_active = ?", true).
		Joins("LEFT JOIN hall_product_rates ON hall_product_rates.hall_product_id = hall_products.id").
		Where("halls.status = ?", "ACTIVE")

	if filter.City != "" {
		query = query.Where("halls.city ILIKE ?", filter.City)
	}
	if filter.IsPremium != nil {
		query = query.Where("halls.is_premium = ?", *filter.IsPremium)
	}
	if filter.CapacityMin != nil {
		query = query.Where("halls.capacity >= ?", *filter.CapacityMin)
	}
	if filter.CapacityMax != nil {
		query = query.Where("halls.capacity <= ?", *filter.CapacityMax)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(
			"halls.name ILIKE ? OR halls.city ILIKE ? OR halls.description ILIKE ? OR hall_products.name ILIKE ?",
			kw, kw, kw, kw,
		)
	}
	if filter.EventType != "" {
		query = query.Where("hall_products.category ILIKE ?", filter.EventType)
	}
	if filter.Date != nil {
		// a hall is out when any blocked range covers the date; a null
		// end_date means the block is open-ended
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM hall_blocked_dates b WHERE b.hall_id = halls.id AND b.start_date <= ? AND (b.end_date IS NULL OR b.end_date >= ?))",
			*filter.Date, *filter.Date,
		)
	}

	query = query.Group("halls.id")

	// price bounds reference the aggregate, so they live in HAVING
	if filter.PriceMin != nil {
		query = query.Having("MIN(hall_product_rates.price) >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Having("MIN(hall_product_rates.price) <= ?", *filter.PriceMax)
	}

	return query
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "MIN(hall_product_rates.price) ASC NULLS LAST"
	case SortPriceDesc:
		return "MIN(hall_product_rates.price) DESC NULLS LAST"
	case SortCapacityDesc:
		return "halls.capacity DESC NULLS LAST"
	case SortRelevance:
		return "halls.is_premium DESC, MIN(hall_product_rates.price) ASC NULLS LAST, halls.created_at DESC"
	default: // featured
		return "halls.is_premium DESC, halls.created_at DESC"
	}
}

func (r *repository) SearchHalls(filter PublicListFilter) ([]hallRow, int64, error) {
	// total over the grouped result, not over joined rows
	countSub := r.buildSearchQuery(filter).Select("halls.id")
	var total int64
	if err := r.db.Table("(?) AS grouped", countSub).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var rows []hallRow
	err := r.buildSearchQuery(filter).
		Order(orderClause(filter.Sort)).
		Offset(offset).
		Limit(filter.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *repository) FindHallBySlug(slug string) (*hallDetailRow, error) {
	var row hallDetailRow
	err := r.db.Table("halls").
		Select("id, name, slug, description, city, address, capacity, status, is_premium, created_at").
		Where("slug = ?", slug).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
