package hallquery

import (
	"time"

	"github.com/mbokatech/hall-management-backend/internal/pricing"
)

// ============================
// 🟡 Filters

// PublicListFilter carries every search knob of the public catalogue
type PublicListFilter struct {
	City        string
	IsPremium   *bool
	CapacityMin *int
	CapacityMax *int
	Keyword     string
	EventType   string
	Date        *time.Time // desired event date; halls blocked on it are excluded
	PriceMin    *float64
	PriceMax    *float64
	Sort        string // price_asc | price_desc | capacity_desc | relevance | featured
	Page        int
	Limit       int
}

const (
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortCapacityDesc = "capacity_desc"
	SortRelevance    = "relevance"
	SortFeatured     = "featured"
)

// ============================
// 🟢 DTOs

// PublicHallSummary is one row of the public search result. MinPrice is the
// cheapest rate across the hall's active products; nil when nothing is priced
// yet. Currency is the lexical minimum across the same rates and may not
// belong to the same row as MinPrice.
type PublicHallSummary struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	City         string    `json:"city"`
	Capacity     *int      `json:"capacity,omitempty"`
	IsPremium    bool      `json:"is_premium"`
	MinPrice     *float64  `json:"min_price,omitempty"`
	Currency     *string   `json:"currency,omitempty"`
	HeroImageURL *string   `json:"hero_image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicHallDetail is the full public page for one hall
type PublicHallDetail struct {
	ID           uint                      `json:"id"`
	Name         string                    `json:"name"`
	Slug         string                    `json:"slug"`
	Description  string                    `json:"description"`
	City         string                    `json:"city"`
	Address      string                    `json:"address"`
	Capacity     *int                      `json:"capacity,omitempty"`
	IsPremium    bool                      `json:"is_premium"`
	HeroImageURL *string                   `json:"hero_image_url,omitempty"`
	Gallery      []GalleryItem             `json:"gallery"`
	Products     []pricing.ProductResponse `json:"products"`
	Addons       []pricing.AddonResponse   `json:"addons"`
	CreatedAt    time.Time                 `json:"created_at"`
}

type GalleryItem struct {
	ID        uint   `json:"id"`
	FileURL   string `json:"file_url"`
	MediaType string `json:"media_type"`
	SortOrder int    `json:"sort_order"`
}

// PaginatedHallSummaries is the standard list envelope
type PaginatedHallSummaries struct {
	Data  []PublicHallSummary `json:"data"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Total int64               `json:"total"`
}

// hallRow is the raw scan target of the aggregated search query
type hallRow struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	City        string
	Capacity    *int
	IsPremium   bool
	CreatedAt   time.Time
	MinPrice    *string `gorm:"column:min_price"`
	MinCurrency *string `gorm:"column:min_currency"`
}

// hallDetailRow is the raw scan target of the detail lookup
type hallDetailRow struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	City        string
	Address     string
	Capacity    *int
	Status      string
	IsPremium   bool
	CreatedAt   time.Time
}
