package pricing

import (
	"strconv"
	"time"
)

// ============================
// 🔷 Enums
const (
	BillingUnitEvent = "EVENT"
	BillingUnitHour  = "HOUR"
	BillingUnitDay   = "DAY"
)

const (
	PricingFixedEvent = "FIXED_EVENT"
	PricingPerPerson  = "PER_PERSON"
	PricingPerPack    = "PER_PACK"
)

// ============================
// 🔷 GORM Models
//
// Monetary amounts are stored as exact decimal strings (numeric column) and
// only converted to numbers at the DTO boundary.

// HallProduct is a named usage context of a hall (wedding, conference, ...)
type HallProduct struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HallID    uint      `gorm:"not null;index" json:"hall_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Category  string    `gorm:"type:varchar(100);index" json:"category"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Rates []HallProductRate `gorm:"foreignKey:HallProductID" json:"rates,omitempty"`
}

func (HallProduct) TableName() string {
	return "hall_products"
}

// HallProductRate is a priced option under a product
type HallProductRate struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	HallProductID uint       `gorm:"not null;index" json:"hall_product_id"`
	Label         string     `gorm:"type:varchar(255)" json:"label"`
	Currency      string     `gorm:"type:varchar(3);not null" json:"currency"`
	Price         string     `gorm:"type:numeric(12,2);not null" json:"-"`
	BillingUnit   string     `gorm:"type:varchar(10);not null" json:"billing_unit"`
	StartHour     *int       `json:"start_hour,omitempty"`
	EndHour       *int       `json:"end_hour,omitempty"`
	SeasonStart   *time.Time `json:"season_start,omitempty"`
	SeasonEnd     *time.Time `json:"season_end,omitempty"`
	IsDefault     bool       `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HallProductRate) TableName() string {
	return "hall_product_rates"
}

// HallAddon is an optional paid extra scoped to a hall
type HallAddon struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	HallID          uint      `gorm:"not null;index" json:"hall_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	PricingModel    string    `gorm:"type:varchar(20);not null" json:"pricing_model"`
	UnitPrice       string    `gorm:"type:numeric(12,2);not null" json:"-"`
	Currency        string    `gorm:"type:varchar(3);not null" json:"currency"`
	PackSize        *int      `json:"pack_size,omitempty"`
	RedevanceAmount *string   `gorm:"type:numeric(12,2)" json:"-"`
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HallAddon) TableName() string {
	return "hall_addons"
}

// HallBlockedDate excludes a hall from date-filtered search.
// EndDate nil means the block is open-ended.
type HallBlockedDate struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	HallID    uint       `gorm:"not null;index" json:"hall_id"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Reason    string     `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (HallBlockedDate) TableName() string {
	return "hall_blocked_dates"
}

// ============================
// 🟡 Requests

type CreateProductRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category,omitempty"`
	IsPrimary *bool  `json:"is_primary,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type UpdateProductRequest struct {
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	IsPrimary *bool   `json:"is_primary,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type CreateRateRequest struct {
	Label       string  `json:"label,omitempty"`
	Currency    string  `json:"currency" binding:"required,len=3"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	BillingUnit string  `json:"billing_unit" binding:"required"`
	StartHour   *int    `json:"start_hour,omitempty"`
	EndHour     *int    `json:"end_hour,omitempty"`
	SeasonStart *string `json:"season_start,omitempty"` // YYYY-MM-DD
	SeasonEnd   *string `json:"season_end,omitempty"`   // YYYY-MM-DD
	IsDefault   *bool   `json:"is_default,omitempty"`
}

type UpdateRateRequest struct {
	Label       *string  `json:"label,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	BillingUnit *string  `json:"billing_unit,omitempty"`
	StartHour   *int     `json:"start_hour,omitempty"`
	EndHour     *int     `json:"end_hour,omitempty"`
	SeasonStart *string  `json:"season_start,omitempty"`
	SeasonEnd   *string  `json:"season_end,omitempty"`
	IsDefault   *bool    `json:"is_default,omitempty"`
}

type CreateAddonRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description,omitempty"`
	PricingModel    string   `json:"pricing_model" binding:"required"`
	UnitPrice       float64  `json:"unit_price" binding:"required,gt=0"`
	Currency        string   `json:"currency" binding:"required,len=3"`
	PackSize        *int     `json:"pack_size,omitempty"`
	RedevanceAmount *float64 `json:"redevance_amount,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

type UpdateAddonRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	PricingModel    *string  `json:"pricing_model,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
	PackSize        *int     `json:"pack_size,omitempty"`
	RedevanceAmount *float64 `json:"redevance_amount,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

type CreateBlockedDateRequest struct {
	StartDate string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`            // YYYY-MM-DD, absent = open-ended
	Reason    string  `json:"reason,omitempty"`
}

// ============================
// 🟢 DTOs (decimal strings become numbers here, nowhere earlier)

type RateResponse struct {
	ID          uint       `json:"id"`
	Label       string     `json:"label"`
	Currency    string     `json:"currency"`
	Price       float64    `json:"price"`
	BillingUnit string     `json:"billing_unit"`
	StartHour   *int       `json:"start_hour,omitempty"`
	EndHour     *int       `json:"end_hour,omitempty"`
	SeasonStart *time.Time `json:"season_start,omitempty"`
	SeasonEnd   *time.Time `json:"season_end,omitempty"`
	IsDefault   bool       `json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ProductResponse struct {
	ID        uint           `json:"id"`
	HallID    uint           `json:"hall_id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	IsPrimary bool           `json:"is_primary"`
	IsActive  bool           `json:"is_active"`
	Rates     []RateResponse `json:"rates,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type AddonResponse struct {
	ID              uint      `json:"id"`
	HallID          uint      `json:"hall_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PricingModel    string    `json:"pricing_model"`
	UnitPrice       float64   `json:"unit_price"`
	Currency        string    `json:"currency"`
	PackSize        *int      `json:"pack_size,omitempty"`
	RedevanceAmount *float64  `json:"redevance_amount,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// decimalToFloat converts a stored decimal string for DTO output
func decimalToFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// floatToDecimal renders an input amount into the stored decimal string
func floatToDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func ToRateResponse(r *HallProductRate) RateResponse {
	return RateResponse{
		ID:          r.ID,
		Label:       r.Label,
		Currency:    r.Currency,
		Price:       decimalToFloat(r.Price),
		BillingUnit: r.BillingUnit,
		StartHour:   r.StartHour,
		EndHour:     r.EndHour,
		SeasonStart: r.SeasonStart,
		SeasonEnd:   r.SeasonEnd,
		IsDefault:   r.IsDefault,
		CreatedAt:   r.CreatedAt,
	}
}

func ToProductResponse(p *HallProduct) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		HallID:    p.HallID,
		Name:      p.Name,
		Category:  p.Category,
		IsPrimary: p.IsPrimary,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
	for i := range p.Rates {
		resp.Rates = append(resp.Rates, ToRateResponse(&p.Rates[i]))
	}
	return resp
}

func ToAddonResponse(a *HallAddon) AddonResponse {
	resp := AddonResponse{
		ID:           a.ID,
		HallID:       a.HallID,
		Name:         a.Name,
		Description:  a.Description,
		PricingModel: a.PricingModel,
		UnitPrice:    decimalToFloat(a.UnitPrice),
		Currency:     a.Currency,
		PackSize:     a.PackSize,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
	if a.RedevanceAmount != nil {
		amount := decimalToFloat(*a.RedevanceAmount)
		resp.RedevanceAmount = &amount
	}
	return resp
}

func validBillingUnit(u string) bool {
	return u == BillingUnitEvent || u == BillingUnitHour || u == BillingUnitDay
}

func validPricingModel(m string) bool {
	return m == PricingFixedEvent || m == PricingPerPerson || m == PricingPerPack
}
