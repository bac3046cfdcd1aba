package media

import "time"

// ============================
// 🔷 Enums
const (
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeDocument = "DOCUMENT"
)

// TagHero is the conventional tag type for a hall's representative image.
const TagHero = "HERO"

// ============================
// 🔷 GORM Models

// Media is one uploaded file belonging to a hall
type Media struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	HallID          uint      `gorm:"not null;index" json:"hall_id"`
	StorageProvider string    `gorm:"type:varchar(50);not null" json:"storage_provider"`
	FileURL         string    `gorm:"type:text;not null" json:"file_url"`
	MediaType       string    `gorm:"type:varchar(10);not null;index" json:"media_type"`
	SortOrder       int       `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Tags []MediaTag `gorm:"foreignKey:MediaID" json:"tags,omitempty"`
}

func (Media) TableName() string {
	return "media"
}

// MediaTagType is a named tag category, created on first use
type MediaTagType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MediaTagType) TableName() string {
	return "media_tag_types"
}

// MediaTag links a media row to a tag type. At most one is_primary=true per
// (hall, tag type) — enforced by the service unsetting prior primaries before
// insert, not by a database constraint.
type MediaTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MediaID   uint      `gorm:"not null;uniqueIndex:idx_media_tag" json:"media_id"`
	TagTypeID uint      `gorm:"not null;uniqueIndex:idx_media_tag" json:"tag_type_id"`
	IsPrimary bool      `gorm:"default:false;index" json:"is_primary"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	TagType MediaTagType `gorm:"foreignKey:TagTypeID" json:"tag_type,omitempty"`
}

func (MediaTag) TableName() string {
	return "media_tags"
}

// ============================
// 🟡 Requests

type CreateMediaRequest struct {
	StorageProvider string `json:"storage_provider" binding:"required"`
	FileURL         string `json:"file_url" binding:"required"`
	MediaType       string `json:"media_type" binding:"required"`
	SortOrder       int    `json:"sort_order,omitempty"`
}

type TagMediaRequest struct {
	TagName   string `json:"tag_name" binding:"required"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

type ListMediaFilter struct {
	TagName   string
	MediaType string
}

func validMediaType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeVideo || t == MediaTypeDocument
}
