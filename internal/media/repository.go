package media

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateMedia(m *Media) error
	FindMedia(hallID, mediaID uint) (*Media, error)
	DeleteMedia(hallID, mediaID uint) error

	FindOrCreateTagType(name string) (*MediaTagType, error)
	SetPrimaryTag(hallID, mediaID, tagTypeID uint) (*MediaTag, error)
	CreateTag(t *MediaTag) error

	ListMediaForHall(hallID uint, filter ListMediaFilter) ([]Media, error)
	GetPrimaryMediaForHall(hallID uint, tagName string) (*Media, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateMedia(m *Media) error {
	return r.db.Create(m).Error
}

func (r *repository) FindMedia(hallID, mediaID uint) (*Media, error) {
	var m Media
	err := r.db.
		Preload("Tags.TagType").
		Where("id = ? AND hall_id = ?", mediaID, hallID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) DeleteMedia(hallID, mediaID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id = ?", mediaID).Delete(&MediaTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND hall_id = ?", mediaID, hallID).Delete(&Media{}).Error
	})
}

// ===========================
// 🏷 Tag types & tags

// FindOrCreateTagType matches case-insensitively and creates on first use
func (r *repository) FindOrCreateTagType(name string) (*MediaTagType, error) {
	var tt MediaTagType
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&tt).Error
	if err == nil {
		return &tt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tt = MediaTagType{Name: name}
	if err := r.db.Create(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

// SetPrimaryTag demotes the hall's current primary of the type and promotes
// the given media in one transaction, so a failure never leaves the hall
// without a primary. An existing (media, tag type) row is promoted in place
// rather than re-inserted.
func (r *repository) SetPrimaryTag(hallID, mediaID, tagTypeID uint) (*MediaTag, error) {
	var tag MediaTag
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&MediaTag{}).
			Where("id IN (?)", tx.Model(&MediaTag{}).
				Select("media_tags.id").
				Joins("JOIN media ON media.id = media_tags.media_id").
				Where("media.hall_id = ? AND media_tags.tag_type_id = ? AND media_tags.is_primary = ?", hallID, tagTypeID, true),
			).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		err := tx.Where("media_id = ? AND tag_type_id = ?", mediaID, tagTypeID).First(&tag).Error
		switch {
		case err == nil:
			return tx.Model(&tag).Update("is_primary", true).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			tag = MediaTag{MediaID: mediaID, TagTypeID: tagTypeID, IsPrimary: true}
			return tx.Create(&tag).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *repository) CreateTag(t *MediaTag) error {
	return r.db.Create(t).Error
}

// ===========================
// 📄 Queries

func (r *repository) ListMediaForHall(hallID uint, filter ListMediaFilter) ([]Media, error) {
	query := r.db.Model(&Media{}).
		Preload("Tags.TagType").
		Where("media.hall_id = ?", hallID)

	if filter.TagName != "" {
		query = query.
			Joins("JOIN media_tags ON media_tags.media_id = media.id").
			Joins("JOIN media_tag_types ON media_tag_types.id = media_tags.tag_type_id").
			Where("LOWER(media_tag_types.name) = LOWER(?)", filter.TagName)
	}
	if filter.MediaType != "" {
		query = query.Where("media.media_type = ?", filter.MediaType)
	}

	var items []Media
	err := query.
		Order("media.sort_order ASC, media.created_at DESC").
		Find(&items).Error
	return items, err
}

// GetPrimaryMediaForHall returns (nil, nil) when no primary exists
func (r *repository) GetPrimaryMediaForHall(hallID uint, tagName string) (*Media, error) {
	var m Media
	err := r.db.Model(&Media{}).
		Joins("JOIN media_tags ON media_tags.media_id = media.id").
		Joins("JOIN media_tag_types ON media_tag_types.id = media_tags.tag_type_id").
		Where("media.hall_id = ? AND LOWER(media_tag_types.name) = LOWER(?) AND media_tags.is_primary = ?", hallID, tagName, true).
		Order("media.created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
