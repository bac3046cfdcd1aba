package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
	"github.com/mbokatech/hall-management-backend/utils"
	"gorm.io/gorm"
)

type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// ===========================
// 📷 Create (metadata only)

// CreateMedia persists metadata for a file that is already stored elsewhere.
func (s *Service) CreateMedia(ctx context.Context, hallID uint, req *CreateMediaRequest, actorID *string, ip string) (*Media, error) {
	if !validMediaType(req.MediaType) {
		return nil, apperror.Validation("invalid media_type: " + req.MediaType)
	}

	m := &Media{
		HallID:          hallID,
		StorageProvider: req.StorageProvider,
		FileURL:         req.FileURL,
		MediaType:       req.MediaType,
		SortOrder:       req.SortOrder,
	}
	if err := s.Repo.CreateMedia(m); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "MEDIA_CREATED", map[string]interface{}{
		"media_id": m.ID, "media_type": m.MediaType,
	}, ip)

	return m, nil
}

// ===========================
// ⬆️ Upload + create

// UploadAndCreate streams the file to the storage bucket, then records the
// public URL as a media row.
func (s *Service) UploadAndCreate(ctx context.Context, hallID uint, fileName, contentType string, src io.Reader, mediaType string, sortOrder int, actorID *string, ip string) (*Media, error) {
	if !validMediaType(mediaType) {
		return nil, apperror.Validation("invalid media_type: " + mediaType)
	}

	ext := filepath.Ext(fileName)
	objectName := fmt.Sprintf("halls/%d/%s%s", hallID, uuid.New().String(), ext)

	if err := utils.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("storage bucket unavailable: %w", err)
	}

	fileURL, err := utils.UploadObject(ctx, objectName, contentType, src)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	m := &Media{
		HallID:          hallID,
		StorageProvider: "FIREBASE",
		FileURL:         fileURL,
		MediaType:       mediaType,
		SortOrder:       sortOrder,
	}
	if err := s.Repo.CreateMedia(m); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "MEDIA_UPLOADED", map[string]interface{}{
		"media_id": m.ID, "object": objectName,
	}, ip)

	return m, nil
}

// ===========================
// 🏷 Tagging

// TagMediaByName attaches a tag (created on first use) to a media row. When
// isPrimary is requested, demoting the hall's current primary and promoting
// this media happen in one transaction, keeping "one primary per
// (hall, tag type)" even when the request fails midway.
func (s *Service) TagMediaByName(ctx context.Context, hallID, mediaID uint, req *TagMediaRequest, actorID *string, ip string) (*MediaTag, error) {
	name := strings.TrimSpace(req.TagName)
	if name == "" {
		return nil, apperror.Validation("tag_name must not be empty")
	}

	if _, err := s.Repo.FindMedia(hallID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("media not found")
		}
		return nil, err
	}

	tagType, err := s.Repo.FindOrCreateTagType(name)
	if err != nil {
		return nil, err
	}

	var tag *MediaTag
	if req.IsPrimary {
		tag, err = s.Repo.SetPrimaryTag(hallID, mediaID, tagType.ID)
		if err != nil {
			return nil, err
		}
	} else {
		tag = &MediaTag{
			MediaID:   mediaID,
			TagTypeID: tagType.ID,
		}
		if err := s.Repo.CreateTag(tag); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.Conflict("media already carries this tag")
			}
			return nil, err
		}
	}
	tag.TagType = *tagType

	s.audit(ctx, actorID, &hallID, "MEDIA_TAGGED", map[string]interface{}{
		"media_id": mediaID, "tag": tagType.Name, "is_primary": req.IsPrimary,
	}, ip)

	return tag, nil
}

// ===========================
// 📄 Queries

func (s *Service) ListMediaForHall(hallID uint, filter ListMediaFilter) ([]Media, error) {
	if filter.MediaType != "" && !validMediaType(filter.MediaType) {
		return nil, apperror.Validation("invalid media_type: " + filter.MediaType)
	}
	return s.Repo.ListMediaForHall(hallID, filter)
}

// GetPrimaryMediaForHall reports absence as (nil, nil) — callers treat a
// missing hero as an empty slot, not a failure.
func (s *Service) GetPrimaryMediaForHall(hallID uint, tagName string) (*Media, error) {
	return s.Repo.GetPrimaryMediaForHall(hallID, tagName)
}

func (s *Service) DeleteMedia(ctx context.Context, hallID, mediaID uint, actorID *string, ip string) error {
	if _, err := s.Repo.FindMedia(hallID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("media not found")
		}
		return err
	}
	if err := s.Repo.DeleteMedia(hallID, mediaID); err != nil {
		return err
	}
	s.audit(ctx, actorID, &hallID, "MEDIA_DELETED", map[string]interface{}{
		"media_id": mediaID,
	}, ip)
	return nil
}

func (s *Service) audit(ctx context.Context, userID *string, hallID *uint, action string, details map[string]interface{}, ip string) {
	if s.AuditSvc == nil {
		return
	}
	if err := s.AuditSvc.LogAction(ctx, userID, hallID, action, details, ip, "success"); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
