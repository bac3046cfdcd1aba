package hallquery

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/media"
	"github.com/mbokatech/hall-management-backend/internal/pricing"
	"github.com/mbokatech/hall-management-backend/utils"
)

// Service composes halls, pricing and media into the public read model.
// Everything here is unauthenticated-facing: only ACTIVE halls ever leave
// this package.
type Service struct {
	Repo       Repository
	MediaSvc   *media.Service
	PricingSvc *pricing.Service
	CacheTTL   time.Duration
}

func NewService(r Repository, mediaSvc *media.Service, pricingSvc *pricing.Service, cacheTTLSeconds int) *Service {
	return &Service{
		Repo:       r,
		MediaSvc:   mediaSvc,
		PricingSvc: pricingSvc,
		CacheTTL:   time.Duration(cacheTTLSeconds) * time.Second,
	}
}

// ===========================
// 🔍 Public search

func (s *Service) GetPublicHallList(filter PublicListFilter) (*PaginatedHallSummaries, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return nil, apperror.Validation("price_min must not exceed price_max")
	}

	rows, total, err := s.Repo.SearchHalls(filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]PublicHallSummary, 0, len(rows))
	for i := range rows {
		summary := toSummary(&rows[i])

		// one extra query per row; fine at page sizes capped to 100
		hero, err := s.MediaSvc.GetPrimaryMediaForHall(rows[i].ID, media.TagHero)
		if err != nil {
			return nil, err
		}
		if hero != nil {
			summary.HeroImageURL = &hero.FileURL
		}

		summaries = append(summaries, summary)
	}

	return &PaginatedHallSummaries{
		Data:  summaries,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	}, nil
}

func toSummary(row *hallRow) PublicHallSummary {
	summary := PublicHallSummary{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		City:        row.City,
		Capacity:    row.Capacity,
		IsPremium:   row.IsPremium,
		Currency:    row.MinCurrency,
		CreatedAt:   row.CreatedAt,
	}
	if row.MinPrice != nil {
		if price, err := strconv.ParseFloat(*row.MinPrice, 64); err == nil {
			summary.MinPrice = &price
		}
	}
	return summary
}

// ===========================
// 📄 Public detail

func (s *Service) GetPublicHallDetail(ctx context.Context, slug string) (*PublicHallDetail, error) {
	cacheKey := "hall_detail:" + slug
	if cached := utils.CacheGet(ctx, cacheKey); cached != "" {
		var detail PublicHallDetail
		if err := json.Unmarshal([]byte(cached), &detail); err == nil {
			return &detail, nil
		}
	}

	row, err := s.Repo.FindHallBySlug(slug)
	if err != nil {
		return nil, err
	}
	// non-ACTIVE halls are reported as absent, same as truly missing ones
	if row == nil || row.Status != "ACTIVE" {
		return nil, apperror.NotFound("hall not found")
	}

	detail := &PublicHallDetail{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		City:        row.City,
		Address:     row.Address,
		Capacity:    row.Capacity,
		IsPremium:   row.IsPremium,
		Gallery:     []GalleryItem{},
		CreatedAt:   row.CreatedAt,
	}

	hero, err := s.MediaSvc.GetPrimaryMediaForHall(row.ID, media.TagHero)
	if err != nil {
		return nil, err
	}
	if hero != nil {
		detail.HeroImageURL = &hero.FileURL
	}

	gallery, err := s.MediaSvc.ListMediaForHall(row.ID, media.ListMediaFilter{MediaType: media.MediaTypeImage})
	if err != nil {
		return nil, err
	}
	for i := range gallery {
		detail.Gallery = append(detail.Gallery, GalleryItem{
			ID:        gallery[i].ID,
			FileURL:   gallery[i].FileURL,
			MediaType: gallery[i].MediaType,
			SortOrder: gallery[i].SortOrder,
		})
	}

	if detail.Products, err = s.PricingSvc.ListActiveProducts(row.ID); err != nil {
		return nil, err
	}
	if detail.Addons, err = s.PricingSvc.ListActiveAddons(row.ID); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(detail); err == nil {
		utils.CacheSet(ctx, cacheKey, string(payload), s.CacheTTL)
	} else {
		fmt.Printf("⚠️ Hall detail cache marshal failed for %s: %v\n", slug, err)
	}

	return detail, nil
}
