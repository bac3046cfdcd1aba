package hallquery

import (
	"context"
	"testing"
	"time"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/media"
	"github.com/mbokatech/hall-management-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ===========================
// fakes

type fakeQueryRepository struct {
	rows       []hallRow
	total      int64
	detail     *hallDetailRow
	lastFilter PublicListFilter
}

func (f *fakeQueryRepository) SearchHalls(filter PublicListFilter) ([]hallRow, int64, error) {
	f.lastFilter = filter
	return f.rows, f.total, nil
}

func (f *fakeQueryRepository) FindHallBySlug(slug string) (*hallDetailRow, error) {
	if f.detail == nil || f.detail.Slug != slug {
		return nil, nil
	}
	copied := *f.detail
	return &copied, nil
}

// fakeMediaRepository serves hero lookups keyed by hall id
type fakeMediaRepository struct {
	heroes  map[uint]*media.Media
	gallery map[uint][]media.Media
}

func (f *fakeMediaRepository) CreateMedia(m *media.Media) error { return nil }
func (f *fakeMediaRepository) DeleteMedia(hallID, mediaID uint) error { return nil }
func (f *fakeMediaRepository) CreateTag(t *media.MediaTag) error { return nil }
func (f *fakeMediaRepository) SetPrimaryTag(hallID, mediaID, tagTypeID uint) (*media.MediaTag, error) {
	return &media.MediaTag{MediaID: mediaID, TagTypeID: tagTypeID, IsPrimary: true}, nil
}

func (f *fakeMediaRepository) FindMedia(hallID, mediaID uint) (*media.Media, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMediaRepository) FindOrCreateTagType(name string) (*media.MediaTagType, error) {
	return &media.MediaTagType{ID: 1, Name: name}, nil
}

func (f *fakeMediaRepository) ListMediaForHall(hallID uint, filter media.ListMediaFilter) ([]media.Media, error) {
	return f.gallery[hallID], nil
}

func (f *fakeMediaRepository) GetPrimaryMediaForHall(hallID uint, tagName string) (*media.Media, error) {
	return f.heroes[hallID], nil
}

// fakePricingRepository serves active products/addons keyed by hall id
type fakePricingRepository struct {
	products map[uint][]pricing.HallProduct
	addons   map[uint][]pricing.HallAddon
}

func (f *fakePricingRepository) CreateProduct(p *pricing.HallProduct) error { return nil }
func (f *fakePricingRepository) UpdateProduct(p *pricing.HallProduct) error { return nil }
func (f *fakePricingRepository) FindProduct(hallID, productID uint) (*pricing.HallProduct, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePricingRepository) ListProducts(hallID uint, activeOnly bool) ([]pricing.HallProduct, error) {
	return f.products[hallID], nil
}

func (f *fakePricingRepository) DeleteProduct(hallID, productID uint) error { return nil }

func (f *fakePricingRepository) CreateRate(r *pricing.HallProductRate) error { return nil }
func (f *fakePricingRepository) UpdateRate(r *pricing.HallProductRate) error { return nil }
func (f *fakePricingRepository) FindRate(productID, rateID uint) (*pricing.HallProductRate, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePricingRepository) ListRates(productID uint) ([]pricing.HallProductRate, error) {
	return nil, nil
}

func (f *fakePricingRepository) DeleteRate(productID, rateID uint) error { return nil }

func (f *fakePricingRepository) CreateAddon(a *pricing.HallAddon) error { return nil }
func (f *fakePricingRepository) UpdateAddon(a *pricing.HallAddon) error { return nil }
func (f *fakePricingRepository) FindAddon(hallID, addonID uint) (*pricing.HallAddon, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePricingRepository) ListAddons(hallID uint, activeOnly bool) ([]pricing.HallAddon, error) {
	return f.addons[hallID], nil
}

func (f *fakePricingRepository) DeleteAddon(hallID, addonID uint) error { return nil }

func (f *fakePricingRepository) CreateBlockedDate(b *pricing.HallBlockedDate) error { return nil }
func (f *fakePricingRepository) ListBlockedDates(hallID uint) ([]pricing.HallBlockedDate, error) {
	return nil, nil
}
func (f *fakePricingRepository) DeleteBlockedDate(hallID, blockID uint) error { return nil }

func newTestService(repo *fakeQueryRepository, mediaRepo *fakeMediaRepository, pricingRepo *fakePricingRepository) *Service {
	if mediaRepo == nil {
		mediaRepo = &fakeMediaRepository{heroes: map[uint]*media.Media{}, gallery: map[uint][]media.Media{}}
	}
	if pricingRepo == nil {
		pricingRepo = &fakePricingRepository{products: map[uint][]pricing.HallProduct{}, addons: map[uint][]pricing.HallAddon{}}
	}
	mediaSvc := media.NewService(mediaRepo, nil)
	pricingSvc := pricing.NewService(pricingRepo, nil)
	return NewService(repo, mediaSvc, pricingSvc, 0)
}

func floatPtr(f float64) *float64 { return &f }

// ===========================
// List

func TestGetPublicHallList_ClampsPagination(t *testing.T) {
	repo := &fakeQueryRepository{}
	svc := newTestService(repo, nil, nil)

	result, err := svc.GetPublicHallList(PublicListFilter{Page: -3, Limit: 9999})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 100, result.Limit)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 100, repo.lastFilter.Limit)
}

func TestGetPublicHallList_MapsAggregatesAndHero(t *testing.T) {
	price := "8500.00"
	currency := "MAD"
	repo := &fakeQueryRepository{
		rows: []hallRow{
			{ID: 1, Name: "Palais A", Slug: "palais-a", City: "Casablanca", MinPrice: &price, MinCurrency: &currency},
			{ID: 2, Name: "Palais B", Slug: "palais-b", City: "Rabat"},
		},
		total: 2,
	}
	mediaRepo := &fakeMediaRepository{
		heroes: map[uint]*media.Media{
			1: {ID: 10, HallID: 1, FileURL: "https://storage.example.com/hero.jpg", MediaType: media.MediaTypeImage},
		},
		gallery: map[uint][]media.Media{},
	}
	svc := newTestService(repo, mediaRepo, nil)

	result, err := svc.GetPublicHallList(PublicListFilter{})
	require.NoError(t, err)
	require.Len(t, result.Data, 2)

	first := result.Data[0]
	require.NotNil(t, first.MinPrice)
	assert.InDelta(t, 8500.0, *first.MinPrice, 0.001)
	require.NotNil(t, first.Currency)
	assert.Equal(t, "MAD", *first.Currency)
	require.NotNil(t, first.HeroImageURL)
	assert.Equal(t, "https://storage.example.com/hero.jpg", *first.HeroImageURL)

	// an unpriced hall without a hero still appears, with empty slots
	second := result.Data[1]
	assert.Nil(t, second.MinPrice)
	assert.Nil(t, second.HeroImageURL)

	assert.Equal(t, int64(2), result.Total)
}

func TestGetPublicHallList_RejectsInvertedPriceBounds(t *testing.T) {
	svc := newTestService(&fakeQueryRepository{}, nil, nil)

	_, err := svc.GetPublicHallList(PublicListFilter{
		PriceMin: floatPtr(5000),
		PriceMax: floatPtr(1000),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// ===========================
// Detail

func TestGetPublicHallDetail_AssemblesPage(t *testing.T) {
	repo := &fakeQueryRepository{
		detail: &hallDetailRow{
			ID: 1, Name: "Palais A", Slug: "palais-a", City: "Casablanca",
			Address: "12 Rue des Orangers", Status: "ACTIVE", CreatedAt: time.Now(),
		},
	}
	mediaRepo := &fakeMediaRepository{
		heroes: map[uint]*media.Media{
			1: {ID: 10, HallID: 1, FileURL: "https://storage.example.com/hero.jpg"},
		},
		gallery: map[uint][]media.Media{
			1: {
				{ID: 11, HallID: 1, FileURL: "https://storage.example.com/a.jpg", MediaType: media.MediaTypeImage, SortOrder: 1},
				{ID: 12, HallID: 1, FileURL: "https://storage.example.com/b.jpg", MediaType: media.MediaTypeImage, SortOrder: 2},
			},
		},
	}
	pricingRepo := &fakePricingRepository{
		products: map[uint][]pricing.HallProduct{
			1: {{ID: 20, HallID: 1, Name: "Mariage", IsActive: true}},
		},
		addons: map[uint][]pricing.HallAddon{
			1: {{ID: 30, HallID: 1, Name: "Traiteur", PricingModel: "PER_PERSON", UnitPrice: "250.00", Currency: "MAD", IsActive: true}},
		},
	}
	svc := newTestService(repo, mediaRepo, pricingRepo)

	detail, err := svc.GetPublicHallDetail(context.Background(), "palais-a")
	require.NoError(t, err)

	assert.Equal(t, "Palais A", detail.Name)
	require.NotNil(t, detail.HeroImageURL)
	assert.Len(t, detail.Gallery, 2)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "Mariage", detail.Products[0].Name)
	require.Len(t, detail.Addons, 1)
	assert.InDelta(t, 250.0, detail.Addons[0].UnitPrice, 0.001)
}

func TestGetPublicHallDetail_HidesNonActive(t *testing.T) {
	repo := &fakeQueryRepository{
		detail: &hallDetailRow{ID: 1, Slug: "draft-hall", Status: "DRAFT"},
	}
	svc := newTestService(repo, nil, nil)

	_, err := svc.GetPublicHallDetail(context.Background(), "draft-hall")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPublicHallDetail_MissingSlug(t *testing.T) {
	svc := newTestService(&fakeQueryRepository{}, nil, nil)

	_, err := svc.GetPublicHallDetail(context.Background(), "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
