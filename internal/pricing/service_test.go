package pricing

import (
	"context"
	"testing"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	products map[uint]*HallProduct
	rates    map[uint]*HallProductRate
	addons   map[uint]*HallAddon
	blocks   map[uint]*HallBlockedDate
	nextID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		products: map[uint]*HallProduct{},
		rates:    map[uint]*HallProductRate{},
		addons:   map[uint]*HallAddon{},
		blocks:   map[uint]*HallBlockedDate{},
		nextID:   1,
	}
}

func (f *fakeRepository) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeRepository) CreateProduct(p *HallProduct) error {
	p.ID = f.id()
	copied := *p
	f.products[p.ID] = &copied
	return nil
}

func (f *fakeRepository) UpdateProduct(p *HallProduct) error {
	copied := *p
	f.products[p.ID] = &copied
	return nil
}

func (f *fakeRepository) FindProduct(hallID, productID uint) (*HallProduct, error) {
	p, ok := f.products[productID]
	if !ok || p.HallID != hallID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) ListProducts(hallID uint, activeOnly bool) ([]HallProduct, error) {
	var out []HallProduct
	for _, p := range f.products {
		if p.HallID != hallID {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepository) DeleteProduct(hallID, productID uint) error {
	delete(f.products, productID)
	for id, r := range f.rates {
		if r.HallProductID == productID {
			delete(f.rates, id)
		}
	}
	return nil
}

func (f *fakeRepository) CreateRate(r *HallProductRate) error {
	r.ID = f.id()
	copied := *r
	f.rates[r.ID] = &copied
	return nil
}

func (f *fakeRepository) UpdateRate(r *HallProductRate) error {
	copied := *r
	f.rates[r.ID] = &copied
	return nil
}

func (f *fakeRepository) FindRate(productID, rateID uint) (*HallProductRate, error) {
	r, ok := f.rates[rateID]
	if !ok || r.HallProductID != productID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepository) ListRates(productID uint) ([]HallProductRate, error) {
	var out []HallProductRate
	for _, r := range f.rates {
		if r.HallProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepository) DeleteRate(productID, rateID uint) error {
	delete(f.rates, rateID)
	return nil
}

func (f *fakeRepository) CreateAddon(a *HallAddon) error {
	a.ID = f.id()
	copied := *a
	f.addons[a.ID] = &copied
	return nil
}

func (f *fakeRepository) UpdateAddon(a *HallAddon) error {
	copied := *a
	f.addons[a.ID] = &copied
	return nil
}

func (f *fakeRepository) FindAddon(hallID, addonID uint) (*HallAddon, error) {
	a, ok := f.addons[addonID]
	if !ok || a.HallID != hallID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepository) ListAddons(hallID uint, activeOnly bool) ([]HallAddon, error) {
	var out []HallAddon
	for _, a := range f.addons {
		if a.HallID != hallID {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepository) DeleteAddon(hallID, addonID uint) error {
	delete(f.addons, addonID)
	return nil
}

func (f *fakeRepository) CreateBlockedDate(b *HallBlockedDate) error {
	b.ID = f.id()
	copied := *b
	f.blocks[b.ID] = &copied
	return nil
}

func (f *fakeRepository) ListBlockedDates(hallID uint) ([]HallBlockedDate, error) {
	var out []HallBlockedDate
	for _, b := range f.blocks {
		if b.HallID == hallID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepository) DeleteBlockedDate(hallID, blockID uint) error {
	delete(f.blocks, blockID)
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// ===========================
// Decimal boundary

func TestDecimalConversion(t *testing.T) {
	assert.Equal(t, "1500.00", floatToDecimal(1500))
	assert.Equal(t, "99.90", floatToDecimal(99.9))
	assert.Equal(t, "0.10", floatToDecimal(0.1))
	assert.InDelta(t, 1500.0, decimalToFloat("1500.00"), 0.001)
	assert.InDelta(t, 99.9, decimalToFloat("99.90"), 0.001)
}

// ===========================
// Rates

func TestCreateRate_StoresDecimalString(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &CreateProductRequest{Name: "Mariage"}, nil, "")
	require.NoError(t, err)

	rate, err := svc.CreateRate(ctx, 1, product.ID, &CreateRateRequest{
		Currency:    "MAD",
		Price:       12500.5,
		BillingUnit: BillingUnitEvent,
	}, nil, "")
	require.NoError(t, err)

	assert.InDelta(t, 12500.5, rate.Price, 0.001)
	assert.Equal(t, "12500.50", repo.rates[rate.ID].Price)
}

func TestCreateRate_RejectsUnknownBillingUnit(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &CreateProductRequest{Name: "Mariage"}, nil, "")
	require.NoError(t, err)

	_, err = svc.CreateRate(ctx, 1, product.ID, &CreateRateRequest{
		Currency:    "MAD",
		Price:       100,
		BillingUnit: "WEEK",
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateRate_RejectsNonPositivePrice(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &CreateProductRequest{Name: "Mariage"}, nil, "")
	require.NoError(t, err)

	// the rule holds in the service, not just at the HTTP binding
	_, err = svc.CreateRate(ctx, 1, product.ID, &CreateRateRequest{
		Currency:    "MAD",
		Price:       0,
		BillingUnit: BillingUnitEvent,
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateRate_ProductMustBelongToHall(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &CreateProductRequest{Name: "Mariage"}, nil, "")
	require.NoError(t, err)

	// same product id, wrong hall
	_, err = svc.CreateRate(ctx, 2, product.ID, &CreateRateRequest{
		Currency:    "MAD",
		Price:       100,
		BillingUnit: BillingUnitEvent,
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateRate_ParsesSeasonDates(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &CreateProductRequest{Name: "Mariage"}, nil, "")
	require.NoError(t, err)

	rate, err := svc.CreateRate(ctx, 1, product.ID, &CreateRateRequest{
		Currency:    "MAD",
		Price:       100,
		BillingUnit: BillingUnitDay,
		SeasonStart: strPtr("2026-06-01"),
		SeasonEnd:   strPtr("2026-09-30"),
	}, nil, "")
	require.NoError(t, err)

	require.NotNil(t, rate.SeasonStart)
	assert.Equal(t, "2026-06-01", rate.SeasonStart.Format("2006-01-02"))

	_, err = svc.CreateRate(ctx, 1, product.ID, &CreateRateRequest{
		Currency:    "MAD",
		Price:       100,
		BillingUnit: BillingUnitDay,
		SeasonStart: strPtr("06/01/2026"),
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateRate_RejectsNonPositivePrice(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &CreateProductRequest{Name: "Mariage"}, nil, "")
	require.NoError(t, err)
	rate, err := svc.CreateRate(ctx, 1, product.ID, &CreateRateRequest{
		Currency: "MAD", Price: 100, BillingUnit: BillingUnitEvent,
	}, nil, "")
	require.NoError(t, err)

	_, err = svc.UpdateRate(ctx, 1, product.ID, rate.ID, &UpdateRateRequest{
		Price: floatPtr(0),
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// ===========================
// Addons

func TestCreateAddon_RejectsUnknownPricingModel(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.CreateAddon(context.Background(), 1, &CreateAddonRequest{
		Name:         "Traiteur",
		PricingModel: "SUBSCRIPTION",
		UnitPrice:    250,
		Currency:     "MAD",
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateAddon_StoresRedevanceDecimal(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	addon, err := svc.CreateAddon(context.Background(), 1, &CreateAddonRequest{
		Name:            "Traiteur",
		PricingModel:    PricingPerPerson,
		UnitPrice:       250,
		Currency:        "MAD",
		RedevanceAmount: floatPtr(12.5),
	}, nil, "")
	require.NoError(t, err)

	require.NotNil(t, addon.RedevanceAmount)
	assert.InDelta(t, 12.5, *addon.RedevanceAmount, 0.001)
	require.NotNil(t, repo.addons[addon.ID].RedevanceAmount)
	assert.Equal(t, "12.50", *repo.addons[addon.ID].RedevanceAmount)
}

// ===========================
// Blocked dates

func TestCreateBlockedDate_OpenEnded(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	block, err := svc.CreateBlockedDate(context.Background(), 1, &CreateBlockedDateRequest{
		StartDate: "2026-12-24",
		Reason:    "renovation",
	}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "2026-12-24", block.StartDate.Format("2006-01-02"))
	assert.Nil(t, block.EndDate)
}

func TestCreateBlockedDate_RejectsInvertedRange(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.CreateBlockedDate(context.Background(), 1, &CreateBlockedDateRequest{
		StartDate: "2026-12-24",
		EndDate:   strPtr("2026-12-20"),
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateBlockedDate_RejectsBadFormat(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.CreateBlockedDate(context.Background(), 1, &CreateBlockedDateRequest{
		StartDate: "24/12/2026",
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
