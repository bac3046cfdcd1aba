package hostapp

import (
	"context"
	"testing"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/hall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ===========================
// fakes

type fakeAppRepository struct {
	apps   map[uint]*HostApplication
	nextID uint
}

func newFakeAppRepository() *fakeAppRepository {
	return &fakeAppRepository{apps: map[uint]*HostApplication{}, nextID: 1}
}

func (f *fakeAppRepository) Create(app *HostApplication) error {
	app.ID = f.nextID
	f.nextID++
	copied := *app
	f.apps[app.ID] = &copied
	return nil
}

func (f *fakeAppRepository) FindByID(id uint) (*HostApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepository) Update(app *HostApplication) error {
	if _, ok := f.apps[app.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *app
	f.apps[app.ID] = &copied
	return nil
}

func (f *fakeAppRepository) List(filter ListFilter) ([]HostApplication, int64, error) {
	var out []HostApplication
	for _, app := range f.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, *app)
	}
	return out, int64(len(out)), nil
}

// fakeHallRepository backs the real hall service so approvals exercise the
// actual DRAFT-hall creation path
type fakeHallRepository struct {
	halls  map[uint]*hall.Hall
	owners map[uint]string
	nextID uint
}

func newFakeHallRepository() *fakeHallRepository {
	return &fakeHallRepository{halls: map[uint]*hall.Hall{}, owners: map[uint]string{}, nextID: 1}
}

func (f *fakeHallRepository) Create(h *hall.Hall) error {
	h.ID = f.nextID
	f.nextID++
	copied := *h
	f.halls[h.ID] = &copied
	return nil
}

func (f *fakeHallRepository) Update(h *hall.Hall) error {
	copied := *h
	f.halls[h.ID] = &copied
	return nil
}

func (f *fakeHallRepository) FindByID(id uint) (*hall.Hall, error) {
	h, ok := f.halls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *h
	return &copied, nil
}

func (f *fakeHallRepository) FindBySlug(slug string) (*hall.Hall, error) {
	for _, h := range f.halls {
		if h.Slug == slug {
			copied := *h
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHallRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	for _, h := range f.halls {
		if h.Slug == slug && h.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHallRepository) List(filter hall.ListFilter) ([]hall.Hall, int64, error) {
	return nil, 0, nil
}

func (f *fakeHallRepository) ReplaceOwnerRole(hallID uint, newOwnerID string) error {
	f.owners[hallID] = newOwnerID
	return nil
}

func (f *fakeHallRepository) ClearOwnerRole(hallID uint) error {
	delete(f.owners, hallID)
	return nil
}

func (f *fakeHallRepository) ListRoles(hallID uint) ([]hall.HallUserRole, error) { return nil, nil }
func (f *fakeHallRepository) UpsertRole(role *hall.HallUserRole) error           { return nil }
func (f *fakeHallRepository) DeleteRole(hallID uint, userID, roleName string) error {
	return nil
}
func (f *fakeHallRepository) FindRole(hallID uint, userID string) (*hall.HallUserRole, error) {
	return nil, gorm.ErrRecordNotFound
}

func newTestService() (*Service, *fakeAppRepository, *fakeHallRepository) {
	appRepo := newFakeAppRepository()
	hallRepo := newFakeHallRepository()
	hallSvc := hall.NewService(hallRepo, nil)
	return NewService(appRepo, hallSvc, nil), appRepo, hallRepo
}

func strPtr(s string) *string { return &s }

// ===========================
// Intake

func TestCreateApplication_NormalizesEmail(t *testing.T) {
	svc, _, _ := newTestService()

	app, err := svc.CreateApplication(context.Background(), &CreateApplicationRequest{
		HallName:     "Palais des Congres",
		ContactName:  "Sara",
		ContactEmail: "  Sara.B@Example.COM  ",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, StatusNew, app.Status)
	assert.Equal(t, "sara.b@example.com", app.ContactEmail)
}

// ===========================
// Review

func TestUpdateStatus_SetsReviewedAtOnFirstTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName: "H", ContactName: "N", ContactEmail: "n@example.com",
	}, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusUnderReview}, nil, "")
	require.NoError(t, err)
	assert.Nil(t, updated.ReviewedAt)

	updated, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusRejected}, nil, "")
	require.NoError(t, err)
	require.NotNil(t, updated.ReviewedAt)

	firstReviewedAt := *updated.ReviewedAt

	// a later transition must not move the timestamp
	updated, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	require.NoError(t, err)
	require.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, firstReviewedAt, *updated.ReviewedAt)
}

func TestUpdateStatus_ApprovalCreatesDraftHall(t *testing.T) {
	svc, _, hallRepo := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName:        "Palais Zitoune",
		City:            "Meknes",
		ContactName:     "Youssef",
		ContactEmail:    "y@example.com",
		ApplicantUserID: strPtr("u1"),
	}, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, strPtr("admin-1"), "")
	require.NoError(t, err)

	require.Len(t, hallRepo.halls, 1)
	for _, h := range hallRepo.halls {
		assert.Equal(t, "Palais Zitoune", h.Name)
		assert.Equal(t, "Meknes", h.City)
		assert.Equal(t, hall.StatusDraft, h.Status)
		require.NotNil(t, h.GerantID)
		assert.Equal(t, "u1", *h.GerantID)
		assert.Equal(t, "u1", hallRepo.owners[h.ID])
	}
}

func TestUpdateStatus_ApprovalWithoutApplicantCreatesNothing(t *testing.T) {
	svc, _, hallRepo := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName: "H", ContactName: "N", ContactEmail: "n@example.com",
	}, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, updated.Status)
	assert.Empty(t, hallRepo.halls)
}

func TestUpdateStatus_ReApprovalCreatesAnotherHall(t *testing.T) {
	svc, _, hallRepo := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName: "H", ContactName: "N", ContactEmail: "n@example.com",
		ApplicantUserID: strPtr("u1"),
	}, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusRejected}, nil, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	require.NoError(t, err)

	// each approval cycle leaves its own hall behind
	assert.Len(t, hallRepo.halls, 2)
}

func TestUpdateStatus_ReApprovingApprovedIsIdempotent(t *testing.T) {
	svc, _, hallRepo := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName: "H", ContactName: "N", ContactEmail: "n@example.com",
		ApplicantUserID: strPtr("u1"),
	}, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	require.NoError(t, err)

	assert.Len(t, hallRepo.halls, 1)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName: "H", ContactName: "N", ContactEmail: "n@example.com",
	}, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: "SHIPPED"}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateStatus_MissingApplication(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 42, &UpdateStatusRequest{Status: StatusApproved}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateStatus_MergesNotesAndReviewer(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, &CreateApplicationRequest{
		HallName: "H", ContactName: "N", ContactEmail: "n@example.com",
	}, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{
		Status:      StatusRejected,
		ReviewNotes: strPtr("capacity information missing"),
	}, strPtr("admin-7"), "")
	require.NoError(t, err)

	assert.Equal(t, "capacity information missing", updated.ReviewNotes)
	require.NotNil(t, updated.ReviewerID)
	assert.Equal(t, "admin-7", *updated.ReviewerID)
}
