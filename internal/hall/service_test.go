package hall

import (
	"context"
	"fmt"
	"testing"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory Repository for service tests
type fakeRepository struct {
	halls  map[uint]*Hall
	roles  []HallUserRole
	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{halls: map[uint]*Hall{}, nextID: 1}
}

func (f *fakeRepository) Create(h *Hall) error {
	h.ID = f.nextID
	f.nextID++
	copied := *h
	f.halls[h.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(h *Hall) error {
	if _, ok := f.halls[h.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *h
	f.halls[h.ID] = &copied
	return nil
}

func (f *fakeRepository) FindByID(id uint) (*Hall, error) {
	h, ok := f.halls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *h
	return &copied, nil
}

func (f *fakeRepository) FindBySlug(slug string) (*Hall, error) {
	for _, h := range f.halls {
		if h.Slug == slug {
			copied := *h
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	for _, h := range f.halls {
		if h.Slug == slug && h.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) List(filter ListFilter) ([]Hall, int64, error) {
	var out []Hall
	for _, h := range f.halls {
		if filter.Status != "" && h.Status != filter.Status {
			continue
		}
		out = append(out, *h)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) ReplaceOwnerRole(hallID uint, newOwnerID string) error {
	kept := f.roles[:0]
	for _, r := range f.roles {
		if r.HallID == hallID && r.Role == RoleOwner {
			continue
		}
		kept = append(kept, r)
	}
	f.roles = append(kept, HallUserRole{HallID: hallID, UserID: newOwnerID, Role: RoleOwner})
	return nil
}

func (f *fakeRepository) ClearOwnerRole(hallID uint) error {
	kept := f.roles[:0]
	for _, r := range f.roles {
		if r.HallID == hallID && r.Role == RoleOwner {
			continue
		}
		kept = append(kept, r)
	}
	f.roles = kept
	return nil
}

func (f *fakeRepository) ListRoles(hallID uint) ([]HallUserRole, error) {
	var out []HallUserRole
	for _, r := range f.roles {
		if r.HallID == hallID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpsertRole(role *HallUserRole) error {
	for i, r := range f.roles {
		if r.HallID == role.HallID && r.UserID == role.UserID && r.Role == role.Role {
			f.roles[i] = *role
			return nil
		}
	}
	f.roles = append(f.roles, *role)
	return nil
}

func (f *fakeRepository) DeleteRole(hallID uint, userID string, roleName string) error {
	kept := f.roles[:0]
	for _, r := range f.roles {
		if r.HallID == hallID && r.UserID == userID && r.Role == roleName {
			continue
		}
		kept = append(kept, r)
	}
	f.roles = kept
	return nil
}

func (f *fakeRepository) FindRole(hallID uint, userID string) (*HallUserRole, error) {
	for _, r := range f.roles {
		if r.HallID == hallID && r.UserID == userID {
			copied := r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ownerOf(hallID uint) []string {
	var owners []string
	for _, r := range f.roles {
		if r.HallID == hallID && r.Role == RoleOwner {
			owners = append(owners, r.UserID)
		}
	}
	return owners
}

func strPtr(s string) *string { return &s }

// ===========================
// Create

func TestCreateHall_DefaultsToDraft(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	h, err := svc.CreateHall(context.Background(), &CreateHallRequest{
		Name: "Grand Palace", City: "Casablanca",
	}, nil, "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, h.Status)
	assert.Equal(t, "grand-palace-casablanca", h.Slug)
	assert.False(t, h.IsPremium)
}

func TestCreateHall_GerantGetsOwnerRole(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	h, err := svc.CreateHall(context.Background(), &CreateHallRequest{
		Name: "Villa Mimosa", City: "Rabat", GerantID: strPtr("u1"),
	}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, repo.ownerOf(h.ID))
}

func TestCreateHall_RejectsInvalidStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.CreateHall(context.Background(), &CreateHallRequest{
		Name: "X", City: "Y", Status: "PENDING",
	}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateHall_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "Le Salon", City: "Fes"}, nil, "")
	require.NoError(t, err)
	second, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "Le Salon", City: "Fes"}, nil, "")
	require.NoError(t, err)
	third, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "Le Salon", City: "Fes"}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "le-salon-fes", first.Slug)
	assert.Equal(t, "le-salon-fes-2", second.Slug)
	assert.Equal(t, "le-salon-fes-3", third.Slug)
}

// ===========================
// Update

func TestUpdateHall_PartialMergeKeepsSlug(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "Atlas Hall", City: "Marrakech"}, nil, "")
	require.NoError(t, err)

	updated, err := svc.UpdateHall(ctx, h.ID, &UpdateHallRequest{
		Name: strPtr("Atlas Hall Renovated"),
	}, nil, "")
	require.NoError(t, err)

	// name changes alone never touch the slug
	assert.Equal(t, "Atlas Hall Renovated", updated.Name)
	assert.Equal(t, h.Slug, updated.Slug)
}

func TestUpdateHall_ExplicitSlugIsNormalized(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "Atlas Hall", City: "Marrakech"}, nil, "")
	require.NoError(t, err)

	updated, err := svc.UpdateHall(ctx, h.ID, &UpdateHallRequest{
		Slug: strPtr("Nouvelle Adresse Élégante"),
	}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "nouvelle-adresse-elegante", updated.Slug)
}

func TestUpdateHall_OwnerSwapReplacesRole(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{
		Name: "Palais Andalou", City: "Tanger", GerantID: strPtr("u1"),
	}, nil, "")
	require.NoError(t, err)

	_, err = svc.UpdateHall(ctx, h.ID, &UpdateHallRequest{GerantID: strPtr("u2")}, nil, "")
	require.NoError(t, err)

	// exactly one OWNER row, pointing at the new gerant
	assert.Equal(t, []string{"u2"}, repo.ownerOf(h.ID))
}

func TestUpdateHall_EmptyGerantClearsOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{
		Name: "Palais Andalou", City: "Tanger", GerantID: strPtr("u1"),
	}, nil, "")
	require.NoError(t, err)

	updated, err := svc.UpdateHall(ctx, h.ID, &UpdateHallRequest{GerantID: strPtr("")}, nil, "")
	require.NoError(t, err)

	assert.Nil(t, updated.GerantID)
	assert.Empty(t, repo.ownerOf(h.ID))
}

func TestUpdateHall_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.UpdateHall(context.Background(), 99, &UpdateHallRequest{}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// ===========================
// Roles

func TestAssignRole_RejectsOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "H", City: "C"}, nil, "")
	require.NoError(t, err)

	err = svc.AssignRole(ctx, h.ID, &AssignRoleRequest{UserID: "u1", Role: RoleOwner}, nil, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAssignRole_UpsertIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "H", City: "C"}, nil, "")
	require.NoError(t, err)

	req := &AssignRoleRequest{UserID: "u1", Role: RoleManager}
	require.NoError(t, svc.AssignRole(ctx, h.ID, req, nil, ""))
	require.NoError(t, svc.AssignRole(ctx, h.ID, req, nil, ""))

	roles, err := svc.ListRoles(h.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestIsHallManager(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, &CreateHallRequest{
		Name: "H", City: "C", GerantID: strPtr("owner-1"),
	}, nil, "")
	require.NoError(t, err)
	require.NoError(t, svc.AssignRole(ctx, h.ID, &AssignRoleRequest{UserID: "mgr-1", Role: RoleManager}, nil, ""))

	cases := []struct {
		userID string
		want   bool
	}{
		{"owner-1", true},
		{"mgr-1", true},
		{"stranger", false},
	}
	for _, tc := range cases {
		t.Run(tc.userID, func(t *testing.T) {
			got, err := svc.IsHallManager(h.ID, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsHallManager_MissingHall(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.IsHallManager(404, "anyone")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// ===========================
// Listing

func TestListHalls_ClampsPagination(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateHall(ctx, &CreateHallRequest{
			Name: fmt.Sprintf("Hall %d", i), City: "Oujda",
		}, nil, "")
		require.NoError(t, err)
	}

	result, err := svc.ListHalls(ListFilter{Page: 0, Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, int64(3), result.Total)
}

func TestListHalls_StatusFilterExcludesOthers(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateHall(ctx, &CreateHallRequest{Name: "Drafted", City: "Oujda"}, nil, "")
	require.NoError(t, err)
	_, err = svc.CreateHall(ctx, &CreateHallRequest{Name: "Live", City: "Oujda", Status: StatusActive}, nil, "")
	require.NoError(t, err)
	_, err = svc.CreateHall(ctx, &CreateHallRequest{Name: "Retired", City: "Oujda", Status: StatusArchived}, nil, "")
	require.NoError(t, err)

	result, err := svc.ListHalls(ListFilter{Status: StatusActive})
	require.NoError(t, err)

	require.Len(t, result.Data, 1)
	assert.Equal(t, "Live", result.Data[0].Name)
	assert.Equal(t, int64(1), result.Total)
}

func TestListHalls_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.ListHalls(ListFilter{Status: "LIVE"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
