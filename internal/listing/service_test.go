// File: internal/listing/service_test.go
package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/config"
	"uslocal_backend/internal/geo"
)

// MockListingRepository is a mock type for listing.Repository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockListingRepository) FindAllForViewer(ctx context.Context, viewerID *uuid.UUID) ([]Listing, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockListingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockListingRepository) FindByStatus(ctx context.Context, status string, page, pageSize int) ([]Listing, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) Update(ctx context.Context, l *Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImplementation {
	cfg := &config.Config{
		DefaultMaxDistance:  50,
		DefaultDistanceUnit: "miles",
	}
	return NewService(repo, cfg, nil, zap.NewNop())
}

func TestAdminApproveSetsStatusAndClearsReason(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	reason := ReasonAdminRejected
	l := makeListing("pending-shop", ptrF(47.6), ptrF(-122.3), func(l *Listing) {
		l.Status = StatusPending
		l.StatusReason = &reason
	})

	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *Listing) bool {
		return updated.Status == StatusApproved && updated.StatusReason == nil
	})).Return(nil)

	updated, err := svc.AdminApprove(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.Status)
	assert.Nil(t, updated.StatusReason)
	repo.AssertExpectations(t)
}

func TestAdminRejectSetsDistinctReason(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	l := makeListing("spammy", ptrF(47.6), ptrF(-122.3), func(l *Listing) {
		l.Status = StatusPending
	})

	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.AdminReject(context.Background(), l.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, updated.Status)
	require.NotNil(t, updated.StatusReason)
	assert.Equal(t, ReasonAdminRejected, *updated.StatusReason)
}

func TestOwnerSoftDelete(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	owner := uuid.New()
	l := makeListing("closing-down", ptrF(47.6), ptrF(-122.3), func(l *Listing) {
		l.OwnerID = owner
	})

	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *Listing) bool {
		return updated.Status == StatusRejected &&
			updated.StatusReason != nil && *updated.StatusReason == ReasonOwnerDeleted &&
			!updated.Visible
	})).Return(nil)

	err := svc.OwnerSoftDelete(context.Background(), l.ID, owner)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOwnerSoftDeleteForbiddenForNonOwner(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	l := makeListing("not-yours", ptrF(47.6), ptrF(-122.3), nil)
	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)

	err := svc.OwnerSoftDelete(context.Background(), l.ID, uuid.New())
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrForbidden.StatusCode, apiErr.StatusCode)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetListingByIDHidesNonPublicFromStrangers(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	l := makeListing("hidden-gem", ptrF(47.6), ptrF(-122.3), func(l *Listing) {
		l.Visible = false
	})
	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)

	stranger := uuid.New()
	_, err := svc.GetListingByID(context.Background(), l.ID, &stranger, common.RoleUser)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestGetListingByIDServesOwnerAndAdmin(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	owner := uuid.New()
	l := makeListing("my-pending", ptrF(47.6), ptrF(-122.3), func(l *Listing) {
		l.Status = StatusPending
		l.OwnerID = owner
	})
	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)
	repo.On("IncrementViewCount", mock.Anything, l.ID).Return(nil).Maybe()

	got, err := svc.GetListingByID(context.Background(), l.ID, &owner, common.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	admin := uuid.New()
	got, err = svc.GetListingByID(context.Background(), l.ID, &admin, common.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
}

func TestAdminSetFeaturedRequiresApproved(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	l := makeListing("still-pending", ptrF(47.6), ptrF(-122.3), func(l *Listing) {
		l.Status = StatusPending
	})
	repo.On("FindByID", mock.Anything, l.ID).Return(&l, nil)

	_, err := svc.AdminSetFeatured(context.Background(), l.ID, true)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestCreateListingStartsPending(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *Listing) bool {
		return l.Status == StatusPending && l.Visible && !l.Featured && !l.Verified
	})).Return(nil)

	owner := uuid.New()
	l, err := svc.CreateListing(context.Background(), owner, CreateListingRequest{
		Name:        "New Cafe",
		Description: "Fresh injera daily",
		Categories:  []string{"cafe"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, l.Status)
	assert.Equal(t, owner, l.OwnerID)
	repo.AssertExpectations(t)
}

func TestBrowseAppliesConfiguredDefaults(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	near := makeListing("near", ptrF(47.61), ptrF(-122.33), nil)
	far := makeListing("far", ptrF(34.05), ptrF(-118.24), nil)
	repo.On("FindAllForViewer", mock.Anything, (*uuid.UUID)(nil)).Return([]Listing{near, far}, nil)

	result, err := svc.Browse(context.Background(), FilterOptions{
		ViewerLat: ptrF(47.6062),
		ViewerLng: ptrF(-122.3321),
		Now:       tuesdayNoon,
	})
	require.NoError(t, err)

	// Default 50 mile bound keeps the nearby listing and drops LA.
	assert.Equal(t, []string{"near"}, feedNames(result.Feed))
	assert.ElementsMatch(t, []string{"near", "far"}, mapNames(result.Map))
}

func TestBrowseConvertsSliderValueIntoViewerUnit(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	// ~12.2 km (7.6 mi) north of the viewer along the equator.
	l := makeListing("edge-of-town", ptrF(0.11), ptrF(0.0), nil)
	repo.On("FindAllForViewer", mock.Anything, (*uuid.UUID)(nil)).Return([]Listing{l}, nil)

	base := FilterOptions{
		ViewerLat:   ptrF(0.0),
		ViewerLng:   ptrF(0.0),
		Now:         tuesdayNoon,
		Unit:        geo.UnitKm,
		MaxDistance: 10,
	}

	// A 10 km bound on a km-preference viewer excludes the listing.
	sameUnit := base
	sameUnit.MaxDistanceUnit = geo.UnitKm
	result, err := svc.Browse(context.Background(), sameUnit)
	require.NoError(t, err)
	assert.Empty(t, result.Feed)

	// The same slider value dragged on a miles UI converts to ~16.1 km
	// and includes it.
	crossUnit := base
	crossUnit.MaxDistanceUnit = geo.UnitMiles
	result, err = svc.Browse(context.Background(), crossUnit)
	require.NoError(t, err)
	assert.Equal(t, []string{"edge-of-town"}, feedNames(result.Feed))
}

func TestCreateListingThenFetchRoundTrip(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	var stored *Listing
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*Listing)
		stored.ID = uuid.New()
	}).Return(nil).Once()

	owner := uuid.New()
	created, err := svc.CreateListing(context.Background(), owner, CreateListingRequest{
		Name:        "Blue Nile Cafe",
		Description: "Coffee ceremony on weekends",
		Categories:  []string{"cafe", "restaurant"},
		Latitude:    ptrF(47.61),
		Longitude:   ptrF(-122.33),
		Hours: WeekHours{
			"tuesday": {Open: "09:00", Close: "17:00"},
		},
	})
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, created.ID).Return(stored, nil)
	repo.On("IncrementViewCount", mock.Anything, created.ID).Return(nil).Maybe()

	got, err := svc.GetListingByID(context.Background(), created.ID, &owner, common.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Blue Nile Cafe", got.Name)
	assert.Equal(t, "Coffee ceremony on weekends", got.Description)
	assert.Equal(t, pq.StringArray{"cafe", "restaurant"}, got.Categories)
	assert.Equal(t, WeekHours{"tuesday": {Open: "09:00", Close: "17:00"}}, got.Hours)
	assert.Equal(t, StatusPending, got.Status)
	assert.Zero(t, got.ViewCount)
	assert.Zero(t, got.ClickCount)
	repo.AssertExpectations(t)
}
