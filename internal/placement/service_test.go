// File: internal/placement/service_test.go
package placement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// MockPlacementRepository is a mock type for placement.Repository.
type MockPlacementRepository struct {
	mock.Mock
}

func (m *MockPlacementRepository) Create(ctx context.Context, p *Placement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlacementRepository) FindByID(ctx context.Context, id uuid.UUID) (*Placement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Placement), args.Error(1)
}

func (m *MockPlacementRepository) FindAll(ctx context.Context) ([]Placement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Placement), args.Error(1)
}

func (m *MockPlacementRepository) FindActiveBySlot(ctx context.Context, slot string, now time.Time) ([]Placement, error) {
	args := m.Called(ctx, slot, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Placement), args.Error(1)
}

func (m *MockPlacementRepository) Update(ctx context.Context, p *Placement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlacementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlacementRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlacementRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlacementRepository) DisableEnded(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func makePlacement(slot string, priority int, mutate func(*Placement)) Placement {
	p := Placement{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		Slot:        slot,
		Title:       "Spot",
		ImageURL:    "https://cdn.example.com/ad.png",
		TargetURL:   "https://sponsor.example.com",
		SponsorName: "Sponsor",
		Priority:    priority,
		StartsAt:    time.Now().Add(-24 * time.Hour),
		Enabled:     true,
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestActiveAtWindow(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	inWindow := makePlacement(SlotHomeFeedInline, 0, func(p *Placement) {
		p.StartsAt = yesterday
		p.EndsAt = &tomorrow
	})
	assert.True(t, inWindow.ActiveAt(now))

	ended := makePlacement(SlotHomeFeedInline, 0, func(p *Placement) {
		p.StartsAt = now.Add(-48 * time.Hour)
		p.EndsAt = &yesterday
	})
	assert.False(t, ended.ActiveAt(now))

	notStarted := makePlacement(SlotHomeFeedInline, 0, func(p *Placement) {
		p.StartsAt = tomorrow
	})
	assert.False(t, notStarted.ActiveAt(now))

	openEnded := makePlacement(SlotHomeFeedInline, 0, func(p *Placement) {
		p.StartsAt = yesterday
		p.EndsAt = nil
	})
	assert.True(t, openEnded.ActiveAt(now))
	assert.True(t, openEnded.ActiveAt(now.Add(365*24*time.Hour)), "no end means active indefinitely")

	disabled := makePlacement(SlotHomeFeedInline, 0, func(p *Placement) {
		p.Enabled = false
	})
	assert.False(t, disabled.ActiveAt(now))
}

func TestActiveAtBoundariesInclusive(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	p := makePlacement(SlotHomeFeedInline, 0, func(p *Placement) {
		p.StartsAt = now
		p.EndsAt = &now
	})
	assert.True(t, p.ActiveAt(now))
}

func TestActivePlacementsOrdersByPriorityAndDedupes(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())
	now := time.Now()

	low := makePlacement(SlotHomeFeedInline, 1, nil)
	high := makePlacement(SlotHomeFeedInline, 10, nil)
	dup := high

	repo.On("FindActiveBySlot", mock.Anything, SlotHomeFeedInline, now).
		Return([]Placement{low, high, dup}, nil)

	active := svc.ActivePlacements(context.Background(), SlotHomeFeedInline, now)
	require.Len(t, active, 2)
	assert.Equal(t, high.ID, active[0].ID)
	assert.Equal(t, low.ID, active[1].ID)
}

func TestActivePlacementsRechecksWindow(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())
	now := time.Now()

	expired := makePlacement(SlotHomeFeedInline, 5, func(p *Placement) {
		ended := now.Add(-time.Hour)
		p.EndsAt = &ended
	})
	live := makePlacement(SlotHomeFeedInline, 1, nil)

	// Simulate a stale read that still contains the expired record.
	repo.On("FindActiveBySlot", mock.Anything, SlotHomeFeedInline, now).
		Return([]Placement{expired, live}, nil)

	active := svc.ActivePlacements(context.Background(), SlotHomeFeedInline, now)
	require.Len(t, active, 1)
	assert.Equal(t, live.ID, active[0].ID)
}

func TestActivePlacementsFailsOpen(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())
	now := time.Now()

	repo.On("FindActiveBySlot", mock.Anything, SlotHomeFeedInline, now).
		Return(nil, errors.New("connection refused"))

	active := svc.ActivePlacements(context.Background(), SlotHomeFeedInline, now)
	assert.NotNil(t, active)
	assert.Empty(t, active)
}

func TestActivePlacementsUnknownSlotServesNone(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())

	active := svc.ActivePlacements(context.Background(), "sidebar_takeover", time.Now())
	assert.Empty(t, active)
	repo.AssertNotCalled(t, "FindActiveBySlot", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminCreatePlacementValidatesWindow(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := svc.AdminCreatePlacement(context.Background(), AdminCreatePlacementRequest{
		Slot:        SlotHomeFeedInline,
		Title:       "Backwards",
		ImageURL:    "https://cdn.example.com/ad.png",
		TargetURL:   "https://sponsor.example.com",
		SponsorName: "Sponsor",
		StartsAt:    &start,
		EndsAt:      &end,
	})
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}

func TestAdminCreatePlacementAcceptsImageOnlyCreative(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Placement) bool {
		return p.Title == "" && p.TargetURL == "" && p.ImageURL == "https://cdn.example.com/banner.png"
	})).Return(nil).Once()

	p, err := svc.AdminCreatePlacement(context.Background(), AdminCreatePlacementRequest{
		Slot:        SlotFeaturedTopBanner,
		ImageURL:    "https://cdn.example.com/banner.png",
		SponsorName: "Sponsor",
	})
	require.NoError(t, err)
	assert.Empty(t, p.Title)
	assert.Equal(t, "https://cdn.example.com/banner.png", p.ImageURL)
	repo.AssertExpectations(t)
}

func TestAdminCreatePlacementRejectsEmptyCreative(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.AdminCreatePlacement(context.Background(), AdminCreatePlacementRequest{
		Slot:        SlotHomeFeedInline,
		SponsorName: "Sponsor",
	})
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCreatePlacementRejectsUnknownSlot(t *testing.T) {
	repo := new(MockPlacementRepository)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.AdminCreatePlacement(context.Background(), AdminCreatePlacementRequest{
		Slot:        "popup_modal",
		Title:       "Nope",
		ImageURL:    "https://cdn.example.com/ad.png",
		TargetURL:   "https://sponsor.example.com",
		SponsorName: "Sponsor",
	})
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}
