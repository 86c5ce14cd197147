// File: internal/placement/service.go
package placement

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// Service defines the interface for placement business logic.
type Service interface {
	// ActivePlacements returns the active, deduplicated, priority-ordered
	// placements for a slot. It fails open: on a storage error it returns
	// an empty slice so content pages render without their ad rail.
	ActivePlacements(ctx context.Context, slot string, now time.Time) []Placement

	RecordView(ctx context.Context, id uuid.UUID)
	RecordClick(ctx context.Context, id uuid.UUID)

	DisableEndedPlacements(ctx context.Context) (int64, error)

	AdminListPlacements(ctx context.Context) ([]Placement, error)
	AdminGetPlacement(ctx context.Context, id uuid.UUID) (*Placement, error)
	AdminCreatePlacement(ctx context.Context, req AdminCreatePlacementRequest) (*Placement, error)
	AdminUpdatePlacement(ctx context.Context, id uuid.UUID, req AdminUpdatePlacementRequest) (*Placement, error)
	AdminDeletePlacement(ctx context.Context, id uuid.UUID) error
}

// ServiceImplementation implements the placement Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new placement service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("placement_service"),
	}
}

func (s *ServiceImplementation) ActivePlacements(ctx context.Context, slot string, now time.Time) []Placement {
	if !KnownSlot(slot) {
		s.logger.Debug("Unknown placement slot requested", zap.String("slot", slot))
		return []Placement{}
	}

	placements, err := s.repo.FindActiveBySlot(ctx, slot, now)
	if err != nil {
		s.logger.Error("Failed to load placements, serving none", zap.Error(err), zap.String("slot", slot))
		return []Placement{}
	}

	// Re-check the activation window in memory. The query already bounds
	// it, but cached or replicated reads can lag the clock.
	active := placements[:0]
	seen := make(map[uuid.UUID]struct{}, len(placements))
	for _, p := range placements {
		if !p.ActiveAt(now) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		active = append(active, p)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	return active
}

// RecordView is fire-and-forget; ad analytics never block rendering.
func (s *ServiceImplementation) RecordView(_ context.Context, id uuid.UUID) {
	go func() {
		if err := s.repo.IncrementViewCount(context.Background(), id); err != nil {
			s.logger.Warn("Failed to record placement view", zap.Error(err), zap.String("placementID", id.String()))
		}
	}()
}

// RecordClick is fire-and-forget; ad analytics never block navigation.
func (s *ServiceImplementation) RecordClick(_ context.Context, id uuid.UUID) {
	go func() {
		if err := s.repo.IncrementClickCount(context.Background(), id); err != nil {
			s.logger.Warn("Failed to record placement click", zap.Error(err), zap.String("placementID", id.String()))
		}
	}()
}

// DisableEndedPlacements is housekeeping: reads already exclude expired
// windows, this just keeps the admin list tidy.
func (s *ServiceImplementation) DisableEndedPlacements(ctx context.Context) (int64, error) {
	return s.repo.DisableEnded(ctx, time.Now())
}

func (s *ServiceImplementation) AdminListPlacements(ctx context.Context) ([]Placement, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImplementation) AdminGetPlacement(ctx context.Context, id uuid.UUID) (*Placement, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) AdminCreatePlacement(ctx context.Context, req AdminCreatePlacementRequest) (*Placement, error) {
	if !KnownSlot(req.Slot) {
		return nil, common.ErrBadRequest.WithDetails("Unknown placement slot.")
	}
	if req.EndsAt != nil && req.StartsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, common.ErrBadRequest.WithDetails("Placement end must not precede its start.")
	}
	// Creative fields are individually optional, but the card must render
	// something: either a title or an image.
	if req.Title == "" && req.ImageURL == "" {
		return nil, common.ErrBadRequest.WithDetails("Placement needs a title or an image.")
	}

	p := &Placement{
		Slot:        req.Slot,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		TargetURL:   req.TargetURL,
		SponsorName: req.SponsorName,
		Priority:    req.Priority,
		StartsAt:    time.Now(),
		EndsAt:      req.EndsAt,
		Enabled:     true,
	}
	if req.StartsAt != nil {
		p.StartsAt = *req.StartsAt
	}
	if req.Enabled != nil {
		p.Enabled = *req.Enabled
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create placement", zap.Error(err), zap.String("slot", req.Slot))
		return nil, err
	}
	s.logger.Info("Placement created",
		zap.String("placementID", p.ID.String()),
		zap.String("slot", p.Slot),
		zap.String("sponsor", p.SponsorName),
	)
	return p, nil
}

func (s *ServiceImplementation) AdminUpdatePlacement(ctx context.Context, id uuid.UUID, req AdminUpdatePlacementRequest) (*Placement, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slot != nil {
		if !KnownSlot(*req.Slot) {
			return nil, common.ErrBadRequest.WithDetails("Unknown placement slot.")
		}
		p.Slot = *req.Slot
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.TargetURL != nil {
		p.TargetURL = *req.TargetURL
	}
	if req.SponsorName != nil {
		p.SponsorName = *req.SponsorName
	}
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	if req.StartsAt != nil {
		p.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		p.EndsAt = req.EndsAt
	}
	if req.Enabled != nil {
		p.Enabled = *req.Enabled
	}

	if p.EndsAt != nil && p.EndsAt.Before(p.StartsAt) {
		return nil, common.ErrBadRequest.WithDetails("Placement end must not precede its start.")
	}
	if p.Title == "" && p.ImageURL == "" {
		return nil, common.ErrBadRequest.WithDetails("Placement needs a title or an image.")
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update placement", zap.Error(err), zap.String("placementID", id.String()))
		return nil, err
	}
	return p, nil
}

func (s *ServiceImplementation) AdminDeletePlacement(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Placement deleted", zap.String("placementID", id.String()))
	return nil
}
