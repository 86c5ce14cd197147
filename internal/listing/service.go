// File: internal/listing/service.go
package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/config"
	"uslocal_backend/internal/geo"
)

// Service defines the interface for listing business logic.
type Service interface {
	Browse(ctx context.Context, opts FilterOptions) (FilterResult, error)
	GetListingByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID, viewerRole string) (*Listing, error)
	GetListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error)
	GetMyListings(ctx context.Context, ownerID uuid.UUID) ([]Listing, error)
	CreateListing(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (*Listing, error)
	UpdateListing(ctx context.Context, id, ownerID uuid.UUID, req UpdateListingRequest) (*Listing, error)
	OwnerSoftDelete(ctx context.Context, id, ownerID uuid.UUID) error

	RecordClick(ctx context.Context, id uuid.UUID)

	AdminListByStatus(ctx context.Context, status string, page, pageSize int) ([]Listing, int64, error)
	AdminApprove(ctx context.Context, id uuid.UUID) (*Listing, error)
	AdminReject(ctx context.Context, id uuid.UUID, note *string) (*Listing, error)
	AdminSetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*Listing, error)
	AdminSetVerified(ctx context.Context, id uuid.UUID, verified bool) (*Listing, error)
	AdminHardDelete(ctx context.Context, id uuid.UUID) error
}

// ModerationNotifier lets the moderation flow tell an owner about a status
// change without this package depending on the notification module.
type ModerationNotifier interface {
	NotifyListingStatus(ctx context.Context, ownerID, listingID uuid.UUID, listingName, status string, note *string) error
}

// ServiceImplementation implements the listing Service interface.
type ServiceImplementation struct {
	repo     Repository
	cfg      *config.Config
	notifier ModerationNotifier
	logger   *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new listing service. notifier may be nil.
func NewService(repo Repository, cfg *config.Config, notifier ModerationNotifier, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		cfg:      cfg,
		notifier: notifier,
		logger:   logger.Named("listing_service"),
	}
}

// Browse loads the viewer's working set and runs the filter pipeline over
// it. Defaults for distance bound and unit come from configuration when the
// caller leaves them unset.
func (s *ServiceImplementation) Browse(ctx context.Context, opts FilterOptions) (FilterResult, error) {
	if opts.Unit == "" {
		opts.Unit = geo.ParseUnit(s.cfg.DefaultDistanceUnit)
	}
	switch {
	case opts.MaxDistance <= 0:
		opts.MaxDistance = s.cfg.DefaultMaxDistance
	case opts.MaxDistanceUnit != "" && opts.MaxDistanceUnit != opts.Unit:
		// The slider value arrives in the client UI's unit; the distance
		// bound must be compared in the unit distances are computed in.
		opts.MaxDistance = geo.Convert(opts.MaxDistance, opts.MaxDistanceUnit, opts.Unit)
	}

	listings, err := s.repo.FindAllForViewer(ctx, opts.ViewerID)
	if err != nil {
		s.logger.Error("Failed to load listings for browse", zap.Error(err))
		return FilterResult{}, err
	}

	return Filter(listings, opts), nil
}

// GetListingByID enforces the visibility invariant on detail reads: a
// non-public listing is served only to its owner or an admin. A successful
// public read also records a view, best-effort.
func (s *ServiceImplementation) GetListingByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID, viewerRole string) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !l.PubliclyVisible() {
		isOwner := viewerID != nil && l.OwnerID == *viewerID
		if !isOwner && viewerRole != common.RoleAdmin {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
	}

	s.recordView(l.ID)
	return l, nil
}

func (s *ServiceImplementation) GetListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *ServiceImplementation) GetMyListings(ctx context.Context, ownerID uuid.UUID) ([]Listing, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *ServiceImplementation) CreateListing(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (*Listing, error) {
	l := &Listing{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Categories:  pq.StringArray(req.Categories),
		PriceRange:  req.PriceRange,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Website:     req.Website,
		Hours:       req.Hours,
		Images:      pq.StringArray(req.Images),
		Status:      StatusPending,
		Visible:     true,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("Failed to create listing", zap.Error(err), zap.String("ownerID", ownerID.String()))
		return nil, err
	}

	s.logger.Info("Listing submitted for moderation",
		zap.String("listingID", l.ID.String()),
		zap.String("ownerID", ownerID.String()),
	)
	return l, nil
}

func (s *ServiceImplementation) UpdateListing(ctx context.Context, id, ownerID uuid.UUID, req UpdateListingRequest) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != ownerID {
		return nil, common.ErrForbidden.WithDetails("Only the listing owner may edit it.")
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if len(req.Categories) > 0 {
		l.Categories = pq.StringArray(req.Categories)
	}
	if req.PriceRange != nil {
		l.PriceRange = req.PriceRange
	}
	if req.Street != nil {
		l.Street = *req.Street
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.State != nil {
		l.State = *req.State
	}
	if req.ZipCode != nil {
		l.ZipCode = *req.ZipCode
	}
	if req.Latitude != nil {
		l.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = req.Longitude
	}
	if req.Phone != nil {
		l.Phone = req.Phone
	}
	if req.Website != nil {
		l.Website = req.Website
	}
	if req.Hours != nil {
		l.Hours = req.Hours
	}
	if req.Images != nil {
		l.Images = pq.StringArray(req.Images)
	}
	if req.Visible != nil {
		l.Visible = *req.Visible
	}

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to update listing", zap.Error(err), zap.String("listingID", id.String()))
		return nil, err
	}
	return l, nil
}

// OwnerSoftDelete hides the listing without destroying the record: status
// moves to rejected with a reason distinguishing it from an admin rejection,
// and the visible flag drops so the owner stops previewing it by default.
func (s *ServiceImplementation) OwnerSoftDelete(ctx context.Context, id, ownerID uuid.UUID) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if l.OwnerID != ownerID {
		return common.ErrForbidden.WithDetails("Only the listing owner may delete it.")
	}

	reason := ReasonOwnerDeleted
	l.Status = StatusRejected
	l.StatusReason = &reason
	l.Visible = false

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to soft-delete listing", zap.Error(err), zap.String("listingID", id.String()))
		return err
	}
	s.logger.Info("Listing soft-deleted by owner", zap.String("listingID", id.String()))
	return nil
}

// RecordClick is fire-and-forget: analytics never block navigation.
func (s *ServiceImplementation) RecordClick(_ context.Context, id uuid.UUID) {
	go func() {
		if err := s.repo.IncrementClickCount(context.Background(), id); err != nil {
			s.logger.Warn("Failed to record listing click", zap.Error(err), zap.String("listingID", id.String()))
		}
	}()
}

func (s *ServiceImplementation) recordView(id uuid.UUID) {
	go func() {
		if err := s.repo.IncrementViewCount(context.Background(), id); err != nil {
			s.logger.Warn("Failed to record listing view", zap.Error(err), zap.String("listingID", id.String()))
		}
	}()
}

// --- Admin moderation ---

func (s *ServiceImplementation) AdminListByStatus(ctx context.Context, status string, page, pageSize int) ([]Listing, int64, error) {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, 0, common.ErrBadRequest.WithDetails("Unknown listing status.")
	}
	return s.repo.FindByStatus(ctx, status, page, pageSize)
}

func (s *ServiceImplementation) AdminApprove(ctx context.Context, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	l.Status = StatusApproved
	l.StatusReason = nil

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to approve listing", zap.Error(err), zap.String("listingID", id.String()))
		return nil, err
	}
	s.logger.Info("Listing approved", zap.String("listingID", id.String()))
	s.notifyStatus(ctx, l, nil)
	return l, nil
}

func (s *ServiceImplementation) AdminReject(ctx context.Context, id uuid.UUID, note *string) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reason := ReasonAdminRejected
	l.Status = StatusRejected
	l.StatusReason = &reason

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to reject listing", zap.Error(err), zap.String("listingID", id.String()))
		return nil, err
	}
	s.logger.Info("Listing rejected", zap.String("listingID", id.String()))
	s.notifyStatus(ctx, l, note)
	return l, nil
}

// notifyStatus informs the owner of a moderation outcome. Delivery is
// best-effort; a failed notification never rolls back the moderation.
func (s *ServiceImplementation) notifyStatus(ctx context.Context, l *Listing, note *string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyListingStatus(ctx, l.OwnerID, l.ID, l.Name, l.Status, note); err != nil {
		s.logger.Warn("Failed to notify owner of listing status change",
			zap.Error(err),
			zap.String("listingID", l.ID.String()),
			zap.String("status", l.Status),
		)
	}
}

func (s *ServiceImplementation) AdminSetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status != StatusApproved {
		return nil, common.ErrConflict.WithDetails("Only approved listings can be featured.")
	}

	l.Featured = featured
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ServiceImplementation) AdminSetVerified(ctx context.Context, id uuid.UUID, verified bool) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status != StatusApproved {
		return nil, common.ErrConflict.WithDetails("Only approved listings can be verified.")
	}

	l.Verified = verified
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ServiceImplementation) AdminHardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Listing permanently deleted", zap.String("listingID", id.String()))
	return nil
}
