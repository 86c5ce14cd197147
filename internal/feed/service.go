// File: internal/feed/service.go
package feed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"uslocal_backend/internal/config"
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/placement"
)

// HomeFeed is the composed home screen payload: the ad-interleaved feed
// plus the featured carousel.
type HomeFeed struct {
	Items    []Item
	Featured []listing.FeedItem
}

// Service composes listings and sponsored placements into the home feed.
type Service interface {
	Home(ctx context.Context, opts listing.FilterOptions) (HomeFeed, error)
}

// ServiceImplementation implements the feed Service interface.
type ServiceImplementation struct {
	listings   listing.Service
	placements placement.Service
	adInterval int
	logger     *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new feed service.
func NewService(listings listing.Service, placements placement.Service, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		listings:   listings,
		placements: placements,
		adInterval: cfg.FeedAdInterval,
		logger:     logger.Named("feed_service"),
	}
}

// Home runs the filter pipeline and weaves in whatever inline placements
// are live. Ad lookup fails open inside the placement service, so a broken
// ad store degrades to an ad-free feed rather than an error.
func (s *ServiceImplementation) Home(ctx context.Context, opts listing.FilterOptions) (HomeFeed, error) {
	result, err := s.listings.Browse(ctx, opts)
	if err != nil {
		return HomeFeed{}, err
	}

	ads := s.placements.ActivePlacements(ctx, placement.SlotHomeFeedInline, time.Now())

	return HomeFeed{
		Items:    injectSponsored(result.Feed, ads, s.adInterval),
		Featured: result.Featured,
	}, nil
}
