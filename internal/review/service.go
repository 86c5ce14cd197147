// File: internal/review/service.go
package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/shared"
)

// Service defines the interface for review business logic.
type Service interface {
	CreateReview(ctx context.Context, listingID uuid.UUID, author *shared.User, req CreateReviewRequest) (*Review, error)
	GetListingReviews(ctx context.Context, listingID uuid.UUID) ([]Review, error)
	ReportReview(ctx context.Context, id uuid.UUID) error
	AdminDeleteReview(ctx context.Context, id uuid.UUID) error
}

// ServiceImplementation implements the review Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new review service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("review_service"),
	}
}

// CreateReview writes the review and the listing's rating update as one
// atomic operation. Guest accounts cannot review.
func (s *ServiceImplementation) CreateReview(ctx context.Context, listingID uuid.UUID, author *shared.User, req CreateReviewRequest) (*Review, error) {
	if author == nil {
		return nil, common.ErrUnauthorized.WithDetails("Authentication required to review.")
	}
	if author.IsAnonymous {
		return nil, common.ErrForbidden.WithDetails("Guest accounts cannot post reviews. Please sign in.")
	}

	authorName := "Member"
	if author.DisplayName != nil && *author.DisplayName != "" {
		authorName = *author.DisplayName
	}

	rev := &Review{
		ListingID:      listingID,
		AuthorID:       author.ID,
		AuthorName:     authorName,
		AuthorPhotoURL: author.PhotoURL,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	if err := s.repo.CreateWithRatingUpdate(ctx, rev); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to create review",
				zap.Error(err),
				zap.String("listingID", listingID.String()),
				zap.String("authorID", author.ID.String()),
			)
		}
		return nil, err
	}

	s.logger.Info("Review created",
		zap.String("reviewID", rev.ID.String()),
		zap.String("listingID", listingID.String()),
		zap.Int("rating", req.Rating),
	)
	return rev, nil
}

func (s *ServiceImplementation) GetListingReviews(ctx context.Context, listingID uuid.UUID) ([]Review, error) {
	return s.repo.FindByListing(ctx, listingID)
}

// ReportReview soft-moderates: the review disappears from display but the
// record survives for admin follow-up.
func (s *ServiceImplementation) ReportReview(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkReported(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Review reported", zap.String("reviewID", id.String()))
	return nil
}

func (s *ServiceImplementation) AdminDeleteReview(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Review deleted", zap.String("reviewID", id.String()))
	return nil
}
