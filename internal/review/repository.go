// File: internal/review/repository.go
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/listing"
)

// Repository defines the interface for review data operations.
type Repository interface {
	// CreateWithRatingUpdate inserts the review and folds its rating into
	// the listing's running average and count inside one transaction, with
	// the listing row locked to prevent lost updates under concurrent
	// submissions.
	CreateWithRatingUpdate(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	// FindByListing returns displayable (non-reported) reviews, newest first.
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]Review, error)
	MarkReported(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM review repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// weightedAverage folds a new rating into a running average.
func weightedAverage(currentRating float64, currentCount int64, newRating int) (float64, int64) {
	newCount := currentCount + 1
	return (currentRating*float64(currentCount) + float64(newRating)) / float64(newCount), newCount
}

func (r *gormRepository) CreateWithRatingUpdate(ctx context.Context, rev *Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l listing.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ?", rev.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound.WithDetails("Listing not found.")
			}
			return err
		}

		if err := tx.Create(rev).Error; err != nil {
			return err
		}

		newRating, newCount := weightedAverage(l.Rating, l.ReviewCount, rev.Rating)
		return tx.Model(&listing.Listing{}).
			Where("id = ?", rev.ListingID).
			Updates(map[string]interface{}{
				"rating":       newRating,
				"review_count": newCount,
			}).Error
	})
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var rev Review
	err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Review not found.")
		}
		return nil, err
	}
	return &rev, nil
}

func (r *gormRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND reported = ?", listingID, false).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *gormRepository) MarkReported(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Review{}).
		Where("id = ?", id).
		UpdateColumn("reported", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Review not found.")
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Review{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Review not found or already deleted.")
	}
	return nil
}
