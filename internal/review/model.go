// File: internal/review/model.go
package review

import (
	"time"

	"github.com/google/uuid"

	"uslocal_backend/internal/common"
)

// Review is the GORM model for a listing review. Author display fields are
// denormalized so review cards render without a user lookup.
type Review struct {
	common.BaseModel
	ListingID      uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index"`
	AuthorID       uuid.UUID `gorm:"column:author_id;type:uuid;not null;index"`
	AuthorName     string    `gorm:"column:author_name;type:varchar(100);not null"`
	AuthorPhotoURL *string   `gorm:"column:author_photo_url;type:text"`
	Rating         int       `gorm:"not null"`
	Comment        string    `gorm:"type:text;not null"`
	// Reported reviews are hidden from display but kept for moderation.
	Reported bool `gorm:"not null;default:false"`
}

// TableName specifies the table name for the Review model.
func (Review) TableName() string {
	return "reviews"
}

// --- DTOs ---

// ReviewResponse defines the structure for review data in API responses.
type ReviewResponse struct {
	ID             uuid.UUID `json:"id"`
	ListingID      uuid.UUID `json:"listing_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL *string   `json:"author_photo_url,omitempty"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToReviewResponse converts a Review model to its response DTO.
func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		ListingID:      r.ListingID,
		AuthorID:       r.AuthorID,
		AuthorName:     r.AuthorName,
		AuthorPhotoURL: r.AuthorPhotoURL,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}

// CreateReviewRequest for a user submitting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"required,max=2000"`
}
