// File: internal/feedback/model.go
package feedback

import (
	"time"

	"github.com/google/uuid"

	"uslocal_backend/internal/common"
)

// Feedback types.
const (
	TypeNewCategoryRequest = "new_category_request"
	TypeLocationSuggestion = "location_suggestion"
	TypeImprovement        = "improvement"
	TypeBug                = "bug"
	TypeOther              = "other"
)

// Feedback statuses. pending is the entry state; reviewed may move on to
// implemented or rejected.
const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusImplemented = "implemented"
	StatusRejected    = "rejected"
)

// Priorities an admin can assign during triage.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Feedback is the GORM model for user-submitted product feedback.
type Feedback struct {
	common.BaseModel
	AuthorID      uuid.UUID `gorm:"column:author_id;type:uuid;not null;index"`
	Type          string    `gorm:"type:varchar(30);not null"`
	Title         string    `gorm:"type:varchar(150);not null"`
	Description   string    `gorm:"type:text;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Priority      string    `gorm:"type:varchar(10);not null;default:'medium'"`
	AdminResponse *string   `gorm:"column:admin_response;type:text"`
}

// TableName specifies the table name for the Feedback model.
func (Feedback) TableName() string {
	return "feedback"
}

// --- DTOs ---

// FeedbackResponse defines the structure for feedback data in API responses.
type FeedbackResponse struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	AdminResponse *string   `json:"admin_response,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToFeedbackResponse converts a Feedback model to its response DTO.
func ToFeedbackResponse(f *Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            f.ID,
		AuthorID:      f.AuthorID,
		Type:          f.Type,
		Title:         f.Title,
		Description:   f.Description,
		Status:        f.Status,
		Priority:      f.Priority,
		AdminResponse: f.AdminResponse,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// CreateFeedbackRequest for a user submitting feedback.
type CreateFeedbackRequest struct {
	Type        string `json:"type" binding:"required,oneof=new_category_request location_suggestion improvement bug other"`
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description" binding:"required,max=5000"`
}

// AdminUpdateFeedbackRequest for admin triage.
type AdminUpdateFeedbackRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending reviewed implemented rejected"`
	Priority      *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	AdminResponse *string `json:"admin_response" binding:"omitempty,max=5000"`
}
