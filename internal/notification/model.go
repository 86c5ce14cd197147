// File: internal/notification/model.go
package notification

import (
	"time"

	"github.com/google/uuid"

	"uslocal_backend/internal/common"
)

// Notification types emitted by moderation.
const (
	TypeListingApproved = "listing_approved"
	TypeListingRejected = "listing_rejected"
)

// Notification is the GORM model for an in-app notification.
type Notification struct {
	common.BaseModel
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Type      string     `gorm:"type:varchar(30);not null"`
	Title     string     `gorm:"type:varchar(150);not null"`
	Message   string     `gorm:"type:text;not null"`
	ListingID *uuid.UUID `gorm:"column:listing_id;type:uuid"`
	IsRead    bool       `gorm:"column:is_read;not null;default:false"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}

// --- DTOs ---

// NotificationResponse defines the structure for notification data in API responses.
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ListingID *uuid.UUID `json:"listing_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToNotificationResponse converts a Notification model to its response DTO.
func ToNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		ListingID: n.ListingID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
