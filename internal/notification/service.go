// File: internal/notification/service.go
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/listing"
)

// Service defines the interface for notification business logic. It also
// serves as the listing module's moderation notifier.
type Service interface {
	listing.ModerationNotifier
	GetUserNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

// ServiceImplementation implements the notification Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)
var _ listing.ModerationNotifier = (*ServiceImplementation)(nil)

// NewService creates a new notification service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("notification_service"),
	}
}

// NotifyListingStatus writes an in-app notification for a moderation
// outcome on the owner's listing.
func (s *ServiceImplementation) NotifyListingStatus(ctx context.Context, ownerID, listingID uuid.UUID, listingName, status string, note *string) error {
	n := &Notification{
		UserID:    ownerID,
		ListingID: &listingID,
	}

	switch status {
	case listing.StatusApproved:
		n.Type = TypeListingApproved
		n.Title = "Listing approved"
		n.Message = fmt.Sprintf("Your listing %q is now live.", listingName)
	case listing.StatusRejected:
		n.Type = TypeListingRejected
		n.Title = "Listing not approved"
		n.Message = fmt.Sprintf("Your listing %q was not approved.", listingName)
		if note != nil && *note != "" {
			n.Message = fmt.Sprintf("%s Reason: %s", n.Message, *note)
		}
	default:
		// Only terminal moderation states produce notifications.
		return nil
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("Moderation notification written",
		zap.String("userID", ownerID.String()),
		zap.String("listingID", listingID.String()),
		zap.String("type", n.Type),
	)
	return nil
}

func (s *ServiceImplementation) GetUserNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	return s.repo.FindByUserID(ctx, userID, unreadOnly)
}

func (s *ServiceImplementation) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *ServiceImplementation) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *ServiceImplementation) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
