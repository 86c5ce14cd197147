// File: internal/feedback/service.go
package feedback

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// Service defines the interface for feedback business logic.
type Service interface {
	CreateFeedback(ctx context.Context, authorID uuid.UUID, req CreateFeedbackRequest) (*Feedback, error)
	GetMyFeedback(ctx context.Context, authorID uuid.UUID) ([]Feedback, error)
	AdminListFeedback(ctx context.Context, status string, page, pageSize int) ([]Feedback, int64, error)
	AdminUpdateFeedback(ctx context.Context, id uuid.UUID, req AdminUpdateFeedbackRequest) (*Feedback, error)
}

// ServiceImplementation implements the feedback Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new feedback service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("feedback_service"),
	}
}

func (s *ServiceImplementation) CreateFeedback(ctx context.Context, authorID uuid.UUID, req CreateFeedbackRequest) (*Feedback, error) {
	f := &Feedback{
		AuthorID:    authorID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusPending,
		Priority:    PriorityMedium,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("Failed to create feedback", zap.Error(err), zap.String("authorID", authorID.String()))
		return nil, err
	}
	s.logger.Info("Feedback submitted",
		zap.String("feedbackID", f.ID.String()),
		zap.String("type", f.Type),
	)
	return f, nil
}

func (s *ServiceImplementation) GetMyFeedback(ctx context.Context, authorID uuid.UUID) ([]Feedback, error) {
	return s.repo.FindByAuthor(ctx, authorID)
}

func (s *ServiceImplementation) AdminListFeedback(ctx context.Context, status string, page, pageSize int) ([]Feedback, int64, error) {
	if status != "" {
		switch status {
		case StatusPending, StatusReviewed, StatusImplemented, StatusRejected:
		default:
			return nil, 0, common.ErrBadRequest.WithDetails("Unknown feedback status.")
		}
	}
	return s.repo.FindAll(ctx, status, page, pageSize)
}

func (s *ServiceImplementation) AdminUpdateFeedback(ctx context.Context, id uuid.UUID, req AdminUpdateFeedbackRequest) (*Feedback, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		f.Status = *req.Status
	}
	if req.Priority != nil {
		f.Priority = *req.Priority
	}
	if req.AdminResponse != nil {
		f.AdminResponse = req.AdminResponse
	}

	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.Error("Failed to update feedback", zap.Error(err), zap.String("feedbackID", id.String()))
		return nil, err
	}
	return f, nil
}
