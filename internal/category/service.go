// File: internal/category/service.go
package category

import (
	"context"

	"uslocal_backend/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for category business logic.
type Service interface {
	GetPublicCategories(ctx context.Context) ([]Category, error)
	GetAllCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	AdminCreateCategory(ctx context.Context, req AdminCreateCategoryRequest) (*Category, error)
	AdminUpdateCategory(ctx context.Context, id uuid.UUID, req AdminUpdateCategoryRequest) (*Category, error)
	AdminDeleteCategory(ctx context.Context, id uuid.UUID) error
}

// ServiceImplementation implements the category Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new category service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("category_service"),
	}
}

// GetPublicCategories returns only active categories, the set end users see.
func (s *ServiceImplementation) GetPublicCategories(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx, true)
}

// GetAllCategories returns all categories, inactive included, for admin views.
func (s *ServiceImplementation) GetAllCategories(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx, false)
}

func (s *ServiceImplementation) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) AdminCreateCategory(ctx context.Context, req AdminCreateCategoryRequest) (*Category, error) {
	cat := &Category{
		NameEN: req.NameEN,
		NameAM: req.NameAM,
		Slug:   slug.Make(req.NameEN),
		Active: true,
	}
	if req.Icon != "" {
		cat.Icon = req.Icon
	}
	if req.IconImageURL != nil {
		cat.IconImageURL = req.IconImageURL
	}
	if req.Color != "" {
		cat.Color = req.Color
	}
	if req.IconSize != nil {
		cat.IconSize = *req.IconSize
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}

	if err := s.repo.Create(ctx, cat); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err), zap.String("name_en", req.NameEN))
		return nil, err
	}
	s.logger.Info("Category created", zap.String("categoryID", cat.ID.String()), zap.String("slug", cat.Slug))
	return cat, nil
}

func (s *ServiceImplementation) AdminUpdateCategory(ctx context.Context, id uuid.UUID, req AdminUpdateCategoryRequest) (*Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NameEN != nil {
		cat.NameEN = *req.NameEN
		cat.Slug = slug.Make(*req.NameEN)
	}
	if req.NameAM != nil {
		cat.NameAM = *req.NameAM
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	if req.IconImageURL != nil {
		cat.IconImageURL = req.IconImageURL
	}
	if req.Color != nil {
		cat.Color = *req.Color
	}
	if req.IconSize != nil {
		cat.IconSize = *req.IconSize
	}
	if req.Active != nil {
		cat.Active = *req.Active
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err), zap.String("categoryID", id.String()))
		return nil, err
	}
	return cat, nil
}

func (s *ServiceImplementation) AdminDeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to delete category", zap.Error(err), zap.String("categoryID", id.String()))
		}
		return err
	}
	s.logger.Info("Category deleted", zap.String("categoryID", id.String()))
	return nil
}
