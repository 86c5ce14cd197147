// File: internal/category/service_test.go
package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCategoryRepository is a mock implementation of the Repository interface.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAdminCreateCategorySlugifiesEnglishName(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Category) bool {
		return c.Slug == "grocery-and-halal-markets" && c.Active
	})).Return(nil).Once()

	cat, err := svc.AdminCreateCategory(context.Background(), AdminCreateCategoryRequest{
		NameEN: "Grocery & Halal Markets",
		NameAM: "ግሮሰሪ",
	})
	require.NoError(t, err)
	assert.Equal(t, "grocery-and-halal-markets", cat.Slug)
	repo.AssertExpectations(t)
}

func TestPublicCategoriesRequestActiveOnly(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("FindAll", mock.Anything, true).Return([]Category{{NameEN: "Restaurants"}}, nil).Once()

	cats, err := svc.GetPublicCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	repo.AssertExpectations(t)
}

func TestAllCategoriesIncludeInactive(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("FindAll", mock.Anything, false).Return([]Category{
		{NameEN: "Restaurants", Active: true},
		{NameEN: "Retired", Active: false},
	}, nil).Once()

	cats, err := svc.GetAllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
	repo.AssertExpectations(t)
}

func TestAdminUpdateCategoryRenamingRecomputesSlug(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo, zap.NewNop())

	id := uuid.New()
	existing := &Category{NameEN: "Old Name", Slug: "old-name"}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *Category) bool {
		return c.Slug == "new-name"
	})).Return(nil).Once()

	newName := "New Name"
	cat, err := svc.AdminUpdateCategory(context.Background(), id, AdminUpdateCategoryRequest{NameEN: &newName})
	require.NoError(t, err)
	assert.Equal(t, "new-name", cat.Slug)
	repo.AssertExpectations(t)
}
