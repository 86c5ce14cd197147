// File: internal/review/service_test.go
package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/shared"
)

// MockReviewRepository is a mock type for review.Repository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateWithRatingUpdate(ctx context.Context, r *Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockReviewRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]Review, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockReviewRepository) MarkReported(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func registeredAuthor() *shared.User {
	return &shared.User{
		ID:          uuid.New(),
		DisplayName: strPtr("Hanna"),
		IsAnonymous: false,
	}
}

func TestWeightedAverageMatchesTransactionFormula(t *testing.T) {
	// First review of 5 stars on a fresh listing.
	rating, count := weightedAverage(0, 0, 5)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, int64(1), count)

	// Second review of 3 stars brings the average to 4.
	rating, count = weightedAverage(rating, count, 3)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, int64(2), count)

	// Uneven case keeps full float precision.
	rating, count = weightedAverage(4.0, 2, 5)
	assert.InDelta(t, 13.0/3.0, rating, 1e-9)
	assert.Equal(t, int64(3), count)
}

func TestCreateReviewPopulatesAuthorSnapshot(t *testing.T) {
	repo := new(MockReviewRepository)
	svc := NewService(repo, zap.NewNop())
	listingID := uuid.New()
	author := registeredAuthor()

	repo.On("CreateWithRatingUpdate", mock.Anything, mock.MatchedBy(func(r *Review) bool {
		return r.ListingID == listingID &&
			r.AuthorID == author.ID &&
			r.AuthorName == "Hanna" &&
			r.Rating == 5 &&
			!r.Reported
	})).Return(nil)

	rev, err := svc.CreateReview(context.Background(), listingID, author, CreateReviewRequest{
		Rating:  5,
		Comment: "Best kitfo in town.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hanna", rev.AuthorName)
	repo.AssertExpectations(t)
}

func TestCreateReviewForbiddenForGuests(t *testing.T) {
	repo := new(MockReviewRepository)
	svc := NewService(repo, zap.NewNop())

	guest := &shared.User{ID: uuid.New(), IsAnonymous: true}
	_, err := svc.CreateReview(context.Background(), uuid.New(), guest, CreateReviewRequest{
		Rating:  4,
		Comment: "nice",
	})

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrForbidden.StatusCode, apiErr.StatusCode)
	repo.AssertNotCalled(t, "CreateWithRatingUpdate", mock.Anything, mock.Anything)
}

func TestCreateReviewDefaultsAuthorName(t *testing.T) {
	repo := new(MockReviewRepository)
	svc := NewService(repo, zap.NewNop())

	author := &shared.User{ID: uuid.New()}
	repo.On("CreateWithRatingUpdate", mock.Anything, mock.MatchedBy(func(r *Review) bool {
		return r.AuthorName == "Member"
	})).Return(nil)

	_, err := svc.CreateReview(context.Background(), uuid.New(), author, CreateReviewRequest{
		Rating:  3,
		Comment: "fine",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReportReview(t *testing.T) {
	repo := new(MockReviewRepository)
	svc := NewService(repo, zap.NewNop())
	id := uuid.New()

	repo.On("MarkReported", mock.Anything, id).Return(nil)
	require.NoError(t, svc.ReportReview(context.Background(), id))
	repo.AssertExpectations(t)
}
