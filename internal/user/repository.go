// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"uslocal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, usr *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	Update(ctx context.Context, usr *User) error

	AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error
	FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, usr *User) error {
	err := r.db.WithContext(ctx).Create(usr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("User with this Firebase UID already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var usr User
	err := r.db.WithContext(ctx).First(&usr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, err
	}
	return &usr, nil
}

func (r *gormRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	var usr User
	err := r.db.WithContext(ctx).First(&usr, "firebase_uid = ?", firebaseUID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, err
	}
	return &usr, nil
}

func (r *gormRepository) Update(ctx context.Context, usr *User) error {
	return r.db.WithContext(ctx).Save(usr).Error
}

// AddFavorite is idempotent: favoriting an already-favorited listing is a
// no-op at the database level.
func (r *gormRepository) AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	fav := Favorite{UserID: userID, ListingID: listingID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

func (r *gormRepository) RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&Favorite{}).Error
}

func (r *gormRepository) FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("listing_id", &ids).Error
	return ids, err
}

func (r *gormRepository) IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}
