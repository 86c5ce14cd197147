// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"

	"uslocal_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for listing data operations.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	// FindAllForViewer loads the working set the filter pipeline runs over:
	// every publicly visible listing plus, when viewerID is non-nil, that
	// viewer's own listings in any state.
	FindAllForViewer(ctx context.Context, viewerID *uuid.UUID) ([]Listing, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Listing, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error)
	FindByStatus(ctx context.Context, status string, page, pageSize int) ([]Listing, int64, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementClickCount(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	return &l, nil
}

func (r *gormRepository) FindAllForViewer(ctx context.Context, viewerID *uuid.UUID) ([]Listing, error) {
	var listings []Listing
	query := r.db.WithContext(ctx).Model(&Listing{})
	if viewerID != nil {
		query = query.Where("(status = ? AND visible = ?) OR owner_id = ?", StatusApproved, true, *viewerID)
	} else {
		query = query.Where("status = ? AND visible = ?", StatusApproved, true)
	}
	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *gormRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Listing, error) {
	var listings []Listing
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *gormRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error) {
	if len(ids) == 0 {
		return []Listing{}, nil
	}
	var listings []Listing
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listings).Error
	return listings, err
}

func (r *gormRepository) FindByStatus(ctx context.Context, status string, page, pageSize int) ([]Listing, int64, error) {
	var listings []Listing
	var total int64

	query := r.db.WithContext(ctx).Model(&Listing{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at ASC").Offset(offset).Limit(pageSize).Find(&listings).Error
	return listings, total, err
}

func (r *gormRepository) Update(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Listing{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Listing not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *gormRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}
