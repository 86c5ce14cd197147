// File: internal/placement/repository.go
package placement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslocal_backend/internal/common"
)

// Repository defines the interface for placement data operations.
type Repository interface {
	Create(ctx context.Context, p *Placement) error
	FindByID(ctx context.Context, id uuid.UUID) (*Placement, error)
	FindAll(ctx context.Context) ([]Placement, error)
	// FindActiveBySlot returns enabled placements for the slot whose window
	// covers now, highest priority first.
	FindActiveBySlot(ctx context.Context, slot string, now time.Time) ([]Placement, error)
	Update(ctx context.Context, p *Placement) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementClickCount(ctx context.Context, id uuid.UUID) error
	// DisableEnded flips off every enabled placement whose end passed
	// before cutoff. Returns the number of rows changed.
	DisableEnded(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM placement repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Placement) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Placement, error) {
	var p Placement
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Placement not found.")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Placement, error) {
	var placements []Placement
	err := r.db.WithContext(ctx).
		Order("slot ASC, priority DESC, created_at DESC").
		Find(&placements).Error
	return placements, err
}

func (r *gormRepository) FindActiveBySlot(ctx context.Context, slot string, now time.Time) ([]Placement, error) {
	var placements []Placement
	err := r.db.WithContext(ctx).
		Where("slot = ? AND enabled = ? AND starts_at <= ? AND (ends_at IS NULL OR ends_at >= ?)",
			slot, true, now, now).
		Order("priority DESC, created_at ASC").
		Find(&placements).Error
	return placements, err
}

func (r *gormRepository) Update(ctx context.Context, p *Placement) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Placement{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Placement not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Placement{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *gormRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Placement{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

func (r *gormRepository) DisableEnded(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Placement{}).
		Where("enabled = ? AND ends_at IS NOT NULL AND ends_at < ?", true, cutoff).
		UpdateColumn("enabled", false)
	return result.RowsAffected, result.Error
}
