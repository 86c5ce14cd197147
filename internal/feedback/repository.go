// File: internal/feedback/repository.go
package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslocal_backend/internal/common"
)

// Repository defines the interface for feedback data operations.
type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]Feedback, error)
	FindAll(ctx context.Context, status string, page, pageSize int) ([]Feedback, int64, error)
	Update(ctx context.Context, f *Feedback) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM feedback repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, f *Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error) {
	var f Feedback
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Feedback not found.")
		}
		return nil, err
	}
	return &f, nil
}

func (r *gormRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]Feedback, error) {
	var items []Feedback
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *gormRepository) FindAll(ctx context.Context, status string, page, pageSize int) ([]Feedback, int64, error) {
	var items []Feedback
	var total int64

	query := r.db.WithContext(ctx).Model(&Feedback{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *gormRepository) Update(ctx context.Context, f *Feedback) error {
	return r.db.WithContext(ctx).Save(f).Error
}
