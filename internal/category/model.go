// File: internal/category/model.go
package category

import (
	"time"

	"uslocal_backend/internal/common"

	"github.com/google/uuid"
)

// Category represents a browsable listing category. Categories carry two
// display locales and a visual glyph: either a symbolic icon name from the
// client icon set, or an uploaded image URL that overrides it.
type Category struct {
	common.BaseModel
	NameEN       string  `gorm:"column:name_en;type:varchar(100);not null;uniqueIndex:idx_categories_name_en,unique"`
	NameAM       string  `gorm:"column:name_am;type:varchar(100);not null"`
	Slug         string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_slug,unique"`
	Icon         string  `gorm:"type:varchar(64);not null;default:'storefront'"`
	IconImageURL *string `gorm:"column:icon_image_url;type:text"`
	Color        string  `gorm:"type:varchar(16);not null;default:'#2E7D32'"`
	IconSize     int     `gorm:"column:icon_size;not null;default:24"`
	Active       bool    `gorm:"not null;default:true"`
	SortOrder    int     `gorm:"column:sort_order;not null;default:0"`
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// --- DTOs ---

// CategoryResponse defines the structure for category data in API responses.
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	NameEN       string    `json:"name_en"`
	NameAM       string    `json:"name_am"`
	Slug         string    `json:"slug"`
	Icon         string    `json:"icon"`
	IconImageURL *string   `json:"icon_image_url,omitempty"`
	Color        string    `json:"color"`
	IconSize     int       `json:"icon_size"`
	Active       bool      `json:"active"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a Category model to its response DTO.
func ToCategoryResponse(category *Category) CategoryResponse {
	return CategoryResponse{
		ID:           category.ID,
		NameEN:       category.NameEN,
		NameAM:       category.NameAM,
		Slug:         category.Slug,
		Icon:         category.Icon,
		IconImageURL: category.IconImageURL,
		Color:        category.Color,
		IconSize:     category.IconSize,
		Active:       category.Active,
		SortOrder:    category.SortOrder,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// AdminCreateCategoryRequest for admins creating categories.
type AdminCreateCategoryRequest struct {
	NameEN       string  `json:"name_en" binding:"required,max=100"`
	NameAM       string  `json:"name_am" binding:"required,max=100"`
	Icon         string  `json:"icon" binding:"omitempty,max=64"`
	IconImageURL *string `json:"icon_image_url" binding:"omitempty,url"`
	Color        string  `json:"color" binding:"omitempty,hexcolor"`
	IconSize     *int    `json:"icon_size" binding:"omitempty,gte=12,lte=96"`
	SortOrder    *int    `json:"sort_order"`
}

// AdminUpdateCategoryRequest for admins updating categories. All fields
// optional; only provided fields are applied.
type AdminUpdateCategoryRequest struct {
	NameEN       *string `json:"name_en" binding:"omitempty,max=100"`
	NameAM       *string `json:"name_am" binding:"omitempty,max=100"`
	Icon         *string `json:"icon" binding:"omitempty,max=64"`
	IconImageURL *string `json:"icon_image_url" binding:"omitempty,url"`
	Color        *string `json:"color" binding:"omitempty,hexcolor"`
	IconSize     *int    `json:"icon_size" binding:"omitempty,gte=12,lte=96"`
	Active       *bool   `json:"active"`
	SortOrder    *int    `json:"sort_order"`
}
