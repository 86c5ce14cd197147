// File: internal/placement/model.go

// Package placement manages sponsored-content records and their activation
// windows.
package placement

import (
	"time"

	"github.com/google/uuid"

	"uslocal_backend/internal/common"
)

// Slots where sponsored content can appear.
const (
	SlotHomeFeedInline        = "home_feed_inline"
	SlotItemDetailRelated     = "item_detail_related"
	SlotCategoryCarouselStory = "category_carousel_story"
	SlotFeaturedTopBanner     = "featured_top_banner"
)

// KnownSlot reports whether the slot name is one the clients render.
func KnownSlot(slot string) bool {
	switch slot {
	case SlotHomeFeedInline, SlotItemDetailRelated, SlotCategoryCarouselStory, SlotFeaturedTopBanner:
		return true
	}
	return false
}

// Placement is the GORM model for a sponsored-content record.
type Placement struct {
	common.BaseModel
	Slot string `gorm:"type:varchar(40);not null;index"`
	// Creative fields are individually optional; an image-only record is valid.
	Title       string     `gorm:"type:varchar(150)"`
	Description *string    `gorm:"type:text"`
	ImageURL    string     `gorm:"column:image_url;type:text"`
	TargetURL   string     `gorm:"column:target_url;type:text"`
	SponsorName string     `gorm:"column:sponsor_name;type:varchar(100);not null"`
	Priority    int        `gorm:"not null;default:0"`
	StartsAt    time.Time  `gorm:"column:starts_at;not null"`
	EndsAt      *time.Time `gorm:"column:ends_at"`
	Enabled     bool       `gorm:"not null;default:true"`
	ViewCount   int64      `gorm:"column:view_count;not null;default:0"`
	ClickCount  int64      `gorm:"column:click_count;not null;default:0"`
}

// TableName specifies the table name for the Placement model.
func (Placement) TableName() string {
	return "placements"
}

// ActiveAt reports whether the placement is live at time t: enabled, the
// window has started, and either no end is set or it has not passed. Both
// window boundaries are inclusive.
func (p *Placement) ActiveAt(t time.Time) bool {
	if !p.Enabled {
		return false
	}
	if p.StartsAt.After(t) {
		return false
	}
	if p.EndsAt != nil && p.EndsAt.Before(t) {
		return false
	}
	return true
}

// --- DTOs ---

// PlacementResponse defines the structure for placement data in API responses.
type PlacementResponse struct {
	ID          uuid.UUID  `json:"id"`
	Slot        string     `json:"slot"`
	Title       string     `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	TargetURL   string     `json:"target_url,omitempty"`
	SponsorName string     `json:"sponsor_name"`
	Priority    int        `json:"priority"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Enabled     bool       `json:"enabled"`
	ViewCount   int64      `json:"view_count"`
	ClickCount  int64      `json:"click_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToPlacementResponse converts a Placement model to its response DTO.
func ToPlacementResponse(p *Placement) PlacementResponse {
	return PlacementResponse{
		ID:          p.ID,
		Slot:        p.Slot,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		TargetURL:   p.TargetURL,
		SponsorName: p.SponsorName,
		Priority:    p.Priority,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
		Enabled:     p.Enabled,
		ViewCount:   p.ViewCount,
		ClickCount:  p.ClickCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// AdminCreatePlacementRequest for admins creating placements.
type AdminCreatePlacementRequest struct {
	Slot        string     `json:"slot" binding:"required"`
	Title       string     `json:"title" binding:"omitempty,max=150"`
	Description *string    `json:"description"`
	ImageURL    string     `json:"image_url" binding:"omitempty,url"`
	TargetURL   string     `json:"target_url" binding:"omitempty,url"`
	SponsorName string     `json:"sponsor_name" binding:"required,max=100"`
	Priority    int        `json:"priority"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Enabled     *bool      `json:"enabled"`
}

// AdminUpdatePlacementRequest for admins updating placements.
type AdminUpdatePlacementRequest struct {
	Slot        *string    `json:"slot"`
	Title       *string    `json:"title" binding:"omitempty,max=150"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url"`
	TargetURL   *string    `json:"target_url" binding:"omitempty,url"`
	SponsorName *string    `json:"sponsor_name" binding:"omitempty,max=100"`
	Priority    *int       `json:"priority"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Enabled     *bool      `json:"enabled"`
}
