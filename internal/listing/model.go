// File: internal/listing/model.go
package listing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"uslocal_backend/internal/common"
)

// Moderation statuses. Transitions out of pending happen only through
// admin action or owner soft-delete.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// StatusReason distinguishes who moved a listing to rejected.
const (
	ReasonOwnerDeleted  = "owner_deleted"
	ReasonAdminRejected = "admin_rejected"
)

// DayHours is one weekday's operating window. Open and Close are
// zero-padded 24-hour "HH:MM" strings so lexicographic comparison is
// equivalent to time comparison.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// WeekHours maps lowercase weekday names to operating windows. Stored as a
// single jsonb column.
type WeekHours map[string]DayHours

// Value implements driver.Valuer for jsonb storage.
func (h WeekHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner for jsonb storage.
func (h *WeekHours) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, isStr := value.(string); isStr {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("unsupported type for WeekHours: %T", value)
		}
	}
	return json.Unmarshal(bytes, h)
}

// WeekdayKey returns the lowercase weekday name used as a WeekHours key.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// Listing is the GORM model for a business listing.
type Listing struct {
	common.BaseModel
	OwnerID     uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index"`
	Name        string         `gorm:"type:varchar(150);not null"`
	Description string         `gorm:"type:text;not null"`
	Categories  pq.StringArray `gorm:"type:text[];not null"`
	PriceRange  *string        `gorm:"column:price_range;type:varchar(10)"`

	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(50)"`
	ZipCode string `gorm:"column:zip_code;type:varchar(20)"`

	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`

	Phone   *string `gorm:"type:varchar(30)"`
	Website *string `gorm:"type:text"`

	Hours WeekHours `gorm:"type:jsonb"`

	Status       string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	StatusReason *string `gorm:"column:status_reason;type:varchar(30)"`
	Featured     bool    `gorm:"not null;default:false"`
	Verified     bool    `gorm:"not null;default:false"`
	Visible      bool    `gorm:"not null;default:true"`

	ViewCount   int64   `gorm:"column:view_count;not null;default:0"`
	ClickCount  int64   `gorm:"column:click_count;not null;default:0"`
	ReviewCount int64   `gorm:"column:review_count;not null;default:0"`
	Rating      float64 `gorm:"not null;default:0"`

	Images pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the table name for the Listing model.
func (Listing) TableName() string {
	return "listings"
}

// HasCoordinates reports whether the listing carries a usable coordinate
// pair. A listing without one is never shown on the map and never
// distance-filtered.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil &&
		!isNaN(*l.Latitude) && !isNaN(*l.Longitude)
}

func isNaN(f float64) bool { return f != f }

// PubliclyVisible reports whether the listing is eligible for public
// display: approved and not owner-hidden.
func (l *Listing) PubliclyVisible() bool {
	return l.Status == StatusApproved && l.Visible
}

// OpenAt reports whether the listing is open at the given weekday key and
// "HH:MM" time. Both boundaries are inclusive. Listings with no schedule
// for the day count as closed.
func (l *Listing) OpenAt(weekday, hhmm string) bool {
	if l.Hours == nil {
		return false
	}
	day, ok := l.Hours[weekday]
	if !ok || day.Closed {
		return false
	}
	if day.Open == "" || day.Close == "" {
		return false
	}
	return day.Open <= hhmm && day.Close >= hhmm
}

// PrimaryImage returns the first image URL, the designated cover shot.
func (l *Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// --- DTOs ---

// ListingResponse defines the structure for listing data in API responses.
type ListingResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Categories  []string  `json:"categories"`
	PriceRange  *string   `json:"price_range,omitempty"`

	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`

	Hours WeekHours `json:"hours,omitempty"`

	Status       string  `json:"status"`
	StatusReason *string `json:"status_reason,omitempty"`
	Featured     bool    `json:"featured"`
	Verified     bool    `json:"verified"`
	Visible      bool    `json:"visible"`

	ViewCount   int64   `json:"view_count"`
	ClickCount  int64   `json:"click_count"`
	ReviewCount int64   `json:"review_count"`
	Rating      float64 `json:"rating"`

	Images []string `json:"images"`

	// Distance from the viewer, present only when the viewer supplied a
	// coordinate. Formatted per the viewer's preferred unit.
	Distance          *float64 `json:"distance,omitempty"`
	DistanceFormatted string   `json:"distance_formatted,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToListingResponse converts a Listing model to its response DTO.
func ToListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		ID:           l.ID,
		OwnerID:      l.OwnerID,
		Name:         l.Name,
		Description:  l.Description,
		Categories:   l.Categories,
		PriceRange:   l.PriceRange,
		Street:       l.Street,
		City:         l.City,
		State:        l.State,
		ZipCode:      l.ZipCode,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Phone:        l.Phone,
		Website:      l.Website,
		Hours:        l.Hours,
		Status:       l.Status,
		StatusReason: l.StatusReason,
		Featured:     l.Featured,
		Verified:     l.Verified,
		Visible:      l.Visible,
		ViewCount:    l.ViewCount,
		ClickCount:   l.ClickCount,
		ReviewCount:  l.ReviewCount,
		Rating:       l.Rating,
		Images:       l.Images,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// CreateListingRequest for a user submitting a new listing.
type CreateListingRequest struct {
	Name        string    `json:"name" binding:"required,max=150"`
	Description string    `json:"description" binding:"required"`
	Categories  []string  `json:"categories" binding:"required,min=1"`
	PriceRange  *string   `json:"price_range" binding:"omitempty,oneof=$ $$ $$$ $$$$"`
	Street      string    `json:"street" binding:"omitempty,max=255"`
	City        string    `json:"city" binding:"omitempty,max=100"`
	State       string    `json:"state" binding:"omitempty,max=50"`
	ZipCode     string    `json:"zip_code" binding:"omitempty,max=20"`
	Latitude    *float64  `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64  `json:"longitude" binding:"omitempty,longitude"`
	Phone       *string   `json:"phone" binding:"omitempty,max=30"`
	Website     *string   `json:"website" binding:"omitempty,url"`
	Hours       WeekHours `json:"hours"`
	Images      []string  `json:"images" binding:"omitempty,dive,url"`
}

// UpdateListingRequest for an owner editing their listing. All fields
// optional; only provided fields are applied.
type UpdateListingRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=150"`
	Description *string   `json:"description"`
	Categories  []string  `json:"categories" binding:"omitempty,min=1"`
	PriceRange  *string   `json:"price_range" binding:"omitempty,oneof=$ $$ $$$ $$$$"`
	Street      *string   `json:"street" binding:"omitempty,max=255"`
	City        *string   `json:"city" binding:"omitempty,max=100"`
	State       *string   `json:"state" binding:"omitempty,max=50"`
	ZipCode     *string   `json:"zip_code" binding:"omitempty,max=20"`
	Latitude    *float64  `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64  `json:"longitude" binding:"omitempty,longitude"`
	Phone       *string   `json:"phone" binding:"omitempty,max=30"`
	Website     *string   `json:"website" binding:"omitempty,url"`
	Hours       WeekHours `json:"hours"`
	Images      []string  `json:"images" binding:"omitempty,dive,url"`
	Visible     *bool     `json:"visible"`
}

// AdminRejectRequest carries an optional note for a rejection.
type AdminRejectRequest struct {
	Note *string `json:"note" binding:"omitempty,max=500"`
}
