// File: internal/user/model.go
package user

import (
	"time"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/shared"

	"github.com/google/uuid"
)

// User is the GORM model for accounts. Identity comes from Firebase; this
// row holds the app-local profile and role.
type User struct {
	common.BaseModel
	FirebaseUID   string     `gorm:"column:firebase_uid;type:varchar(128);not null;uniqueIndex:idx_users_firebase_uid,unique"`
	Email         *string    `gorm:"type:varchar(255);index"`
	DisplayName   *string    `gorm:"column:display_name;type:varchar(100)"`
	PhotoURL      *string    `gorm:"column:photo_url;type:text"`
	Role          string     `gorm:"type:varchar(20);not null;default:'user'"`
	IsAnonymous   bool       `gorm:"column:is_anonymous;not null;default:false"`
	PreferredUnit string     `gorm:"column:preferred_unit;type:varchar(10);not null;default:'miles'"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Favorite is the join row for a user's favorited listings.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorites"
}

// DBToShared converts the GORM user model to the cross-module shared.User.
func DBToShared(u *User) *shared.User {
	return &shared.User{
		ID:            u.ID,
		FirebaseUID:   u.FirebaseUID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		PhotoURL:      u.PhotoURL,
		Role:          u.Role,
		IsAnonymous:   u.IsAnonymous,
		PreferredUnit: u.PreferredUnit,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

// --- DTOs ---

// UserResponse defines the structure for user data in API responses.
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Email         *string    `json:"email,omitempty"`
	DisplayName   *string    `json:"display_name,omitempty"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
	Role          string     `json:"role"`
	IsAnonymous   bool       `json:"is_anonymous"`
	PreferredUnit string     `json:"preferred_unit"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a shared.User to a UserResponse DTO.
func ToUserResponse(u *shared.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		PhotoURL:      u.PhotoURL,
		Role:          u.Role,
		IsAnonymous:   u.IsAnonymous,
		PreferredUnit: u.PreferredUnit,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

// UpdateProfileRequest for a user updating their own profile.
type UpdateProfileRequest struct {
	DisplayName   *string `json:"display_name" binding:"omitempty,max=100"`
	PhotoURL      *string `json:"photo_url" binding:"omitempty,url"`
	PreferredUnit *string `json:"preferred_unit" binding:"omitempty,oneof=miles km"`
}
