// File: internal/common/context_keys.go
package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AuthorizationHeader     = "Authorization"
	AuthorizationTypeBearer = "bearer"

	// Keys set on the Gin context by the auth middleware.
	UserIDKey            = "userID"
	UserEmailKey         = "userEmail"
	UserRoleKey          = "userRole"
	FirebaseUIDKey       = "firebaseUID"
	IsAnonymousKey       = "isAnonymous"
	UserPreferredUnitKey = "userPreferredUnit"
)

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := val.(string)
	return role, ok
}

// GetFirebaseUIDFromContext retrieves the Firebase UID from the Gin context.
func GetFirebaseUIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(FirebaseUIDKey)
	if !exists {
		return "", false
	}
	uid, ok := val.(string)
	return uid, ok
}

// GetPreferredUnitFromContext retrieves the viewer's stored distance unit
// from the Gin context.
func GetPreferredUnitFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(UserPreferredUnitKey)
	if !exists {
		return "", false
	}
	unit, ok := val.(string)
	if !ok || unit == "" {
		return "", false
	}
	return unit, true
}

// IsAnonymousFromContext reports whether the authenticated session is anonymous.
// Absence of the key is treated as anonymous.
func IsAnonymousFromContext(c *gin.Context) bool {
	val, exists := c.Get(IsAnonymousKey)
	if !exists {
		return true
	}
	anon, ok := val.(bool)
	if !ok {
		return true
	}
	return anon
}
