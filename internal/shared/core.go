// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// User is the cross-module view of an account. The user module owns the
// persistence shape; other modules depend on this package to avoid cycles.
type User struct {
	ID            uuid.UUID
	FirebaseUID   string
	Email         *string
	DisplayName   *string
	PhotoURL      *string
	Role          string
	IsAnonymous   bool
	PreferredUnit string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

// Service defines the user lookups the middleware and other modules need.
type Service interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	GetOrCreateUserFromFirebaseClaims(ctx context.Context, firebaseToken *firebaseauth.Token) (usr *User, wasCreated bool, err error)
}
