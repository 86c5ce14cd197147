// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/config"
	"uslocal_backend/internal/shared"
)

// Service defines user business logic beyond the cross-module shared.Service.
type Service interface {
	shared.Service
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*shared.User, error)
	AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error
	GetFavoriteListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	repo        Repository
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)
var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:        repo,
		adminEmails: cfg.AdminEmailSet(),
		logger:      logger.Named("user_service"),
	}
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*shared.User, error) {
	dbUser, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetOrCreateUserFromFirebaseClaims resolves the local user row for a
// verified Firebase token, provisioning one on first sight. Role elevation
// to admin comes only from the configured email allowlist; the token never
// carries a role the client could set.
func (s *ServiceImplementation) GetOrCreateUserFromFirebaseClaims(ctx context.Context, token *firebaseauth.Token) (*shared.User, bool, error) {
	dbUser, err := s.repo.FindByFirebaseUID(ctx, token.UID)
	if err == nil {
		changed := s.applyClaims(dbUser, token)
		now := time.Now()
		dbUser.LastLoginAt = &now
		if err := s.repo.Update(ctx, dbUser); err != nil {
			// Last-login bookkeeping must not block authentication.
			s.logger.Error("Failed to update user on login", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		} else if changed {
			s.logger.Debug("User profile refreshed from Firebase claims", zap.String("userID", dbUser.ID.String()))
		}
		return DBToShared(dbUser), false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Error finding user by Firebase UID", zap.Error(err), zap.String("firebaseUID", token.UID))
		return nil, false, err
	}

	now := time.Now()
	newUser := &User{
		FirebaseUID: token.UID,
		Role:        common.RoleUser,
		IsAnonymous: isAnonymousToken(token),
		LastLoginAt: &now,
	}
	s.applyClaims(newUser, token)

	if err := s.repo.Create(ctx, newUser); err != nil {
		// Concurrent first requests from the same client can race on the
		// unique Firebase UID; the loser re-reads the winner's row.
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == common.ErrConflict.StatusCode {
			existing, findErr := s.repo.FindByFirebaseUID(ctx, token.UID)
			if findErr == nil {
				return DBToShared(existing), false, nil
			}
		}
		s.logger.Error("Failed to create user from Firebase claims", zap.Error(err), zap.String("firebaseUID", token.UID))
		return nil, false, common.ErrInternalServer.WithDetails("Could not provision user account.")
	}

	s.logger.Info("New user provisioned",
		zap.String("userID", newUser.ID.String()),
		zap.String("firebaseUID", newUser.FirebaseUID),
		zap.Bool("anonymous", newUser.IsAnonymous),
		zap.String("role", newUser.Role),
	)
	return DBToShared(newUser), true, nil
}

// applyClaims copies profile fields from token claims onto the user row and
// recomputes the role from the admin allowlist. Reports whether anything changed.
func (s *ServiceImplementation) applyClaims(usr *User, token *firebaseauth.Token) bool {
	changed := false

	if email, ok := token.Claims["email"].(string); ok && email != "" {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if usr.Email == nil || *usr.Email != normalized {
			usr.Email = &normalized
			changed = true
		}
	}
	if name, ok := token.Claims["name"].(string); ok && name != "" {
		if usr.DisplayName == nil || *usr.DisplayName != name {
			nameCopy := name
			usr.DisplayName = &nameCopy
			changed = true
		}
	}
	if picture, ok := token.Claims["picture"].(string); ok && picture != "" {
		if usr.PhotoURL == nil || *usr.PhotoURL != picture {
			pictureCopy := picture
			usr.PhotoURL = &pictureCopy
			changed = true
		}
	}

	role := common.RoleUser
	if usr.Email != nil {
		if _, isAdmin := s.adminEmails[*usr.Email]; isAdmin {
			role = common.RoleAdmin
		}
	}
	if usr.Role != role {
		usr.Role = role
		changed = true
	}

	anon := isAnonymousToken(token)
	if usr.IsAnonymous != anon {
		usr.IsAnonymous = anon
		changed = true
	}

	return changed
}

func isAnonymousToken(token *firebaseauth.Token) bool {
	return token.Firebase.SignInProvider == "anonymous"
}

func (s *ServiceImplementation) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		dbUser.DisplayName = req.DisplayName
	}
	if req.PhotoURL != nil {
		dbUser.PhotoURL = req.PhotoURL
	}
	if req.PreferredUnit != nil {
		dbUser.PreferredUnit = *req.PreferredUnit
	}

	if err := s.repo.Update(ctx, dbUser); err != nil {
		s.logger.Error("Failed to update user profile", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.repo.AddFavorite(ctx, userID, listingID)
}

func (s *ServiceImplementation) RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.repo.RemoveFavorite(ctx, userID, listingID)
}

func (s *ServiceImplementation) GetFavoriteListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.FindFavoriteListingIDs(ctx, userID)
}
