// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/firebase"
	"uslocal_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(common.AuthorizationHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
		return "", false
	}
	return parts[1], true
}

func setUserContext(c *gin.Context, usr *shared.User) {
	c.Set(common.UserIDKey, usr.ID)
	if usr.Email != nil {
		c.Set(common.UserEmailKey, *usr.Email)
	}
	c.Set(common.UserRoleKey, usr.Role)
	c.Set(common.FirebaseUIDKey, usr.FirebaseUID)
	c.Set(common.IsAnonymousKey, usr.IsAnonymous)
	c.Set(common.UserPreferredUnitKey, usr.PreferredUnit)
}

// AuthMiddleware verifies the Firebase ID token on the request and resolves
// the local user record, creating it on first sight of the Firebase UID.
func AuthMiddleware(fb *firebase.FirebaseService, users shared.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := fb.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired ID token."))
			return
		}

		usr, wasCreated, err := users.GetOrCreateUserFromFirebaseClaims(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve user from Firebase claims", zap.Error(err), zap.String("firebaseUID", token.UID))
			common.RespondWithError(c, err)
			return
		}
		if wasCreated {
			logger.Info("Provisioned new user from Firebase token",
				zap.String("userID", usr.ID.String()),
				zap.String("firebaseUID", usr.FirebaseUID),
			)
		}

		setUserContext(c, usr)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a valid token is present but
// lets unauthenticated requests through. Invalid tokens are ignored, not
// rejected, so public reads keep working with a stale client token.
func OptionalAuthMiddleware(fb *firebase.FirebaseService, users shared.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		token, err := fb.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debug("Optional auth: token verification failed, continuing unauthenticated", zap.Error(err))
			c.Next()
			return
		}

		usr, _, err := users.GetOrCreateUserFromFirebaseClaims(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Optional auth: failed to resolve user, continuing unauthenticated", zap.Error(err))
			c.Next()
			return
		}

		setUserContext(c, usr)
		c.Next()
	}
}

// RoleAuthMiddleware checks that the authenticated user holds one of the
// allowed roles. It must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, ok := common.GetUserRoleFromContext(c)
		if !ok || userRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}
