// File: internal/user/handler.go
package user

import (
	"errors"

	"uslocal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("user_handler"),
	}
}

// RegisterRoutes sets up the routes for user operations. Every route here
// requires an authenticated session; account creation happens implicitly in
// the auth middleware on first token verification.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	authGroup.Use(authMW)
	{
		authGroup.GET("/me", h.getMe)
		authGroup.PATCH("/me", h.updateMe)
	}

	favGroup := router.Group("/favorites")
	favGroup.Use(authMW)
	{
		favGroup.GET("", h.listFavorites)
		favGroup.PUT("/:listingId", h.addFavorite)
		favGroup.DELETE("/:listingId", h.removeFavorite)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		h.logger.Error("User ID not found in context for /me", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	usr, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) updateMe(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToUserResponse(usr))
}

func (h *Handler) listFavorites(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	ids, err := h.service.GetFavoriteListingIDs(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Favorites retrieved successfully.", gin.H{"listing_ids": ids})
}

func (h *Handler) addFavorite(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	listingID, err := uuid.Parse(c.Param("listingId"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	if err := h.service.AddFavorite(c.Request.Context(), userID, listingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing favorited.", nil)
}

func (h *Handler) removeFavorite(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	listingID, err := uuid.Parse(c.Param("listingId"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	if err := h.service.RemoveFavorite(c.Request.Context(), userID, listingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing unfavorited.", nil)
}
