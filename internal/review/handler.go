// File: internal/review/handler.go
package review

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/shared"
)

// Handler holds dependencies for review handlers.
type Handler struct {
	service Service
	users   shared.Service
	logger  *zap.Logger
}

// NewHandler creates a new review handler.
func NewHandler(service Service, users shared.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		users:   users,
		logger:  logger.Named("review_handler"),
	}
}

// RegisterRoutes sets up the routes for review operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	listingReviews := router.Group("/listings/:id/reviews")
	{
		listingReviews.GET("", h.listForListing)
		listingReviews.POST("", authMW, h.create)
	}

	reviewGroup := router.Group("/reviews")
	{
		reviewGroup.POST("/:id/report", authMW, h.report)

		adminGroup := reviewGroup.Group("/admin")
		adminGroup.Use(authMW, adminRoleMW)
		{
			adminGroup.DELETE("/:id", h.adminDelete)
		}
	}
}

func (h *Handler) listForListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	reviews, err := h.service.GetListingReviews(c.Request.Context(), listingID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	common.RespondOK(c, "Reviews retrieved successfully.", responses)
}

func (h *Handler) create(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	author, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	rev, err := h.service.CreateReview(c.Request.Context(), listingID, author, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Review submitted successfully.", ToReviewResponse(rev))
}

func (h *Handler) report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid review ID format."))
		return
	}
	if err := h.service.ReportReview(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Review reported. Our moderators will take a look.", nil)
}

func (h *Handler) adminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid review ID format."))
		return
	}
	if err := h.service.AdminDeleteReview(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Review deleted.", nil)
}
