// File: internal/feedback/handler.go
package feedback

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// Handler holds dependencies for feedback handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new feedback handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("feedback_handler"),
	}
}

// RegisterRoutes sets up the routes for feedback operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	feedbackGroup := router.Group("/feedback")
	feedbackGroup.Use(authMW)
	{
		feedbackGroup.POST("", h.create)
		feedbackGroup.GET("/mine", h.getMine)

		adminGroup := feedbackGroup.Group("/admin")
		adminGroup.Use(adminRoleMW)
		{
			adminGroup.GET("", h.adminList)
			adminGroup.PATCH("/:id", h.adminUpdate)
		}
	}
}

func (h *Handler) create(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	f, err := h.service.CreateFeedback(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Feedback submitted. Thank you!", ToFeedbackResponse(f))
}

func (h *Handler) getMine(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	items, err := h.service.GetMyFeedback(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]FeedbackResponse, len(items))
	for i := range items {
		responses[i] = ToFeedbackResponse(&items[i])
	}
	common.RespondOK(c, "Your feedback retrieved successfully.", responses)
}

func (h *Handler) adminList(c *gin.Context) {
	status := c.Query("status")
	page, pageSize := common.GetPaginationParams(c)

	items, total, err := h.service.AdminListFeedback(c.Request.Context(), status, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]FeedbackResponse, len(items))
	for i := range items {
		responses[i] = ToFeedbackResponse(&items[i])
	}
	common.RespondPaginated(c, "Feedback retrieved successfully.", responses, common.NewPagination(total, page, pageSize))
}

func (h *Handler) adminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid feedback ID format."))
		return
	}

	var req AdminUpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	f, err := h.service.AdminUpdateFeedback(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Feedback updated successfully.", ToFeedbackResponse(f))
}
