// File: internal/notification/handler.go
package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// Handler holds dependencies for notification handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("notification_handler"),
	}
}

// RegisterRoutes sets up the routes for notification operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	notificationGroup := router.Group("/notifications")
	notificationGroup.Use(authMW)
	{
		notificationGroup.GET("", h.list)
		notificationGroup.GET("/unread-count", h.unreadCount)
		notificationGroup.POST("/:id/read", h.markRead)
		notificationGroup.POST("/read-all", h.markAllRead)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	unreadOnly := c.Query("unread") == "true"

	items, err := h.service.GetUserNotifications(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]NotificationResponse, len(items))
	for i := range items {
		responses[i] = ToNotificationResponse(&items[i])
	}
	common.RespondOK(c, "Notifications retrieved successfully.", responses)
}

func (h *Handler) unreadCount(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	count, err := h.service.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Unread count retrieved successfully.", gin.H{"count": count})
}

func (h *Handler) markRead(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid notification ID format."))
		return
	}
	if err := h.service.MarkAsRead(c.Request.Context(), id, userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Notification marked as read.", nil)
}

func (h *Handler) markAllRead(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	if err := h.service.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All notifications marked as read.", nil)
}
