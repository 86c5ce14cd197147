// File: internal/placement/handler.go
package placement

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// Handler holds dependencies for placement handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new placement handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("placement_handler"),
	}
}

// RegisterRoutes sets up the routes for placement operations. The public
// surface is read-plus-counters only; everything else is admin.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	placementGroup := router.Group("/placements")
	{
		placementGroup.GET("/:slot", h.getActiveBySlot)
		placementGroup.POST("/:slot/:id/view", h.recordView)
		placementGroup.POST("/:slot/:id/click", h.recordClick)

		adminGroup := placementGroup.Group("/admin")
		adminGroup.Use(authMW, adminRoleMW)
		{
			adminGroup.GET("", h.adminList)
			adminGroup.POST("", h.adminCreate)
			adminGroup.GET("/:id", h.adminGet)
			adminGroup.PATCH("/:id", h.adminUpdate)
			adminGroup.DELETE("/:id", h.adminDelete)
		}
	}
}

func (h *Handler) getActiveBySlot(c *gin.Context) {
	slot := c.Param("slot")
	placements := h.service.ActivePlacements(c.Request.Context(), slot, time.Now())

	responses := make([]PlacementResponse, len(placements))
	for i := range placements {
		responses[i] = ToPlacementResponse(&placements[i])
	}
	common.RespondOK(c, "Placements retrieved successfully.", responses)
}

func (h *Handler) recordView(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid placement ID format."))
		return
	}
	h.service.RecordView(c.Request.Context(), id)
	common.RespondOK(c, "View recorded.", nil)
}

func (h *Handler) recordClick(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid placement ID format."))
		return
	}
	h.service.RecordClick(c.Request.Context(), id)
	common.RespondOK(c, "Click recorded.", nil)
}

func (h *Handler) adminList(c *gin.Context) {
	placements, err := h.service.AdminListPlacements(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]PlacementResponse, len(placements))
	for i := range placements {
		responses[i] = ToPlacementResponse(&placements[i])
	}
	common.RespondOK(c, "Placements retrieved successfully.", responses)
}

func (h *Handler) adminGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid placement ID format."))
		return
	}
	p, err := h.service.AdminGetPlacement(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Placement retrieved successfully.", ToPlacementResponse(p))
}

func (h *Handler) adminCreate(c *gin.Context) {
	var req AdminCreatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.service.AdminCreatePlacement(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Placement created successfully.", ToPlacementResponse(p))
}

func (h *Handler) adminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid placement ID format."))
		return
	}

	var req AdminUpdatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.service.AdminUpdatePlacement(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Placement updated successfully.", ToPlacementResponse(p))
}

func (h *Handler) adminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid placement ID format."))
		return
	}
	if err := h.service.AdminDeletePlacement(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Placement deleted successfully.", nil)
}
