// File: internal/listing/handler.go
package listing

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/geo"
)

// Handler holds dependencies for listing handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("listing_handler"),
	}
}

// RegisterRoutes sets up the routes for listing operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, optionalAuthMW, adminRoleMW gin.HandlerFunc) {
	listingGroup := router.Group("/listings")
	{
		listingGroup.GET("/map", optionalAuthMW, h.browseMap)
		listingGroup.GET("/featured", optionalAuthMW, h.browseFeatured)
		listingGroup.GET("/mine", authMW, h.getMyListings)
		listingGroup.GET("/:id", optionalAuthMW, h.getByID)
		listingGroup.POST("/:id/click", h.recordClick)

		listingGroup.POST("", authMW, h.create)
		listingGroup.PATCH("/:id", authMW, h.update)
		listingGroup.DELETE("/:id", authMW, h.ownerDelete)

		adminGroup := listingGroup.Group("/admin")
		adminGroup.Use(authMW, adminRoleMW)
		{
			adminGroup.GET("", h.adminList)
			adminGroup.POST("/:id/approve", h.adminApprove)
			adminGroup.POST("/:id/reject", h.adminReject)
			adminGroup.PATCH("/:id/featured", h.adminSetFeatured)
			adminGroup.PATCH("/:id/verified", h.adminSetVerified)
			adminGroup.DELETE("/:id", h.adminDelete)
		}
	}
}

// FilterOptionsFromQuery builds pipeline options from browse query params.
// Shared with the home feed endpoint so both surfaces filter identically.
func FilterOptionsFromQuery(c *gin.Context) FilterOptions {
	opts := FilterOptions{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		OpenNow:  c.Query("open_now") == "true",
	}

	// The unit param is the client UI's unit: it is both the display unit
	// and the unit the max-distance slider value is expressed in. A signed-in
	// viewer's stored preference overrides it for display, and the service
	// converts the slider value across when the two disagree.
	if u := c.Query("unit"); u != "" {
		opts.Unit = geo.ParseUnit(u)
		opts.MaxDistanceUnit = opts.Unit
	}
	if pref, ok := common.GetPreferredUnitFromContext(c); ok {
		opts.Unit = geo.ParseUnit(pref)
	}

	if v, err := strconv.ParseFloat(c.Query("max_distance"), 64); err == nil && v > 0 {
		opts.MaxDistance = v
	}
	if lat, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.Query("lng"), 64); err == nil {
			opts.ViewerLat = &lat
			opts.ViewerLng = &lng
		}
	}

	if viewerID, ok := common.GetUserIDFromContext(c); ok {
		opts.ViewerID = &viewerID
	}

	return opts
}

// ToFeedItemResponse renders a feed item with its formatted distance.
func ToFeedItemResponse(item *FeedItem, unit geo.Unit) ListingResponse {
	resp := ToListingResponse(&item.Listing)
	if item.Distance != nil {
		resp.Distance = item.Distance
		resp.DistanceFormatted = geo.Format(*item.Distance, unit)
	}
	return resp
}

func (h *Handler) browseMap(c *gin.Context) {
	opts := FilterOptionsFromQuery(c)
	result, err := h.service.Browse(c.Request.Context(), opts)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ListingResponse, len(result.Map))
	for i := range result.Map {
		responses[i] = ToListingResponse(&result.Map[i])
	}
	common.RespondOK(c, "Map listings retrieved successfully.", responses)
}

func (h *Handler) browseFeatured(c *gin.Context) {
	opts := FilterOptionsFromQuery(c)
	result, err := h.service.Browse(c.Request.Context(), opts)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	unit := opts.Unit
	responses := make([]ListingResponse, len(result.Featured))
	for i := range result.Featured {
		responses[i] = ToFeedItemResponse(&result.Featured[i], unit)
	}
	common.RespondOK(c, "Featured listings retrieved successfully.", responses)
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var viewerID *uuid.UUID
	if uid, ok := common.GetUserIDFromContext(c); ok {
		viewerID = &uid
	}
	viewerRole, _ := common.GetUserRoleFromContext(c)

	l, err := h.service.GetListingByID(c.Request.Context(), id, viewerID, viewerRole)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing retrieved successfully.", ToListingResponse(l))
}

func (h *Handler) getMyListings(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	listings, err := h.service.GetMyListings(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingResponse(&listings[i])
	}
	common.RespondOK(c, "Your listings retrieved successfully.", responses)
}

// recordClick is deliberately unauthenticated and always succeeds from the
// client's perspective.
func (h *Handler) recordClick(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	h.service.RecordClick(c.Request.Context(), id)
	common.RespondOK(c, "Click recorded.", nil)
}

func (h *Handler) create(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	if common.IsAnonymousFromContext(c) {
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Guest accounts cannot create listings. Please sign in."))
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.CreateListing(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing submitted for review.", ToListingResponse(l))
}

func (h *Handler) update(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.UpdateListing(c.Request.Context(), id, userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing updated successfully.", ToListingResponse(l))
}

func (h *Handler) ownerDelete(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.OwnerSoftDelete(c.Request.Context(), id, userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing deleted.", nil)
}

// --- Admin handlers ---

func (h *Handler) adminList(c *gin.Context) {
	status := c.DefaultQuery("status", StatusPending)
	page, pageSize := common.GetPaginationParams(c)

	listings, total, err := h.service.AdminListByStatus(c.Request.Context(), status, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingResponse(&listings[i])
	}
	common.RespondPaginated(c, "Listings retrieved successfully.", responses, common.NewPagination(total, page, pageSize))
}

func (h *Handler) adminApprove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	l, err := h.service.AdminApprove(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing approved.", ToListingResponse(l))
}

func (h *Handler) adminReject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	// Body is optional for rejections.
	var req AdminRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = AdminRejectRequest{}
	}

	l, err := h.service.AdminReject(c.Request.Context(), id, req.Note)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing rejected.", ToListingResponse(l))
}

type setFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

func (h *Handler) adminSetFeatured(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	var req setFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Request body must include a boolean 'value'."))
		return
	}
	l, err := h.service.AdminSetFeatured(c.Request.Context(), id, *req.Value)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing featured flag updated.", ToListingResponse(l))
}

func (h *Handler) adminSetVerified(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	var req setFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Request body must include a boolean 'value'."))
		return
	}
	l, err := h.service.AdminSetVerified(c.Request.Context(), id, *req.Value)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing verified flag updated.", ToListingResponse(l))
}

func (h *Handler) adminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	if err := h.service.AdminHardDelete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing permanently deleted.", nil)
}
