// File: internal/feed/handler.go
package feed

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/geo"
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/placement"
)

// Handler holds dependencies for feed handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new feed handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("feed_handler"),
	}
}

// RegisterRoutes sets up the home feed route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, optionalAuthMW gin.HandlerFunc) {
	router.GET("/feed", optionalAuthMW, h.home)
}

// ItemResponse is one card in the feed response. Exactly one of the two
// fields is set; Type tells clients which without probing.
type ItemResponse struct {
	Type    string                       `json:"type"`
	Listing *listing.ListingResponse     `json:"listing,omitempty"`
	Ad      *placement.PlacementResponse `json:"ad,omitempty"`
}

// HomeFeedResponse is the home screen payload.
type HomeFeedResponse struct {
	Items    []ItemResponse            `json:"items"`
	Featured []listing.ListingResponse `json:"featured"`
}

func (h *Handler) home(c *gin.Context) {
	opts := listing.FilterOptionsFromQuery(c)

	result, err := h.service.Home(c.Request.Context(), opts)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	unit := opts.Unit
	if unit == "" {
		unit = geo.UnitMiles
	}

	items := make([]ItemResponse, len(result.Items))
	for i, item := range result.Items {
		if item.Ad != nil {
			ad := placement.ToPlacementResponse(item.Ad)
			items[i] = ItemResponse{Type: "ad", Ad: &ad}
			continue
		}
		l := listing.ToFeedItemResponse(item.Listing, unit)
		items[i] = ItemResponse{Type: "listing", Listing: &l}
	}

	featured := make([]listing.ListingResponse, len(result.Featured))
	for i := range result.Featured {
		featured[i] = listing.ToFeedItemResponse(&result.Featured[i], unit)
	}

	common.RespondOK(c, "Feed retrieved successfully.", HomeFeedResponse{
		Items:    items,
		Featured: featured,
	})
}
