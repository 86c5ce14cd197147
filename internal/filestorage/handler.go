// File: internal/filestorage/handler.go
package filestorage

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uslocal_backend/internal/common"
)

// Upload destinations accepted from clients. Anything else is rejected so
// uploads cannot land outside the image tree.
var allowedUploadKinds = map[string]struct{}{
	"listings":   {},
	"categories": {},
	"avatars":    {},
}

// Handler exposes image upload over HTTP.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new file storage handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("filestorage_handler"),
	}
}

// RegisterRoutes sets up the upload route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/uploads", authMW, h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if common.IsAnonymousFromContext(c) {
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Guests cannot upload images. Please sign in."))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A multipart 'file' field is required."))
		return
	}

	kind := c.DefaultPostForm("kind", "listings")
	if _, ok := allowedUploadKinds[kind]; !ok {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Unknown upload kind."))
		return
	}

	relativePath, err := h.service.SaveUploadedFile(fileHeader, kind)
	if err != nil {
		h.logger.Warn("Upload failed", zap.String("kind", kind), zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	common.RespondCreated(c, "File uploaded successfully.", gin.H{
		"path": relativePath,
		"url":  h.service.PublicURL(relativePath),
	})
}
