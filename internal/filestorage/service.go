// File: internal/filestorage/service.go

// Package filestorage stores uploaded images (listing photos, category
// icon overrides) on local disk and serves them by public URL.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides operations for storing and deleting uploaded files.
type Service struct {
	storagePath   string
	publicBaseURL string
	logger        *zap.Logger
}

// NewService creates a file storage service rooted at storagePath.
func NewService(storagePath, publicBaseURL string, logger *zap.Logger) (*Service, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("File storage initialized", zap.String("storagePath", storagePath))
	return &Service{
		storagePath:   storagePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger.Named("filestorage"),
	}, nil
}

// SaveUploadedFile writes a multipart upload under subDir with a generated
// unique filename and returns its storage-relative path, e.g.
// "listings/9f6c….jpg".
func (s *Service) SaveUploadedFile(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	extension := filepath.Ext(filepath.Base(fileHeader.Filename))
	if extension == "" {
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			extension = ".jpg"
		case strings.HasPrefix(contentType, "image/png"):
			extension = ".png"
		case strings.HasPrefix(contentType, "image/webp"):
			extension = ".webp"
		default:
			return "", fmt.Errorf("unsupported file type or missing extension: %s", contentType)
		}
	}
	uniqueFilename := uuid.New().String() + extension

	cleanSubDir := filepath.Clean(subDir)
	if strings.HasPrefix(cleanSubDir, "..") {
		return "", fmt.Errorf("invalid subDir path")
	}

	destinationDir := filepath.Join(s.storagePath, cleanSubDir)
	if err := os.MkdirAll(destinationDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}

	destinationPath := filepath.Join(destinationDir, uniqueFilename)
	dst, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	relative := filepath.ToSlash(filepath.Join(cleanSubDir, uniqueFilename))
	s.logger.Info("File saved", zap.String("path", relative))
	return relative, nil
}

// PublicURL maps a storage-relative path to the URL clients fetch it from.
func (s *Service) PublicURL(relativePath string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(filepath.ToSlash(relativePath), "/")
}

// DeleteFile removes a file given its storage-relative path. Deleting a
// missing file is not an error.
func (s *Service) DeleteFile(relativePath string) error {
	if relativePath == "" {
		return fmt.Errorf("relative path cannot be empty")
	}

	cleanRelativePath := filepath.Clean(relativePath)
	if strings.Contains(cleanRelativePath, "..") {
		s.logger.Warn("Attempt to delete file with path traversal", zap.String("relativePath", relativePath))
		return fmt.Errorf("invalid file path for deletion")
	}

	fullPath := filepath.Join(s.storagePath, cleanRelativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("File deleted", zap.String("path", fullPath))
	return nil
}
