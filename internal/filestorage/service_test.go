// File: internal/filestorage/service_test.go
package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testStoragePath = "./test_images_temp"

func setupService(t *testing.T) (*Service, func()) {
	err := os.MkdirAll(testStoragePath, os.ModePerm)
	require.NoError(t, err, "Failed to create test storage path")

	svc, err := NewService(testStoragePath, "http://localhost:8080/images", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, svc)

	cleanup := func() {
		if err := os.RemoveAll(testStoragePath); err != nil {
			t.Logf("Warning: Failed to remove test storage path %s: %v", testStoragePath, err)
		}
	}
	return svc, cleanup
}

// newTestFileHeader builds a multipart.FileHeader the way Gin would hand it
// to a handler.
func newTestFileHeader(t *testing.T, fieldname, filename, content, contentType string) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldname, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File[fieldname]
	require.NotEmpty(t, files, "No files found for fieldname %s", fieldname)
	return files[0]
}

func TestSaveUploadedFileSuccess(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	content := "not really a jpeg"
	fh := newTestFileHeader(t, "upload", "storefront.jpg", content, "image/jpeg")

	relativePath, err := svc.SaveUploadedFile(fh, "listings")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relativePath, "listings/"))
	assert.True(t, strings.HasSuffix(relativePath, ".jpg"))

	fullPath := filepath.Join(testStoragePath, relativePath)
	fileContent, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(fileContent))
}

func TestSaveUploadedFileInfersExtensionFromContentType(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	fh := newTestFileHeader(t, "upload", "no-extension", "png bytes", "image/png")
	relativePath, err := svc.SaveUploadedFile(fh, "categories")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relativePath, ".png"))
}

func TestSaveUploadedFileUnsupportedType(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	fh := newTestFileHeader(t, "upload", "script", "#!/bin/sh", "application/x-sh")
	_, err := svc.SaveUploadedFile(fh, "listings")
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	assert.Equal(t,
		"http://localhost:8080/images/listings/abc.jpg",
		svc.PublicURL("listings/abc.jpg"))
}

func TestDeleteFile(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	fh := newTestFileHeader(t, "upload", "gone.jpg", "bytes", "image/jpeg")
	relativePath, err := svc.SaveUploadedFile(fh, "listings")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(relativePath))
	_, statErr := os.Stat(filepath.Join(testStoragePath, relativePath))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again is a no-op, not an error.
	assert.NoError(t, svc.DeleteFile(relativePath))
}

func TestDeleteFileRejectsTraversal(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	assert.Error(t, svc.DeleteFile("../../../etc/passwd"))
}
