package handler

import (
	"net/http"

	"luminafi/internal/domain/service"
	"luminafi/pkg/errors"
	"luminafi/pkg/response"

	"github.com/labstack/echo/v4"
)

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

type FileHandler struct {
	uploadService service.FileUploadService
	maxBytes      int64
}

var fileHandler *FileHandler

func SetupFileHandler(uploadService service.FileUploadService, maxBytes int64) {
	fileHandler = &FileHandler{
		uploadService: uploadService,
		maxBytes:      maxBytes,
	}
}

func GetFileHandler() *FileHandler { return fileHandler }

// Upload stores a credential document and returns its public URL; the client
// attaches the URL to its lender record through PATCH /api/user.
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing file", err))
	}
	if fileHeader.Size > h.maxBytes {
		return response.Error(c, errors.BadRequest("File too large", nil))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return response.Error(c, errors.BadRequest("Unsupported file type", nil))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid file", err))
	}
	defer src.Close()

	url, err := h.uploadService.UploadFile(c.Request().Context(), src, contentType, fileHeader.Filename)
	if err != nil {
		return response.Error(c, errors.Internal("Upload failed", err))
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"url": url,
	})
}
