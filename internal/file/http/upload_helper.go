package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

// FileUploadConfig defines the configuration for generic file uploads
type FileUploadConfig struct {
	FormFieldName string                                         // The name of the form field containing the file (default: "file")
	MaxSizeBytes  int64                                          // The maximum file size in bytes (0 = no limit)
	AllowedTypes  []string                                       // The list of allowed MIME types (empty = allow all)
	BeforeUpload  func(ctx context.Context) error                // Called before anything is stored (optional)
	AfterUpload   func(ctx context.Context, fileID string) error // Called after successful file upload (optional)
}

// HandleFileUpload is a generic reusable handler for file uploads.
// A failing AfterUpload hook rolls the upload back.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	ctx := c.Request.Context()

	if config.BeforeUpload != nil {
		if err := config.BeforeUpload(ctx); err != nil {
			response.Error(c, err)
			return
		}
	}

	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	if config.MaxSizeBytes > 0 {
		// Leave room for the multipart envelope around the file itself.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxSizeBytes+1<<20)
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		response.Error(c, apperror.Wrap(err, apperror.KindBlankField, fieldName+" is required"))
		return
	}

	f, err := h.fileService.Upload(ctx, file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(ctx, f.ID); err != nil {
			_ = h.fileService.Delete(ctx, f.ID)
			response.Error(c, err)
			return
		}
	}

	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusOK, FileUploadResponse{
		Message:      "file uploaded successfully",
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	})
}
