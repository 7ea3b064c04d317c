package file

import (
	"mime/multipart"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(apperror.KindNotFound, "file not found")
	ErrThumbnailUnavailable = apperror.New(apperror.KindNotFound, "thumbnail not available for this file")
	ErrTooLarge             = apperror.New(apperror.KindInvalidInput, "file is too large")
	ErrUnsupportedType      = apperror.New(apperror.KindInvalidInput, "file type is not allowed")
	ErrEmpty                = apperror.New(apperror.KindInvalidInput, "file is empty")
)

// ImageTypes are the content types accepted for item photos.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/bmp", "image/tiff"}

// File is an uploaded blob and its metadata.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// UploadInput carries an uploaded multipart file and the limits it must satisfy.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
