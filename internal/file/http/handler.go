package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/file"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{
		fileService: fileService,
	}
}

// ServeFile streams the original upload.
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	stream, f, err := h.fileService.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", f.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+f.Filename+"\"")
	stream200(c, stream, f.ID)
}

// ServeThumbnail streams the JPEG thumbnail of an image upload.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	stream, f, err := h.fileService.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+f.Filename+"_thumb.jpg\"")
	stream200(c, stream, f.ID)
}

func stream200(c *gin.Context, r io.Reader, fileID string) {
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, r); err != nil {
		// Headers are already sent; all we can do is log.
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("file_id", fileID).Msg("streaming file failed")
	}
}
