package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string        `json:"error"`
	Code  apperror.Kind `json:"code"`
}

// Error sends a JSON error response.
// AppErrors are written with their own status and kind.
// Anything else is logged with the request logger and answered with a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Code: appErr.Kind})
		return
	}

	log := zerolog.Ctx(c.Request.Context())
	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("unhandled error")

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Code:  apperror.KindInternal,
	})
}

// BadRequest sends a 400 INVALID_INPUT response for binding and validation failures.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "code": apperror.KindInvalidInput}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
