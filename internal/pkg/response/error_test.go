package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

func serve(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", func(c *gin.Context) { Error(c, err) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_AppError(t *testing.T) {
	w, body := serve(t, apperror.New(apperror.KindNotAvailable, "item is not available"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "item is not available", body.Error)
	assert.Equal(t, apperror.KindNotAvailable, body.Code)
}

func TestError_WrappedAppError(t *testing.T) {
	sentinel := apperror.New(apperror.KindNotFound, "booking not found")
	w, body := serve(t, fmt.Errorf("lookup: %w", sentinel))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.KindNotFound, body.Code)
}

func TestError_UnknownErrorIsHidden(t *testing.T) {
	w, body := serve(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, apperror.KindInternal, body.Code)
}

func TestNewOffsetPageResponse_EmptyItems(t *testing.T) {
	resp := NewOffsetPageResponse[string](nil, 5, 10, 0)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"from":5,"size":10,"total":0}`, string(raw))
}
