package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/ratelimit"
)

func newTestRouter(health func(ctx context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics.Register()
	return NewRouter(Config{
		Logger:      zerolog.Nop(),
		Limiter:     ratelimit.NewMemoryLimiter(10, 10),
		HealthCheck: health,
	})
}

func TestRouter_Healthz(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	down := func(context.Context) error { return errors.New("db down") }
	newTestRouter(down).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "req-123")

	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(nil)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shareit_http_requests_total")
}

func TestRouter_IdentityRequired(t *testing.T) {
	r := newTestRouter(nil)

	for _, target := range []string{"/v1/bookings", "/v1/bookings/owner", "/v1/items", "/v1/requests"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), "BLANK_FIELD", target)
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitOrigins(""))
}
