package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
)

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func serve(l Limiter, userID string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		if userID != "" {
			auth.SetUserID(c, userID)
		}
		c.Next()
	}, Middleware(l), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	return w
}

func TestMiddleware(t *testing.T) {
	t.Run("Allowed", func(t *testing.T) {
		l := &stubLimiter{allow: true}
		w := serve(l, "alice")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"alice"}, l.keys)
	})

	t.Run("Denied", func(t *testing.T) {
		w := serve(&stubLimiter{allow: false}, "alice")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
	})

	t.Run("FailsOpen", func(t *testing.T) {
		w := serve(&stubLimiter{err: errors.New("redis down")}, "alice")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("AnonymousKeyedByIP", func(t *testing.T) {
		l := &stubLimiter{allow: true}
		serve(l, "")
		assert.Len(t, l.keys, 1)
		assert.Contains(t, l.keys[0], "ip:")
	})
}
