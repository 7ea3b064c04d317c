package ratelimit

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

var ErrTooManyRequests = apperror.New(apperror.KindTooManyRequests, "too many requests, slow down")

// Middleware rejects callers over their limit with 429. It keys on the user ID set by
// the identity middleware and falls back to the client IP. Limiter failures let the
// request through.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := auth.GetUserID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !ok {
			response.Error(c, ErrTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
