package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

// HeaderUserID carries the caller's user ID when no bearer token is sent.
const HeaderUserID = "X-Sharer-User-Id"

var (
	ErrIdentityRequired = apperror.New(apperror.KindBlankField, HeaderUserID+" header is required")
	ErrInvalidUserID    = apperror.New(apperror.KindInvalidInput, HeaderUserID+" must be a UUID")
	ErrInvalidToken     = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
)

// Identity resolves the caller from "Authorization: Bearer <jwt>" when jwtManager is set
// and a bearer token is present, otherwise from the X-Sharer-User-Id header.
// The user ID is stored in the gin context and added to the request logger.
func Identity(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolveUserID(c, jwtManager)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		SetUserID(c, userID)

		ctx := c.Request.Context()
		logger := zerolog.Ctx(ctx).With().Str("user_id", userID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx))

		c.Next()
	}
}

func resolveUserID(c *gin.Context, jwtManager *JWTManager) (string, error) {
	if jwtManager != nil {
		if header := c.GetHeader("Authorization"); header != "" {
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				return "", ErrInvalidToken
			}
			claims, err := jwtManager.ParseAndValidate(strings.TrimSpace(token))
			if err != nil {
				return "", apperror.Wrap(err, apperror.KindUnauthorized, ErrInvalidToken.Message)
			}
			id, err := uuid.Parse(claims.UserID())
			if err != nil {
				return "", ErrInvalidToken
			}
			return id.String(), nil
		}
	}

	raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if raw == "" {
		return "", ErrIdentityRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidUserID
	}
	return id.String(), nil
}
