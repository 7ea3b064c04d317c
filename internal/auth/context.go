package auth

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// GetUserID returns the caller's user ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SetUserID stores the caller's user ID for later handlers.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}
