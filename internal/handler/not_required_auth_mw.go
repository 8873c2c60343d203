package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// notRequiredAuthMiddleware resolves the caller when a valid bearer token is
// present and lets the request through either way.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		c.Next()
		return
	}

	user, err := h.getUserDataFromAccessTokenClaims(c.Request.Context(), accessToken)
	if err != nil {
		h.logger.Sugar().Debugf("ignoring access token: %s", err.Error())
		c.Next()
		return
	}

	c.Set(cachedUserKey, *user)

	c.Next()
}
