package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError(errMissingAuthorization.Error()))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) || strings.TrimSpace(parts[1]) == "" {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(errInvalidAuthorization.Error()))
		return
	}

	userID, err := h.verifier.Verify(c, strings.TrimSpace(parts[1]))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to verify token")
		abort(c, newUnauthorizedError(errInvalidToken.Error()))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
