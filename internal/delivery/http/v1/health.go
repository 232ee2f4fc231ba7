package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Same layout as JavaScript's Date.toISOString.
const healthTimestampLayout = "2006-01-02T15:04:05.000Z"

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(healthTimestampLayout),
	})
}
