package Controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness and a trivial database probe.
func (api *API) Health(c *gin.Context) {
	if err := api.DB.Exec("SELECT 1").Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  "down",
			"timestamp": time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "up",
		"timestamp": time.Now().Unix(),
	})
}
