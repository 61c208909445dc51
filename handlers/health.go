package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carebook/utils"
)

// Health reports the last observed status of backing services.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
