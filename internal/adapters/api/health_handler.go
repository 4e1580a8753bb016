package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forecast.app/internal/adapters/infrastructure"
)

// getHealth handles GET /health
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())
	overall := infrastructure.Overall(results)

	status := http.StatusOK
	if overall == infrastructure.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"components": results,
	})
}
