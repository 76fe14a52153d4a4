package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskforge/taskforge/pkg/logger"
)

// HealthHandler exposes the liveness and readiness probes.
type HealthHandler struct {
	db  *gorm.DB
	log logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log.WithComponent("health_handler"),
	}
}

// Live reports that the process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports whether the service can reach its database.
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Error(c.Request.Context(), "Base de datos no disponible", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
