package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping is a liveness probe
// GET /ping
func (h *HealthHandler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Version reports the backing database version
// GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	var version string
	switch h.db.Dialector.Name() {
	case "sqlite":
		h.db.Raw("SELECT sqlite_version()").Scan(&version)
	default:
		h.db.Raw("SELECT version()").Scan(&version)
	}

	c.JSON(http.StatusOK, gin.H{"version": version})
}
