package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"redirector/internal/domain"
	"redirector/internal/store"
	"redirector/pkg/logger"
)

// HealthHandler reports store connectivity. Every call pings the store; nothing is cached.
type HealthHandler struct {
	store  store.Store
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store store.Store, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// Check handles GET /health for the redirector (plain text).
// A closed connection short-circuits to 503 without a round trip.
func (h *HealthHandler) Check(c *gin.Context) {
	if !h.store.IsOpen() {
		c.String(http.StatusServiceUnavailable, "redis disconnected")
		return
	}

	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Errorw("Health check failed", "error", err)
		c.String(http.StatusServiceUnavailable, "redis unavailable")
		return
	}

	c.String(http.StatusOK, "ok")
}

// CheckJSON handles GET /health for the shortener
func (h *HealthHandler) CheckJSON(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Errorw("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, domain.HealthResponse{Status: "redis_unavailable"})
		return
	}

	c.JSON(http.StatusOK, domain.HealthResponse{Status: "ok"})
}
