package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"redirector/internal/domain"
	"redirector/internal/metrics"
	"redirector/internal/service"
	"redirector/pkg/logger"
)

// RedirectHandler serves short code lookups
type RedirectHandler struct {
	service service.LinkService
	metrics *metrics.RequestMetrics
	logger  *logger.Logger
}

// NewRedirectHandler creates a new redirect handler with dependencies
func NewRedirectHandler(service service.LinkService, metrics *metrics.RequestMetrics, logger *logger.Logger) *RedirectHandler {
	return &RedirectHandler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Root handles GET /
func (h *RedirectHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "redirector up")
}

// Redirect handles GET /:code
// Exactly one lookup, one counter increment and one latency observation per call.
// The stored value goes into Location untouched.
func (h *RedirectHandler) Redirect(c *gin.Context) {
	start := time.Now()
	shortCode := c.Param("code")

	longURL, err := h.service.Resolve(c.Request.Context(), shortCode)
	outcome := classify(err)
	h.metrics.Observe(outcome, time.Since(start))

	switch outcome {
	case domain.OutcomeHit:
		c.Header("Location", longURL)
		c.String(http.StatusFound, "Found. Redirecting to %s", longURL)

	case domain.OutcomeMiss:
		c.String(http.StatusNotFound, "not found")

	default:
		h.logger.Errorw("Lookup failed",
			"short_code", shortCode,
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
		c.String(http.StatusInternalServerError, "internal error")
	}
}

func classify(err error) domain.Outcome {
	switch {
	case err == nil:
		return domain.OutcomeHit
	case errors.Is(err, domain.ErrURLNotFound):
		return domain.OutcomeMiss
	default:
		return domain.OutcomeError
	}
}
