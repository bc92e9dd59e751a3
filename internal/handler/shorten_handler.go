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

// ShortenHandler handles link creation
type ShortenHandler struct {
	service service.LinkService
	metrics *metrics.RequestMetrics
	logger  *logger.Logger
}

// NewShortenHandler creates a new shorten handler with dependencies
func NewShortenHandler(service service.LinkService, metrics *metrics.RequestMetrics, logger *logger.Logger) *ShortenHandler {
	return &ShortenHandler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Shorten handles POST /shorten
func (h *ShortenHandler) Shorten(c *gin.Context) {
	start := time.Now()

	var req domain.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unreadable body is the same as one without a url
		h.logger.Debugw("Ignoring unparsable shorten body", "error", err)
		req = domain.ShortenRequest{}
	}

	resp, err := h.service.Shorten(c.Request.Context(), req.URL)
	if err != nil {
		outcome := h.handleError(c, err)
		h.metrics.Observe(outcome, time.Since(start))
		return
	}

	h.metrics.Observe(domain.OutcomeOK, time.Since(start))
	c.JSON(http.StatusCreated, resp)
}

// handleError writes the error response and returns the outcome to record
func (h *ShortenHandler) handleError(c *gin.Context, err error) domain.Outcome {
	switch {
	case errors.Is(err, domain.ErrURLRequired):
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: domain.ErrURLRequired.Error()})
		return domain.OutcomeBadRequest

	case errors.Is(err, domain.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: domain.ErrInvalidURL.Error()})
		return domain.OutcomeBadRequest

	case errors.Is(err, domain.ErrCodeAllocation):
		h.logger.Errorw("Code allocation exhausted", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: domain.ErrCodeAllocation.Error()})
		return domain.OutcomeError

	default:
		h.logger.Errorw("Shorten failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "internal error"})
		return domain.OutcomeError
	}
}
