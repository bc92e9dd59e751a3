package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"redirector/internal/config"
	"redirector/internal/domain"
	"redirector/pkg/logger"
)

// NewRedirectRouter wires the redirector's routes.
// Static paths win over the /:code wildcard, and a trailing slash is
// ignored when looking up a code.
func NewRedirectRouter(
	redirect *RedirectHandler,
	health *HealthHandler,
	metricsHandler http.Handler,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	router := newEngine(cfg, log)

	router.GET("/", redirect.Root)
	router.GET("/metrics", gin.WrapH(metricsHandler))
	router.GET("/health", health.Check)
	router.GET("/:code", redirect.Redirect)
	router.GET("/:code/", redirect.Redirect)

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})

	return router
}

// NewShortenerRouter wires the shortener's routes
func NewShortenerRouter(
	shorten *ShortenHandler,
	health *HealthHandler,
	metricsHandler http.Handler,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	router := newEngine(cfg, log)
	router.Use(CORSMiddleware(cfg))

	router.POST("/shorten",
		RateLimitMiddleware(cfg.RateLimitPerMinute),
		AuthMiddleware(cfg),
		shorten.Shorten,
	)
	router.GET("/health", health.CheckJSON)
	router.GET("/metrics", gin.WrapH(metricsHandler))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "not found"})
	})

	return router
}

func newEngine(cfg *config.Config, log *logger.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Match on the escaped path so "/a%2Fb" is the single code "a/b"
	router.UseRawPath = true
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(SecurityHeadersMiddleware())

	return router
}
