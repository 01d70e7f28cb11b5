// Package api exposes the computed dashboard state as JSON over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"world-dashboard/apperrors"
	"world-dashboard/cities"
	"world-dashboard/config"
	"world-dashboard/delta"
	"world-dashboard/i18n"
	"world-dashboard/models"
	"world-dashboard/store"
)

// SunLookup fetches a city's sun window when the store has none yet.
type SunLookup interface {
	FetchCity(ctx context.Context, city models.City) (models.SunWindow, error)
}

// CacheReporter exposes sun cache usage on the health endpoint.
type CacheReporter interface {
	CacheStats() (hits, misses int64)
	Size() int
}

// Server represents the API server
type Server struct {
	store    *store.DashboardStore
	dir      *cities.Directory
	delta    *delta.Calculator
	printer  *i18n.Printer
	sun      SunLookup
	sunCache CacheReporter
	logger   *slog.Logger
	server   *http.Server
}

// NewServer wires up the HTTP handlers
func NewServer(cfg config.HTTPConfig, st *store.DashboardStore, dir *cities.Directory, calc *delta.Calculator, printer *i18n.Printer, logger *slog.Logger) *Server {
	s := &Server{
		store:   st,
		dir:     dir,
		delta:   calc,
		printer: printer,
		logger:  logger.With("component", "api"),
	}

	s.server = &http.Server{
		Addr:           cfg.Address,
		Handler:        s.routes(),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
	return s
}

func (s *Server) routes() http.Handler {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(s.logger),
	)

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealthCheck)
		api.GET("/cities", s.handleCities)
		api.GET("/clocks", s.handleClocks)
		api.GET("/clocks/:city", s.handleClock)
		api.GET("/sun/:city", s.handleSun)
		api.GET("/weather", s.handleAllWeather)
		api.GET("/weather/:city", s.handleWeather)
		api.GET("/delta", s.handleDelta)
	}
	return router
}

// WithSun enables on-demand sun lookups and cache reporting. Either may be nil.
func (s *Server) WithSun(lookup SunLookup, stats CacheReporter) *Server {
	s.sun = lookup
	s.sunCache = stats
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins the API server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// writeAppError maps coded errors onto HTTP statuses.
func writeAppError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apperrors.Code(err)
	switch code {
	case apperrors.CodeCityNotFound:
		status = http.StatusNotFound
	case apperrors.CodeMissingCredentials:
		status = http.StatusServiceUnavailable
	case apperrors.CodeTransport, apperrors.CodeUpstreamStatus, apperrors.CodeMalformedResponse:
		status = http.StatusBadGateway
	case "":
		code = "internal_error"
	}
	writeError(c, status, code, err.Error())
}
