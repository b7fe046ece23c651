// Package server exposes the dashboard engines over a JSON API. All
// reads recompute from the in-memory bundle; the only mutable state is
// the per-session change-request log.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

// Server hosts the dashboard API for one loaded bundle.
type Server struct {
	echo     *echo.Echo
	log      zerolog.Logger
	cfg      config.Config
	bundle   *model.Bundle
	sessions *sessionManager
}

// New wires the routes. The bundle is treated as immutable after load.
func New(log zerolog.Logger, cfg config.Config, bundle *model.Bundle, sessionSecret string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		log:      log,
		cfg:      cfg,
		bundle:   bundle,
		sessions: newSessionManager(sessionSecret),
	}

	e.GET("/healthz", s.Health)

	api := e.Group("/api")
	api.GET("/dashboard", s.Dashboard)
	api.GET("/variance", s.Variance)
	api.POST("/forecast", s.Forecast)
	api.GET("/scorecard", s.Scorecard)
	api.GET("/equity/:department", s.Equity)
	api.GET("/initiatives", s.Initiatives)
	api.GET("/datasets", s.Datasets)
	api.POST("/change-requests", s.SubmitChangeRequest)
	api.GET("/change-requests", s.ListChangeRequests)
	api.PATCH("/change-requests/:id", s.ReviewChangeRequest)

	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("serving dashboard API")
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets tests drive the server without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Health reports liveness and which dataset slots fell back to samples.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":       "ok",
		"run_id":       s.bundle.Report.RunID,
		"files_loaded": s.bundle.Report.FilesLoaded(),
	})
}
