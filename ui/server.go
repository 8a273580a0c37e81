package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kuesioner/app"
	"kuesioner/internal"
	"kuesioner/internal/api"
	"kuesioner/ports"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the services the HTTP server exposes
type Dependencies struct {
	Tally       *app.TallyService
	Submissions *app.SubmissionService
	Renderer    ports.ChartRenderer
	Hub         *api.SSEHub
	Logger      *internal.Logger
}

// Server serves the tally API
type Server struct {
	router *gin.Engine
	deps   Dependencies
	logger *internal.Logger
}

// NewServer creates the server and registers every route. mode is a gin mode.
func NewServer(deps Dependencies, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}

	s := &Server{
		router: gin.New(),
		deps:   deps,
		logger: deps.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	tally := NewTallyHandler(s.deps.Tally, s.deps.Renderer, s.logger)
	submit := NewSubmitHandler(s.deps.Submissions, s.logger)

	s.router.GET("/report", tally.HandleReport())

	routes := s.router.Group("/api")
	{
		routes.GET("/chart-data", tally.HandleChartData())
		routes.GET("/summary", tally.HandleSummary())
		routes.GET("/chart.png", tally.HandleChartPNG())
		routes.POST("/aggregate", tally.HandleAggregate())
		routes.POST("/submit", submit.HandleSubmit())
		if s.deps.Hub != nil {
			routes.GET("/events", s.deps.Hub.HandleSSE)
		}
	}
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting questionnaire API on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	// SSE streams never go idle on their own
	if s.deps.Hub != nil {
		s.deps.Hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
