package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mandiprices/app"
	"mandiprices/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exposes the mandi price pipeline over HTTP
type Server struct {
	router       *gin.Engine
	exporter     *app.ExportService
	xlsx         ports.TableStreamWriterPort
	defaultLimit int
	logger       *zap.Logger
}

// NewServer creates a new web server instance. defaultLimit applies when a
// request does not carry its own limit.
func NewServer(exporter *app.ExportService, xlsx ports.TableStreamWriterPort, defaultLimit int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:       gin.New(),
		exporter:     exporter,
		xlsx:         xlsx,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.GET("/mandi", s.handleMandiRecords)
	v1.GET("/mandi/export", s.handleMandiExport)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
