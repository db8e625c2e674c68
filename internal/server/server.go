// Package server exposes the coach over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/coach"
	"github.com/abhisek/interviz/internal/logger"
	"github.com/abhisek/interviz/internal/profile"
)

// Coach is the subset of coach.Service the server needs.
type Coach interface {
	Categories() []string
	RequestQuestion(ctx context.Context, userID, category string) (*coach.QuestionResult, error)
	SubmitAnswer(ctx context.Context, userID, questionText, answer string) (*coach.SubmitResult, error)
	Progress(userID string) profile.Progress
}

// ModelStatus reports on the embedding model for the health endpoint.
type ModelStatus interface {
	ModelID() string
	Loaded() bool
}

// Config holds HTTP server settings.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	CookieMaxAge    time.Duration `mapstructure:"cookie-max-age"`
	CookieSecure    bool          `mapstructure:"cookie-secure"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	// RequestTimeout bounds each request's context. Zero disables it.
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		CookieMaxAge:    30 * 24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
	}
}

// Validate checks the server settings.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("server addr is required")
	}
	if c.CookieMaxAge <= 0 {
		return fmt.Errorf("server cookie-max-age must be positive, got %s", c.CookieMaxAge)
	}
	return nil
}

// Server is the HTTP front end.
type Server struct {
	coach  Coach
	model  ModelStatus
	config Config
	log    *zap.Logger
	engine *gin.Engine
}

// New builds a Server and its routes. model may be nil.
func New(c Coach, model ModelStatus, cfg Config, log *zap.Logger) *Server {
	s := &Server{
		coach:  c,
		model:  model,
		config: cfg,
		log:    logger.OrNop(log),
	}

	r := gin.New()
	r.Use(s.recovery(), s.requestLogger())
	if cfg.RequestTimeout > 0 {
		r.Use(requestTimeout(cfg.RequestTimeout))
	}
	s.RegisterRoutes(r)
	s.engine = r
	return s
}

// RegisterRoutes wires the practice endpoints onto r.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.POST("/get-question", s.GetQuestion)
	r.POST("/submit-answer", s.SubmitAnswer)
	r.GET("/progress", s.Progress)
	r.GET("/categories", s.Categories)
	r.GET("/health", s.Health)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
