package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/ecdc/internal/auth/http"
	authService "github.com/allisson/ecdc/internal/auth/service"
	"github.com/allisson/ecdc/internal/config"
	"github.com/allisson/ecdc/internal/metrics"
	pseudonymHTTP "github.com/allisson/ecdc/internal/pseudonym/http"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	bridge pseudonymUseCase.IDBridge

	// stop ends background work started by SetupRouter, such as limiter cleanup.
	stop context.CancelFunc
}

// NewServer creates a new HTTP server. The router is installed by SetupRouter.
func NewServer(
	bridge pseudonymUseCase.IDBridge,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
		bridge: bridge,
		stop:   func() {},
	}
}

// SetupRouter configures the Gin router with middleware and all routes.
//
// Middleware order: recovery, request id, logging, CORS, HTTP metrics, rate
// limiting. The /v1 group additionally requires a bearer token when
// cfg.APITokenHash is set. metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	pseudonymHandler *pseudonymHTTP.PseudonymHandler,
	tokenService authService.APITokenService,
	metricsProvider *metrics.Provider,
) {
	ctx, stop := context.WithCancel(context.Background())
	s.stop()
	s.stop = stop

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	if cfg.RateLimitEnabled {
		router.Use(authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.APITokenHash != "" {
		v1.Use(authHTTP.AuthenticationMiddleware(cfg.APITokenHash, tokenService, s.logger))
	} else {
		s.logger.Warn("API_TOKEN_HASH is empty, the /v1 API is unauthenticated")
	}

	pseudonymHandler.RegisterRoutes(v1)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the ID bridge is wired. It also reports the
// pseudonymization mode so operators can spot a pass-through deployment.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.bridge == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"components": gin.H{
				"id_bridge": "error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"components": gin.H{
			"id_bridge": "ok",
		},
		"id_encryption_enabled": s.bridge.Enabled(),
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.stop()
	return s.server.Shutdown(ctx)
}
