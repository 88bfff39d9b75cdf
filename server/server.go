package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/slikit/component"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/sli"
)

var _ component.Component = (*Server)(nil)

// PipelineSource reports which SLI pipelines are currently running.
// *sli.Service satisfies it.
type PipelineSource interface {
	Running() []string
}

// Server is the admin HTTP server, backed by Gin.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
}

// New creates the admin server and registers its routes. The Gin mode
// follows the global zerolog level.
func New(cfg Config, slis *sli.Registry, pipelines PipelineSource, components *component.Registry, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log = log.WithComponent("server")

	engine := gin.New()
	engine.Use(recovery(log))
	engine.Use(requestLogger(log))

	s := &Server{
		engine: engine,
		config: cfg,
		log:    log,
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      engine,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		},
	}
	s.registerRoutes(slis, pipelines, components)
	return s
}

// Name implements component.Component.
func (s *Server) Name() string { return "admin-server" }

// Start binds the port and begins serving. It returns once the listener
// is bound; serving continues in a goroutine.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("admin server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("admin server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("admin server listening", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}
	s.log.Info("admin server stopped")
	return nil
}

// Health implements component.Component.
func (s *Server) Health(_ context.Context) component.Health {
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Engine exposes the Gin engine, for tests and extra route mounts.
func (s *Server) Engine() *gin.Engine { return s.engine }
