package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rimaylabs/rimay/internal/config"
	"github.com/rimaylabs/rimay/internal/handler"
	"github.com/rimaylabs/rimay/pkg/logger"
	"go.uber.org/zap"
)

// Server is the Spanish→Kichwa translation HTTP server.
type Server struct {
	config  *config.Config
	router  *mux.Router
	manager *handler.Manager
}

// NewServer wires the router and all service components.
func NewServer(cfg *config.Config) *Server {
	if _, err := logger.Init(cfg.LogEnv); err != nil {
		log.Printf("failed to initialize zap logger, falling back to std log: %v", err)
	}

	router := mux.NewRouter()

	manager := handler.NewManager(cfg)
	manager.SetupAllRoutes(router)

	return &Server{
		config:  cfg,
		router:  router,
		manager: manager,
	}
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)

	server := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// Translations against a cold CPU backend can take a while, so the
		// write timeout is far looser than the read timeout.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Base().Info("server listening",
			zap.String("addr", addr),
			zap.String("model", s.config.ModelID),
			zap.String("engine_url", s.config.EngineURL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Base().Info("received signal, shutting down gracefully",
			zap.String("signal", sig.String()),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Base().Warn("graceful shutdown timeout, forcing stop", zap.Error(err))
			return server.Close()
		}
		logger.Base().Info("server stopped gracefully")
		return nil
	}
}

func main() {
	// Load .env for local development; environment set by the deployment
	// always wins.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded (expected in production): %v", err)
	}

	cfg := config.FromEnv()

	server := NewServer(cfg)
	defer logger.Sync()

	// Warm up the model in the background so the first request after deploy
	// does not pay the cold-start penalty.
	if cfg.EagerLoad {
		server.manager.Guard().Trigger()
		logger.Base().Info("eager model load triggered", zap.String("model", cfg.ModelID))
	}

	if err := server.Run(); err != nil {
		logger.Base().Fatal("server error", zap.Error(err))
	}
}
