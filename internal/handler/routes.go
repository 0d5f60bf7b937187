package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rimaylabs/rimay/internal/config"
	"github.com/rimaylabs/rimay/internal/engine"
	"github.com/rimaylabs/rimay/internal/model"
	"github.com/rimaylabs/rimay/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Manager wires the service components together and owns route setup.
type Manager struct {
	cfg     *config.Config
	guard   *model.Guard
	invoker *model.Invoker
}

// NewManager creates the component graph: the backend client, the model
// guard around its loader, and the invoker with the configured generation
// constraints.
func NewManager(cfg *config.Config) *Manager {
	client := engine.NewClient(cfg.EngineURL, cfg.ModelID)

	guard := model.NewGuard(func(ctx context.Context) (model.Bundle, error) {
		bundle, err := client.Load(ctx)
		if err != nil {
			return nil, err
		}
		return bundle, nil
	})

	return &Manager{
		cfg:     cfg,
		guard:   guard,
		invoker: model.NewInvoker(cfg.MaxOutputLength, cfg.NumBeams),
	}
}

// NewManagerWithGuard creates a manager around an existing guard. Used by
// tests to inject mock loaders.
func NewManagerWithGuard(cfg *config.Config, guard *model.Guard) *Manager {
	return &Manager{
		cfg:     cfg,
		guard:   guard,
		invoker: model.NewInvoker(cfg.MaxOutputLength, cfg.NumBeams),
	}
}

// Guard returns the model guard, for eager warm-up and health wiring.
func (m *Manager) Guard() *model.Guard {
	return m.guard
}

// SetupAllRoutes registers every route with its middleware chain.
func (m *Manager) SetupAllRoutes(router *mux.Router) {
	router.Use(RecoveryMiddleware)
	router.Use(CORSMiddleware(m.cfg.CORSOrigins))
	router.Use(LoggingMiddleware)

	// Translation route: body limit, content type and rate limiting apply
	// only here.
	translateHandler := NewTranslateHandler(m.cfg, m.guard, m.invoker)
	translate := BodyLimitMiddleware(m.cfg.MaxBodyBytes)(
		ValidationMiddleware(
			RateLimitMiddleware(m.rateLimiter())(
				http.HandlerFunc(translateHandler.HandleTranslate),
			),
		),
	)
	router.Handle("/traducir", translate).Methods(http.MethodPost)
	// Preflight requests are answered by the CORS middleware; the route
	// only needs to exist so the middleware chain runs for OPTIONS.
	router.HandleFunc("/traducir", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodOptions)

	healthHandler := NewHealthHandler(m.guard)
	healthHandler.SetupHealthRoutes(router)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Ruta no encontrada"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Método no permitido"})
	})

	logger.Base().Info("all application routes registered",
		zap.Strings("cors_origins", m.cfg.CORSOrigins),
		zap.Int64("max_body_bytes", m.cfg.MaxBodyBytes),
	)
}

func (m *Manager) rateLimiter() *rate.Limiter {
	if m.cfg.RateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(m.cfg.RateLimit), m.cfg.RateBurst)
}
