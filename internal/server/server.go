package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/lotwise/dealerd/internal/analytics"
	"github.com/lotwise/dealerd/internal/api/ws"
	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/config"
	"github.com/lotwise/dealerd/internal/notify"
	"github.com/lotwise/dealerd/internal/sales"
	"github.com/lotwise/dealerd/internal/server/middleware"
	"github.com/lotwise/dealerd/internal/store/postgres"
	redisstore "github.com/lotwise/dealerd/internal/store/redis"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	gate       *authgate.Gate
	auth       *auth.Service
	saleSvc    *sales.Processor
	analytics  *analytics.Engine
	wsHub      *ws.Hub // nil when Redis is not configured
	cfg        *config.Config
}

// New creates a Server with all routes wired. redisClient, notifier, and
// google may each be nil when the corresponding integration is not
// configured; the affected routes are then skipped or degrade to no-ops.
func New(
	ctx context.Context,
	cfg *config.Config,
	store *postgres.Store,
	redisClient *redisstore.Client,
	gate *authgate.Gate,
	authSvc *auth.Service,
	saleSvc *sales.Processor,
	analyticsSvc *analytics.Engine,
	notifier notify.LeadNotifier,
	google *auth.OAuthProvider,
) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	if notifier == nil {
		notifier = notify.NopNotifier{}
	}

	var hub *ws.Hub
	if redisClient != nil {
		hub = ws.NewHub(gate, redisClient)
	}

	s := &Server{
		router:    router,
		store:     store,
		gate:      gate,
		auth:      authSvc,
		saleSvc:   saleSvc,
		analytics: analyticsSvc,
		wsHub:     hub,
		cfg:       cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Unauthenticated group for auth endpoints and the public lead form.
	// 2. Authenticated group for all other endpoints.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 5, 10))

			publicConfig := huma.DefaultConfig("Dealerd Public API", "1.0.0")
			publicConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			publicAPI := humachi.New(r, publicConfig)
			registerPublicRoutes(publicAPI, store, authSvc, notifier, google)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RateLimit(ctx, 100, 200))

			apiConfig := huma.DefaultConfig("Dealerd API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			registerAPIRoutes(api, store, gate, saleSvc, analyticsSvc)
		})
	})

	// WebSocket routes, only when Redis backs the sale feed.
	if hub != nil {
		router.Route("/ws", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			registerWSRoutes(r, hub)
		})
	}

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
