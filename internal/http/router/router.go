package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jedyapps/dealdesk/internal/auth"
	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/http/handler"
	"github.com/jedyapps/dealdesk/internal/http/middleware"
	"github.com/jedyapps/dealdesk/internal/service"
	"go.uber.org/zap"
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	authHandler    *handler.AuthHandler
	dealHandler    *handler.DealHandler
	dealService    *service.DealService
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	dealHandler *handler.DealHandler,
	dealService *service.DealService,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		authHandler:    authHandler,
		dealHandler:    dealHandler,
		dealService:    dealService,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.FrontendURL, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	r.Route("/api", func(r chi.Router) {
		// Health check (liveness probe; also tells the frontend whether it
		// is looking at sample data)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":     "ok",
				"sampleData": rt.dealService.SampleMode(),
			})
		})

		// Login flow (public: the session does not exist yet)
		r.Get("/auth/google", rt.authHandler.GoogleLogin)
		r.Get("/auth/google/callback", rt.authHandler.GoogleCallback)
		r.Post("/auth/logout", rt.authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/auth/me", rt.authHandler.Me)

			r.Route("/deals", func(r chi.Router) {
				r.Get("/", rt.dealHandler.List)
				r.Get("/board", rt.dealHandler.Board)
				r.Post("/{dealID}/remove-tag", rt.dealHandler.RemoveTag)
				r.Patch("/{dealID}/summary", rt.dealHandler.UpdateSummary)
			})
		})
	})

	return r
}
