package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/slotswap-backend/internal/auth"
	"github.com/heartmarshall/slotswap-backend/internal/config"
	authsvc "github.com/heartmarshall/slotswap-backend/internal/service/auth"
	eventsvc "github.com/heartmarshall/slotswap-backend/internal/service/event"
	swapsvc "github.com/heartmarshall/slotswap-backend/internal/service/swap"
	"github.com/heartmarshall/slotswap-backend/internal/transport/dataloader"
	"github.com/heartmarshall/slotswap-backend/internal/transport/middleware"
	"github.com/heartmarshall/slotswap-backend/internal/transport/rest"
)

// Server is the assembled HTTP surface plus the resources it owns.
type Server struct {
	Handler http.Handler
	Auth    *authsvc.Service
	Events  *eventsvc.Service
	Swaps   *swapsvc.Service
	limiter *middleware.RateLimiter
}

// Stop releases background resources held by the server.
func (s *Server) Stop() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// NewServer builds services over st and mounts them on a ServeMux.
func NewServer(cfg *config.Config, logger *slog.Logger, st *Storage) *Server {
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, st.Users, jwtMgr, cfg.Auth)
	eventService := eventsvc.NewService(logger, st.Events, st.Tx)
	swapService := swapsvc.NewService(logger, st.Events, st.Swaps, st.Tx)

	authHandler := rest.NewAuthHandler(authService, logger)
	eventHandler := rest.NewEventHandler(eventService, logger)
	swapHandler := rest.NewSwapHandler(swapService, logger)
	healthHandler := rest.NewHealthHandler(st.Pinger, st.Name, BuildVersion())

	dlRepos := &dataloader.Repos{Users: st.Users, Events: st.Events}

	var (
		limiter     *middleware.RateLimiter
		apiLimit    middleware.Middleware
		signInLimit middleware.Middleware
	)
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		apiLimit = limiter.Limit("api", cfg.RateLimit.RequestsPerMinute)
		signInLimit = limiter.Limit("auth", cfg.RateLimit.AuthPerMinute)
	}

	credentials := middleware.Chain(apiLimit, signInLimit)
	protected := middleware.Chain(
		apiLimit,
		middleware.RequireAuth,
		middleware.Middleware(dataloader.Middleware(dlRepos)),
	)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("POST /api/auth/signup", credentials(http.HandlerFunc(authHandler.Signup)))
	mux.Handle("POST /api/auth/login", credentials(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/auth/me", protected(http.HandlerFunc(authHandler.Me)))

	mux.Handle("POST /api/events", protected(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /api/events", protected(http.HandlerFunc(eventHandler.List)))
	mux.Handle("PUT /api/events/{id}", protected(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /api/events/{id}", protected(http.HandlerFunc(eventHandler.Delete)))

	mux.Handle("GET /api/swappable-slots", protected(http.HandlerFunc(swapHandler.ListSwappable)))
	mux.Handle("POST /api/swap-request", protected(http.HandlerFunc(swapHandler.CreateRequest)))
	mux.Handle("POST /api/swap-response/{id}", protected(http.HandlerFunc(swapHandler.Respond)))
	mux.Handle("GET /api/swap-requests", protected(http.HandlerFunc(swapHandler.ListRequests)))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
	)(mux)

	return &Server{
		Handler: handler,
		Auth:    authService,
		Events:  eventService,
		Swaps:   swapService,
		limiter: limiter,
	}
}
