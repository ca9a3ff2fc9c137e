// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/selluna/internal/platform/config"
	"github.com/taibuivan/selluna/internal/platform/constants"
	"github.com/taibuivan/selluna/internal/platform/middleware"
	"github.com/taibuivan/selluna/internal/shop/analytics"
	"github.com/taibuivan/selluna/internal/shop/cart"
	"github.com/taibuivan/selluna/internal/shop/catalog"
	"github.com/taibuivan/selluna/internal/shop/coupon"
	"github.com/taibuivan/selluna/internal/shop/payment"
	"github.com/taibuivan/selluna/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (signup, login, refresh, logout).
	Auth *auth.Handler

	// Catalog handles product browsing and administration.
	Catalog *catalog.Handler

	// Cart handles the per-user shopping cart.
	Cart *cart.Handler

	// Coupon handles per-user discount coupons.
	Coupon *coupon.Handler

	// Payment handles checkout sessions and their completion.
	Payment *payment.Handler

	// Analytics serves the admin sales dashboard.
	Analytics *analytics.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Session enforcement is not global: the session and admin guards are handed
// to each domain's Routes so that public storefront endpoints stay anonymous
// while account, cart, and admin surfaces stay protected.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	session func(http.Handler) http.Handler,
	admin func(http.Handler) http.Handler,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(session))
		api.Mount("/products", h.Catalog.Routes(session, admin))
		api.Mount("/cart", h.Cart.Routes(session))
		api.Mount("/coupons", h.Coupon.Routes(session))
		api.Mount("/payments", h.Payment.Routes(session))
		api.Mount("/analytics", h.Analytics.Routes(session, admin))
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
