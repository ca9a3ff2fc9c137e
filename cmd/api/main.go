// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Selluna HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taibuivan/selluna/internal/api"
	"github.com/taibuivan/selluna/internal/platform/config"
	"github.com/taibuivan/selluna/internal/platform/constants"
	"github.com/taibuivan/selluna/internal/platform/middleware"
	"github.com/taibuivan/selluna/internal/platform/migration"
	pgstore "github.com/taibuivan/selluna/internal/platform/postgres"
	redisstore "github.com/taibuivan/selluna/internal/platform/redis"
	"github.com/taibuivan/selluna/internal/platform/sec"
	"github.com/taibuivan/selluna/internal/shop/analytics"
	"github.com/taibuivan/selluna/internal/shop/cart"
	"github.com/taibuivan/selluna/internal/shop/catalog"
	"github.com/taibuivan/selluna/internal/shop/coupon"
	"github.com/taibuivan/selluna/internal/shop/order"
	"github.com/taibuivan/selluna/internal/shop/payment"
	"github.com/taibuivan/selluna/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "selluna"))
	slog.SetDefault(log)

	log.Info("[Selluna] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; its absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "selluna"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application-lifetime context. Cancelled on shutdown so background
	// routines (rate-limiter cleanup) stop with the server.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	refreshRegistry := auth.NewRefreshTokenRegistry(rdb)
	authService := auth.NewService(userRepository, refreshRegistry, tokenService)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())

	productRepository := catalog.NewProductRepository(pool)
	featuredCache := catalog.NewFeaturedCache(rdb)
	catalogService := catalog.NewService(productRepository, featuredCache, log)
	catalogHandler := catalog.NewHandler(catalogService)

	cartRepository := cart.NewCartRepository(pool)
	cartService := cart.NewService(cartRepository, productRepository)
	cartHandler := cart.NewHandler(cartService)

	couponRepository := coupon.NewCouponRepository(pool)
	couponService := coupon.NewService(couponRepository)
	couponHandler := coupon.NewHandler(couponService)

	orderRepository := order.NewOrderRepository(pool)
	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	paymentService := payment.NewService(stripeProvider, productRepository, couponService, orderRepository, log)
	paymentHandler := payment.NewHandler(paymentService)

	analyticsRepository := analytics.NewAnalyticsRepository(pool)
	analyticsService := analytics.NewService(analyticsRepository)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// Route guards. Session resolution goes through the auth service so that
	// deleted accounts are rejected on their very next request.
	session := middleware.SessionGuard(tokenService, authService)
	admin := middleware.RequireAdmin

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Catalog:   catalogHandler,
		Cart:      cartHandler,
		Coupon:    couponHandler,
		Payment:   paymentHandler,
		Analytics: analyticsHandler,
	}

	server := api.NewServer(appCtx, cfg, log, session, admin, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
