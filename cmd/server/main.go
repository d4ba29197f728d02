package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecosmart-shop/catalog-api/internal/config"
	"github.com/ecosmart-shop/catalog-api/internal/handlers"
	"github.com/ecosmart-shop/catalog-api/internal/middleware"
	"github.com/ecosmart-shop/catalog-api/internal/pricing"
	"github.com/ecosmart-shop/catalog-api/internal/rewards"
	"github.com/ecosmart-shop/catalog-api/internal/service"
	"github.com/ecosmart-shop/catalog-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	// prices go out as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	log.Info("starting ecosmart catalog api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"catalog_source", cfg.Catalog.Source,
		"cache", cfg.Cache.Backend,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()
	productRepo, cleanup, err := buildRepository(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	products, err := productRepo.GetAll(ctx)
	if err != nil {
		log.Error("failed to read catalog", "error", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "products", len(products))

	var estimator pricing.Estimator
	if cfg.Pricing.Enabled {
		estimator = pricing.NewMockEstimator(cfg.Pricing.Seed)
	}
	ledger := rewards.NewDemoLedger()

	// Initialize services
	productService := service.NewProductService(productRepo, estimator, cfg.Pricing.Workers, log)
	adminService := service.NewAdminService(productRepo, ledger, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.Catalog.Source, log)
	productHandler := handlers.NewProductHandler(productService, log)
	recommendHandler := handlers.NewRecommendHandler(productService, log)
	rewardsHandler := handlers.NewRewardsHandler(ledger, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/product/{productId}/estimate", productHandler.EstimateProduct)
		r.Get("/category", productHandler.ListCategories)

		r.Post("/recommend", recommendHandler.Recommend)
		r.Get("/rewards/{userId}", rewardsHandler.GetSummary)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Get("/analytics", adminHandler.Analytics)
			r.Post("/catalog/invalidate", adminHandler.InvalidateCatalog)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("server failed to start", "error", err)
		cleanup()
		os.Exit(1)
	case <-quit:
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped gracefully")
}
