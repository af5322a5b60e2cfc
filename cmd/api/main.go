package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sellora/marketplace-backend/internal/modules/admin"
	"github.com/sellora/marketplace-backend/internal/modules/auth"
	"github.com/sellora/marketplace-backend/internal/modules/product"
	"github.com/sellora/marketplace-backend/internal/modules/quota"
	"github.com/sellora/marketplace-backend/internal/modules/vendor"
	"github.com/sellora/marketplace-backend/internal/modules/vendorhttp"
	"github.com/sellora/marketplace-backend/internal/pkg/config"
	"github.com/sellora/marketplace-backend/internal/pkg/logger"
	"github.com/sellora/marketplace-backend/internal/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		zl.Fatal("ping database", zap.Error(err))
	}
	zl.Info("connected to database")

	portalMetrics := metrics.NewPortalMetrics()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity & Session ──────────────────────────────────
	accountRepo := auth.NewPostgresAccountRepository(db)
	vendorRepo := vendor.NewPostgresRepository(db)
	counterStore := quota.NewPostgresCounterStore(db)

	authService := auth.NewService(accountRepo, vendorRepo, counterStore, auth.Defaults{
		ProductLimit: cfg.DefaultProductLimit,
		EditLimit:    cfg.DefaultEditLimit,
		DeleteLimit:  cfg.DefaultDeleteLimit,
	}, cfg.JWTSecret, cfg.TokenTTL, zl, portalMetrics)

	requireVendor := auth.RequireVendor(authService, zl)
	requireAdmin := auth.RequireAdminKey(cfg.AdminAPIKey, zl)

	auth.NewHandler(authService).RegisterRoutes(router, requireVendor)

	// ── Quota Gate & Products ───────────────────────────────
	gate := quota.NewGate(counterStore)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo, gate, counterStore, zl, portalMetrics)
	product.NewHandler(productService).RegisterRoutes(router, requireVendor, requireAdmin)

	// ── Vendor Profile ──────────────────────────────────────
	vendorService := vendor.NewService(vendorRepo, counterStore, productRepo, zl)
	vendorhttp.NewHandler(vendorService, gate).RegisterRoutes(router, requireVendor)

	// ── Administration ──────────────────────────────────────
	auditRepo := admin.NewPostgresAuditRepository(db)
	adminService := admin.NewService(vendorRepo, counterStore, accountRepo, productRepo, auditRepo, zl)
	admin.NewHandler(adminService).RegisterRoutes(router, requireAdmin)

	// ── Operational ─────────────────────────────────────────
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	// ── Start Server ────────────────────────────────────────
	zl.Info("vendor portal API starting", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
