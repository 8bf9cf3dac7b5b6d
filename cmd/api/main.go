package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/config"
	"github.com/influencehub/marketplace-api/internal/modules/analytics"
	"github.com/influencehub/marketplace-api/internal/modules/billing"
	"github.com/influencehub/marketplace-api/internal/modules/campaign"
	"github.com/influencehub/marketplace-api/internal/modules/chat"
	"github.com/influencehub/marketplace-api/internal/modules/insight"
	"github.com/influencehub/marketplace-api/internal/modules/inventory"
	"github.com/influencehub/marketplace-api/internal/modules/profile"
	"github.com/influencehub/marketplace-api/internal/modules/user"
	"github.com/influencehub/marketplace-api/internal/platform/database"
	"github.com/influencehub/marketplace-api/internal/platform/logger"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		zlog.Fatal("database_connect_failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()
	zlog.Info("database_connected", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, dialect); err != nil {
			zlog.Fatal("database_migrate_failed", zap.Error(err))
		}
		zlog.Info("database_migrated")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware(zlog))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// ── Accounts ────────────────────────────────────────────
	userService := user.NewService(user.NewPostgresRepository(db), zlog.Named("user"))
	user.NewHandler(userService, zlog).RegisterRoutes(router)

	// ── Campaigns & Conversations ───────────────────────────
	campaignService := campaign.NewService(campaign.NewPostgresRepository(db), userService, zlog.Named("campaign"))
	campaign.NewHandler(campaignService, zlog).RegisterRoutes(router)

	chatService := chat.NewService(chat.NewPostgresRepository(db), campaignService, userService, zlog.Named("chat"))
	chat.NewHandler(chatService, zlog).RegisterRoutes(router)

	profileService := profile.NewService(profile.NewPostgresRepository(db), userService, zlog.Named("profile"))
	profile.NewHandler(profileService, zlog).RegisterRoutes(router)

	// ── Inventory & Billing ─────────────────────────────────
	inventoryService := inventory.NewService(inventory.NewPostgresRepository(db, dialect), userService, zlog.Named("inventory"))
	inventory.NewHandler(inventoryService, zlog).RegisterRoutes(router)

	billingRepo := billing.NewPostgresRepository(db, dialect, cfg.BillingMaxTxAttempts, zlog.Named("billing"))
	billingService := billing.NewService(billingRepo, billing.NewMetrics(registry), zlog.Named("billing"))
	billing.NewHandler(billingService, zlog).RegisterRoutes(router)

	// ── Analytics & Insights ────────────────────────────────
	insightOpts := []insight.Option{insight.WithMetrics(insight.NewMetrics(registry))}
	if cfg.LLM.Enabled() {
		insightOpts = append(insightOpts, insight.WithLLM(insight.NewLLMGenerator(cfg.LLM, nil)))
		zlog.Info("insight_llm_enabled", zap.String("model", cfg.LLM.Model))
	}
	if cfg.RedisURL != "" {
		cache, err := insight.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Warn("insight_cache_disabled", zap.Error(err))
		} else {
			defer cache.Close()
			insightOpts = append(insightOpts, insight.WithCache(cache, cfg.InsightCacheTTL))
		}
	}
	insightService := insight.NewService(zlog.Named("insight"), insightOpts...)

	analyticsService := analytics.NewService(
		analytics.NewPostgresRepository(db), inventoryService, insightService, cfg.LowStockThreshold)
	analytics.NewHandler(analyticsService, zlog).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info("http_listen", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("http_server_error", zap.Error(err))
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	zlog.Info("shutdown_signal", zap.String("signal", s.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http_shutdown_error", zap.Error(err))
	}
	zlog.Info("service_stopped")
}
