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

	"motofibra/catalog/internal/api"
	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/config"
	"motofibra/catalog/internal/db"
	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/metrics"
	"motofibra/catalog/internal/middleware"
	"motofibra/catalog/internal/routes"
	"motofibra/catalog/internal/services"
	"motofibra/catalog/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Catalog starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.Database.Driver,
		"merge_mode", cfg.DetailsMergeMode,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	policy, err := services.ParseMergePolicy(cfg.DetailsMergeMode)
	if err != nil {
		logging.Fatal("Invalid merge mode", "error", err.Error())
	}

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logging.Fatal("Failed to open database", "error", err.Error())
	}
	defer db.Close(gormDB)

	readDB, err := db.NewReadDB(gormDB, cfg.Database.Driver)
	if err != nil {
		logging.Fatal("Failed to open read database", "error", err.Error())
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	var (
		cache  common.CacheInterface
		pinger api.Pinger
	)
	if cfg.Cache.RedisAddr != "" {
		redisCache := common.NewRedisCacheService(
			common.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB),
			"catalog:",
		)
		cache, pinger = redisCache, redisCache
		logging.Info("Using Redis part-view cache", "addr", cfg.Cache.RedisAddr)
	} else {
		cache = common.NewCacheService(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		logging.Info("Using in-memory part-view cache", "ttl", cfg.Cache.TTL.String())
	}
	defer cache.Close()

	deps, err := api.InitDependencies(api.DependencyOptions{
		DB:          gormDB,
		ReadDB:      readDB,
		Cache:       cache,
		CacheTTL:    cfg.Cache.TTL,
		MergePolicy: policy,
		Metrics:     metricsReg,
	})
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}

	router := routes.RegisterRoutes(deps, routes.RouterOptions{
		UpSince:     time.Now(),
		CORSOrigins: cfg.CORSAllowedOrigins,
		RateLimiter: middleware.NewRateLimiter(cfg.Limits.RPS, cfg.Limits.Burst, metricsReg, "127.0.0.1", "::1"),
		CachePinger: pinger,
	})

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers.InitWorkers(ctx, deps.Services.Reports, metricsReg, cfg.StatsInterval)

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server stopped unexpectedly", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
}
