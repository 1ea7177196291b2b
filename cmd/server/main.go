package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marosa/locator-service/config"
	_ "github.com/marosa/locator-service/docs"
	"github.com/marosa/locator-service/internal/brochure"
	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/directory"
	"github.com/marosa/locator-service/internal/handlers"
	"github.com/marosa/locator-service/internal/hours"
	"github.com/marosa/locator-service/internal/middleware"
	"github.com/marosa/locator-service/internal/places"
	"github.com/marosa/locator-service/internal/search"
	"github.com/marosa/locator-service/internal/storage"
	"github.com/marosa/locator-service/internal/telemetry"
)

// @title Locator Service API
// @version 1.0
// @description Store locator API for cities, stores, combined search, opening status, and brochures.
// @BasePath /
// @securityDefinitions.apikey AdminKeyAuth
// @in header
// @name X-Admin-API-Key
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting locator service")

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	ctx := context.Background()
	if err := database.Connect(ctx, dbURL, database.PoolConfig{
		MaxConns:        cfg.Database.MaxConnections,
		MinConns:        cfg.Database.MinConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	repo := database.NewStoreRepository(database.Pool())
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	telemetryCleanup := telemetry.MustInit(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: telemetry.DefaultServiceName,
	})
	defer telemetryCleanup(ctx)

	evaluator, err := hours.NewEvaluator(hours.Config{
		Timezone:          cfg.Hours.Timezone,
		ClosingSoonWindow: time.Duration(cfg.Hours.ClosingSoonMinutes) * time.Minute,
		LookaheadDays:     cfg.Hours.LookaheadDays,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create opening-status evaluator")
	}

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open storage")
	}
	brochureSvc := brochure.NewService(store, cfg.Brochure.BaseURL, *logger)

	cache := directory.NewCache(storeLoader(repo), directory.Config{
		TTL:               cfg.Directory.TTL,
		LoadTimeout:       cfg.Directory.LoadTimeout,
		WarmupConcurrency: int64(cfg.Directory.WarmupConcurrency),
	})
	if err := cache.Refresh(ctx, ""); err != nil {
		logger.Warn().Err(err).Msg("Initial directory load failed, serving on demand")
	}

	refresher := directory.NewRefresher(cache, logger, cfg.Directory.RefreshInterval)
	go refresher.Start(ctx)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	storesHandler := handlers.NewStoresHandler(cache, repo, evaluator)
	searchHandler := handlers.NewSearchHandler(cache, search.Options{MaxResults: cfg.Search.MaxResults}, storesHandler)
	brochureHandler := handlers.NewBrochureHandler(brochureSvc, cfg.Brochure.DefaultSlug)
	adminHandler := handlers.NewAdminHandler(cache)

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware())
	{
		api.GET("/cities", handlers.ListCities)
		api.GET("/search", searchHandler.Search)
		api.GET("/brochure", brochureHandler.GetBrochure)

		stores := api.Group("/stores")
		{
			stores.GET("", storesHandler.ListStores)
			stores.GET("/areas", storesHandler.StoresInArea)
			stores.GET("/:placeId", storesHandler.GetStore)
			stores.GET("/:placeId/status", storesHandler.GetStoreStatus)
		}
	}

	internal := router.Group("/internal")
	internal.Use(middleware.AdminAuthMiddleware())
	{
		internal.GET("/health", handlers.HealthCheck)

		admin := internal.Group("/admin")
		{
			admin.POST("/refresh", adminHandler.RefreshDirectory)
			admin.POST("/prune", adminHandler.PruneStaleStores)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// storeLoader adapts the store repository into a directory cache loader.
// An empty city key loads the full directory.
func storeLoader(repo *database.StoreRepository) directory.Loader {
	return func(ctx context.Context, city string) ([]places.Place, error) {
		records, err := repo.ListStores(ctx)
		if err != nil {
			return nil, err
		}
		pool := make([]places.Place, 0, len(records))
		for _, rec := range records {
			if city != "" && rec.City != city {
				continue
			}
			pool = append(pool, rec.Place())
		}
		return pool, nil
	}
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "locator-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
