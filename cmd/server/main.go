// Package main is the entry point for the AirEase flight search service.
//
//	@title						AirEase Flight Search API
//	@version					1.0.0
//	@description				Flight search, multi-dimensional scoring, and side-by-side comparison service backing the AirEase web front end.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/stevenyi0526-glitch/AirEaseWeb-sub002/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/stevenyi0526-glitch/AirEaseWeb-sub002/docs"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/aiparse"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/flightapi"
	airhttp "github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/http"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/http/middleware"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/prefs"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/redisad"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/config"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/logger"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/scoring"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "airease",
	})

	// Fail fast on a misconfigured persona weight table
	config.MustValidatePersonas()

	logger.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("backend", cfg.Backend.BaseURL).
		Msg("Configuration loaded")

	// Backend flight API client
	api := flightapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// Result cache (disabled when no Redis address is configured)
	var cache usecase.Cache
	var redisCache *redisad.Cache
	if cfg.Redis.Addr != "" {
		redisCache = redisad.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		cache = redisCache
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache enabled")
	}

	// Natural-language query parser (disabled without an API key)
	var parser usecase.QueryParser
	if cfg.AI.APIKey != "" {
		parser = aiparse.NewParser(aiparse.Config{
			APIKey:        cfg.AI.APIKey,
			BaseURL:       cfg.AI.BaseURL,
			Model:         cfg.AI.Model,
			RatePerSecond: cfg.AI.RatePerSecond,
		}, api)
		logger.Info().Str("model", cfg.AI.Model).Msg("Natural-language search enabled")
	}

	// Preference tracking sink (no-op without a URL)
	tracker := prefs.NewTracker(cfg.Prefs.URL, cfg.Prefs.BufferSize, cfg.Prefs.Timeout)

	// Scoring engine and use cases
	norm := scoring.NewNormalizer(scoring.DefaultConfig())
	searchUC := usecase.NewSearchUseCase(api, parser, cache, norm, &usecase.SearchConfig{
		Timeout: cfg.Backend.SearchTimeout,
	})
	compareUC := usecase.NewCompareUseCase(api, cache, norm)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, logger.Global.Logger)

	handler := airhttp.NewHandler(searchUC, compareUC, tracker)
	airhttp.RegisterRoutes(e, handler)

	// Operational endpoints
	registry := observability.InitRegistry()
	e.GET("/metrics", echo.WrapHandler(observability.MetricsHandler(registry)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, tracker, redisCache)
}

// gracefulShutdown stops the server on interrupt, then drains the preference
// tracker and closes the cache connection.
func gracefulShutdown(e *echo.Echo, tracker *prefs.Tracker, cache *redisad.Cache) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	tracker.Close()

	if cache != nil {
		if err := cache.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing cache connection")
		}
	}

	logger.Info().Msg("Server stopped")
}
