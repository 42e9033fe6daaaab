package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/redis/go-redis/v9"

	"listing-console-service/internal/adapters/catalog_api"
	"listing-console-service/internal/adapters/favorites_api"
	"listing-console-service/internal/adapters/listing_api"
	logger_adapter "listing-console-service/internal/adapters/logger"
	"listing-console-service/internal/adapters/memcache"
	"listing-console-service/internal/adapters/rediscache"
	"listing-console-service/internal/adapters/rest"
	"listing-console-service/internal/configs"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
	"listing-console-service/internal/core/port/usecases_port"
	"listing-console-service/internal/core/usecase"
	"listing-console-service/pkg/fluentlogger"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
	redisClient  *redis.Client
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// 1. Logger stack: colored stdout always, Fluent Bit when enabled.
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// 2. External collaborators.
	listingClient := listing_api.NewClient(appConfig.APIClient.ListingURL)
	catalogClient := catalog_api.NewClient(appConfig.APIClient.ListingURL)
	favoritesClient := favorites_api.NewClient(appConfig.APIClient.FavoritesURL)

	// 3. Query cache backend. The cache is owned per session; the Redis
	// backend shares one connection and isolates sessions by key prefix.
	var redisClient *redis.Client
	if appConfig.Cache.Backend == "redis" {
		redisClient, err = rediscache.NewRedisClient(appConfig.Cache.RedisAddr, appConfig.Cache.RedisPassword)
		if err != nil {
			appLogger.Error("Failed to connect to redis", err, nil)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		appLogger.Info("Redis query cache initialized", port.Fields{"addr": appConfig.Cache.RedisAddr})
	}

	language := domain.ParseLanguage(appConfig.Listing.Language)
	pageLimit := appConfig.Listing.PageLimit

	sessionFactory := func(sessionID string) usecases_port.ListingSessionUseCase {
		var cache port.QueryCachePort
		if redisClient != nil {
			cache = rediscache.NewQueryCache(redisClient, sessionID)
		} else {
			cache = memcache.NewQueryCache()
		}
		return usecase.NewListingSession(listingClient, catalogClient, favoritesClient, cache, language, pageLimit)
	}

	appLogger.Info("Listing session factory initialized", port.Fields{
		"cache_backend": appConfig.Cache.Backend,
		"page_limit":    pageLimit,
		"language":      string(language),
	})

	// 4. HTTP surface.
	sessionManager := rest.NewSessionManager(sessionFactory)
	apiHandlers := rest.NewListingHandlers(sessionManager)
	apiServer := rest.NewServer(appConfig.Rest.Port, appConfig.Rest.AllowedOrigin, apiHandlers, baseLogger)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		logger:       appLogger,
		fluentClient: fluentClient,
		redisClient:  redisClient,
	}, nil
}

// Run starts the application components and manages their lifecycle.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.redisClient != nil {
			if err := a.redisClient.Close(); err != nil {
				a.logger.Error("Error closing redis client", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Logged to stdout because fluent may already be unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
