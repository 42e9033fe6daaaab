package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RESTConfig struct {
	Port          string
	AllowedOrigin string
}

type APIClientConfig struct {
	ListingURL   string
	FavoritesURL string
}

type ListingConfig struct {
	PageLimit int
	Language  string
}

type CacheConfig struct {
	Backend       string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig holds the full application configuration.
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	APIClient    APIClientConfig
	Listing      ListingConfig
	Cache        CacheConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig reads configuration from environment variables, optionally
// loading a .env file first. A missing .env file is not an error; the
// environment may be provided by the deployment.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-console-service")

	cfg.Rest.Port = getEnvAsString("PORT", "5000")
	cfg.Rest.AllowedOrigin = getEnvAsString("CORS_ALLOWED_ORIGIN", "http://localhost:5173")

	cfg.APIClient.ListingURL = os.Getenv("LISTING_API_URL")
	if cfg.APIClient.ListingURL == "" {
		return nil, fmt.Errorf("LISTING_API_URL environment variable is required")
	}
	cfg.APIClient.FavoritesURL = getEnvAsString("FAVORITES_API_URL", cfg.APIClient.ListingURL)

	cfg.Listing.PageLimit = getEnvAsInt("PAGE_LIMIT", 10)
	cfg.Listing.Language = getEnvAsString("LISTING_LANGUAGE", "en")

	cfg.Cache.Backend = getEnvAsString("CACHE_BACKEND", "memory")
	if cfg.Cache.Backend == "redis" {
		cfg.Cache.RedisAddr = os.Getenv("REDIS_ADDR")
		if cfg.Cache.RedisAddr == "" {
			log.Println("WARNING: CACHE_BACKEND is redis, but REDIS_ADDR is not set. Falling back to the in-memory cache.")
			cfg.Cache.Backend = "memory"
		}
		cfg.Cache.RedisPassword = getEnvAsString("REDIS_PASSWORD", "")
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
