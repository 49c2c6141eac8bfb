// Package config loads wardrobe settings from flags, environment variables and a .env file.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wardrobe/db"
	"wardrobe/logger"
)

// Config holds the application configuration.
type Config struct {
	Weather WeatherConfig
	Storage StorageConfig
	Logger  LoggerConfig
}

// WeatherConfig holds weather lookup configuration.
type WeatherConfig struct {
	Endpoint      string
	APIKey        string // empty disables lookups
	City          string
	Timeout       time.Duration
	RetryInterval time.Duration
}

// StorageConfig selects the persistence engine and its file.
type StorageConfig struct {
	Engine string // "text" or "sqlite"
	Path   string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // "text" or "json"
	File   string
}

// Load builds the configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("wardrobe", flag.ContinueOnError)

	weatherEndpoint := fs.String("weather-endpoint", "", "Weather API endpoint")
	weatherKey := fs.String("weather-key", "", "Weather API key")
	city := fs.String("city", "", "City used for the temperature lookup")
	weatherTimeout := fs.String("weather-timeout", "", "Weather request timeout (default: 5s)")
	retryInterval := fs.String("weather-retry-interval", "", "Minimum wait before retrying the weather lookup (default: 1s)")

	storeEngine := fs.String("store", "", "Store engine: text or sqlite (default: text)")
	dataFile := fs.String("data", "", "Path to the wardrobe data file")

	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (text, json)")
	logFile := fs.String("log-file", "", "Log file path")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", *envFile, err)
	}

	engine := strings.ToLower(getConfigValue(*storeEngine, "WARDROBE_STORE", db.EngineText))
	if engine != db.EngineText && engine != db.EngineSQLite {
		return nil, fmt.Errorf("unsupported store engine %q", engine)
	}

	cfg := &Config{
		Weather: WeatherConfig{
			Endpoint: getConfigValue(*weatherEndpoint, "WARDROBE_WEATHER_ENDPOINT", "http://api.weatherapi.com/v1/current.json"),
			APIKey:   getConfigValue(*weatherKey, "WARDROBE_WEATHER_KEY", ""),
			City:     getConfigValue(*city, "WARDROBE_CITY", "rochester-hills"),
		},
		Storage: StorageConfig{
			Engine: engine,
			Path:   getConfigValue(*dataFile, "WARDROBE_DATA_FILE", db.DefaultPath(engine)),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "WARDROBE_LOG_LEVEL", "info"),
			Format: getConfigValue(*logFormat, "WARDROBE_LOG_FORMAT", "text"),
			File:   getConfigValue(*logFile, "WARDROBE_LOG_FILE", "wardrobe.log"),
		},
	}

	if err := logger.Validate(cfg.Logger.Format); err != nil {
		return nil, err
	}

	var err error
	cfg.Weather.Timeout, err = getDurationConfigValue(*weatherTimeout, "WARDROBE_WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cfg.Weather.RetryInterval, err = getDurationConfigValue(*retryInterval, "WARDROBE_WEATHER_RETRY_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getConfigValue returns the first non-empty value from: flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", envKey, raw)
	}
	return d, nil
}
