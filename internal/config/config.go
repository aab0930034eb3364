package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey  string `validate:"required"`
	OpenWeatherBaseURL string `validate:"required,url"`

	CitiesBaseURL  string `validate:"required,url"`
	CitiesDataset  string `validate:"required"`
	CitiesPageSize int    `validate:"min=1,max=10000"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// ProviderMaxRetries is the number of retries after a failed call (0 = none).
	ProviderMaxRetries int `validate:"min=0,max=5"`

	// Shared limit on weather API calls across all sessions.
	WeatherRateLimit float64 `validate:"gt=0"`
	WeatherRateBurst int     `validate:"min=1"`

	// Session retention.
	SessionMaxAge        time.Duration // idle lifetime (0 = unlimited)
	SessionMaxCount      int           // max live sessions (0 = unlimited)
	SessionSweepInterval time.Duration `validate:"gt=0"`

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")

	cfg.CitiesBaseURL = getenvDefault("CITIES_BASE_URL", "https://public.opendatasoft.com/api/records/1.0/search/")
	cfg.CitiesDataset = getenvDefault("CITIES_DATASET", "geonames-all-cities-with-a-population-1000")
	cfg.CitiesPageSize = getenvInt("CITIES_PAGE_SIZE", 1000)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.ProviderMaxRetries = getenvInt("PROVIDER_MAX_RETRIES", 0)

	cfg.WeatherRateLimit, err = strconv.ParseFloat(getenvDefault("WEATHER_RATE_LIMIT", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_RATE_LIMIT: %w", err)
	}
	cfg.WeatherRateBurst = getenvInt("WEATHER_RATE_BURST", 5)

	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "30m"); err != nil {
		return nil, err
	}
	cfg.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", 1000)
	if cfg.SessionSweepInterval, err = getenvDuration("SESSION_SWEEP_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("INFO: ignoring invalid %s=%q, using %d", key, v, def)
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
