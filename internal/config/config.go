// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server needs at startup. Values come from
// environment variables, optionally seeded from a .env file by the caller.
type Config struct {
	// OpenAIKey authenticates itinerary generation. Required.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// WeatherKey is the Visual Crossing API key. Required. The legacy
	// variable name "Weather" is accepted when WEATHER_API_KEY is unset.
	WeatherKey     string
	WeatherBaseURL string

	// SecretKey signs session cookies. Required.
	SecretKey     string
	SessionMaxAge time.Duration
	CookieSecure  bool

	// DatabaseURL is sqlite://path, a plain file path, or a postgres:// URL.
	DatabaseURL string

	Port        string
	GinMode     string
	LogLevel    string
	CORSOrigins []string
}

// Load reads the configuration. The returned error names every missing
// required variable at once.
func Load() (Config, error) {
	cfg := Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		WeatherKey:     getEnv("WEATHER_API_KEY", os.Getenv("Weather")),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://database.db"),
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8080")),
	}

	var missing []string
	if cfg.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if cfg.WeatherKey == "" {
		missing = append(missing, "WEATHER_API_KEY")
	}
	if cfg.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	hours, err := strconv.Atoi(getEnv("SESSION_MAX_AGE_HOURS", "24"))
	if err != nil || hours <= 0 {
		return Config{}, fmt.Errorf("SESSION_MAX_AGE_HOURS must be a positive integer, got %q", os.Getenv("SESSION_MAX_AGE_HOURS"))
	}
	cfg.SessionMaxAge = time.Duration(hours) * time.Hour

	secure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE must be a boolean, got %q", os.Getenv("COOKIE_SECURE"))
	}
	cfg.CookieSecure = secure

	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
