package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from the environment.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DatabaseURL string

	RateLimitCapacity int
	RateLimitWindow   time.Duration

	Defaults EngineDefaults
}

// EngineDefaults fill in calculator inputs a client leaves at zero.
type EngineDefaults struct {
	PropertyTaxRate float64
	InsuranceRate   float64
	PMIRate         float64
	DTIFrontEndMax  float64
	DTIBackEndMax   float64
	LoanTermYears   int
}

// Load reads an optional .env file and returns a populated Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	return Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 60),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		Defaults: EngineDefaults{
			PropertyTaxRate: getEnvFloat("DEFAULT_PROPERTY_TAX_RATE", 1.0),
			InsuranceRate:   getEnvFloat("DEFAULT_INSURANCE_RATE", 2.0),
			PMIRate:         getEnvFloat("DEFAULT_PMI_RATE", 0.3),
			DTIFrontEndMax:  getEnvFloat("DEFAULT_DTI_FRONT_END_MAX", 36),
			DTIBackEndMax:   getEnvFloat("DEFAULT_DTI_BACK_END_MAX", 43),
			LoanTermYears:   getEnvInt("DEFAULT_LOAN_TERM_YEARS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
