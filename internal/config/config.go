package config

import (
	"os"
	"strconv"
	"time"

	"gymdesk/internal/receipt"
)

type Config struct {
	Server    ServerConfig
	Directory DirectoryConfig
	Receipt   receipt.Config
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// DirectoryConfig describes how to reach the member directory service.
type DirectoryConfig struct {
	BaseURL         string
	Timeout         time.Duration
	RatePerSecond   float64
	Burst           int
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Load reads the configuration from the environment, falling back to
// development defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Directory: DirectoryConfig{
			BaseURL:         getEnv("DIRECTORY_URL", "http://localhost:5000"),
			Timeout:         getEnvDuration("DIRECTORY_TIMEOUT", 10*time.Second),
			RatePerSecond:   getEnvFloat("DIRECTORY_RATE_PER_SECOND", 20),
			Burst:           getEnvInt("DIRECTORY_BURST", 40),
			BreakerFailures: uint32(getEnvInt("DIRECTORY_BREAKER_FAILURES", 5)),
			BreakerCooldown: getEnvDuration("DIRECTORY_BREAKER_COOLDOWN", 30*time.Second),
		},
		Receipt: receipt.Config{
			OrganizationName: getEnv("GYM_NAME", "SR Fitness"),
			Address:          getEnv("GYM_ADDRESS", ""),
			Phone:            getEnv("GYM_PHONE", ""),
			CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "Rs."),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "gymdesk-dashboard"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
