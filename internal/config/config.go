package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Email       EmailConfig
	Payments    PaymentsConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	Tracing     TracingConfig
	Static      StaticConfig
	Environment string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type MongoConfig struct {
	URI      string
	Database string
}

type EmailConfig struct {
	Enabled          bool
	APIKey           string
	From             string
	ContactRecipient string
}

type PaymentsConfig struct {
	SecretKey string
	Currency  string
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Enabled      bool
	Exporter     string
	ServiceName  string
	OTLPEndpoint string
	SampleRate   float64
}

type StaticConfig struct {
	Dir string
}

func Load() (Config, error) {
	// A local .env never overrides variables already present in the environment.
	_ = godotenv.Load()

	port := getEnvInt("PORT", 5000)
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    port,
			BaseURL: getEnv("SERVER_BASE_URL", fmt.Sprintf("http://localhost:%d", port)),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "shc"),
		},
		Email: EmailConfig{
			Enabled:          getEnvBool("EMAIL_ENABLED", true),
			APIKey:           getEnv("RESEND_API_KEY", ""),
			From:             getEnv("EMAIL_FROM", ""),
			ContactRecipient: getEnv("CONTACT_RECIPIENT", ""),
		},
		Payments: PaymentsConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:  getEnv("PAYMENT_CURRENCY", "usd"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", false),
			Exporter:     getEnv("TRACING_EXPORTER", "stdout"),
			ServiceName:  getEnv("TRACING_SERVICE_NAME", "shc-server"),
			OTLPEndpoint: getEnv("TRACING_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Static: StaticConfig{
			Dir: getEnv("STATIC_DIR", "web/dist"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	origins := getEnv("FRONTEND_ORIGIN", "")
	if origins == "" {
		cfg.CORS = CORSConfig{AllowAllOrigins: cfg.Environment != "production"}
	} else {
		cfg.CORS = CORSConfig{AllowedOrigins: splitOrigins(origins)}
	}

	if cfg.Mongo.URI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.Email.Enabled && cfg.Email.APIKey == "" {
		return Config{}, fmt.Errorf("RESEND_API_KEY is required when email is enabled")
	}
	if cfg.Email.Enabled && cfg.Email.From == "" {
		return Config{}, fmt.Errorf("EMAIL_FROM is required when email is enabled")
	}
	return cfg, nil
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
