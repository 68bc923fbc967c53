package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Sanity Sanity `validate:"required"`

	SMTP SMTP `validate:"required"`

	Store Store `validate:"required"`

	Auth Auth

	Kafka Kafka

	Cache Cache
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

// Sanity identifies the hosted CMS project. The auth token has no default:
// a missing credential must abort startup, not surface as an auth error on
// the first write.
type Sanity struct {
	ProjectID  string `validate:"required"`
	Dataset    string `validate:"required"`
	APIVersion string `validate:"required"`
	Token      string `validate:"required"`

	Timeout time.Duration `validate:"gt=0"`
}

type SMTP struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	User     string `validate:"required"`
	Password string `validate:"required"`
	From     string `validate:"required,email"`

	Timeout time.Duration `validate:"gt=0"`
}

// Store holds storefront-facing settings. BaseURL is the public site address
// embedded in receipt QR codes.
type Store struct {
	BaseURL string `validate:"required,url"`
}

// Auth is optional: with an empty secret the checkout endpoint is open.
type Auth struct {
	JWTSecret string
}

// Kafka is optional: with no brokers order events are dropped.
type Kafka struct {
	Brokers []string `validate:"omitempty,min=1,dive,hostname_port"`
	Topic   string

	BatchTimeout time.Duration `validate:"gte=0"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Sanity: Sanity{
			ProjectID:  env("SANITY_PROJECT_ID", ""),
			Dataset:    env("SANITY_DATASET", "production"),
			APIVersion: env("SANITY_API_VERSION", "2024-02-02"),
			Token:      env("SANITY_AUTH_TOKEN", ""),

			Timeout: envDuration("SANITY_TIMEOUT", 15*time.Second),
		},

		SMTP: SMTP{
			Host:     env("SMTP_HOST", "smtp.gmail.com"),
			Port:     envInt("SMTP_PORT", 587),
			User:     env("EMAIL_USER", ""),
			Password: env("EMAIL_APP_PASSWORD", ""),
			From:     env("EMAIL_FROM", ""),

			Timeout: envDuration("SMTP_TIMEOUT", 15*time.Second),
		},

		Store: Store{
			BaseURL: env("STORE_BASE_URL", "https://comforty.com"),
		},

		Auth: Auth{
			JWTSecret: env("AUTH_JWT_SECRET", ""),
		},

		Kafka: Kafka{
			Brokers:      splitNonEmpty(env("KAFKA_BROKERS", "")),
			Topic:        env("KAFKA_TOPIC", "orders"),
			BatchTimeout: envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 5*time.Minute),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if len(fallback) == 0 {
		return ""
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
