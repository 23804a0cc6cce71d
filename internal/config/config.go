package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config is populated from the environment at startup.
type Config struct {
	HTTPPort string `validate:"required"`

	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBName     string `validate:"required"`
	DBSSLMode  string

	RabbitMQHost     string `validate:"required"`
	RabbitMQPort     string `validate:"required"`
	RabbitMQUser     string `validate:"required"`
	RabbitMQPassword string `validate:"required"`

	JWTSecret      string `validate:"required"`
	MigrationsPath string `validate:"required"`
}

var validate = validator.New()

// Load reads the configuration from environment variables, applying
// development defaults where the variable is unset.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "pehlahath"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		RabbitMQHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me-in-production"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "file://migrations"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DatabaseURL builds the postgres connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// RabbitMQURL builds the AMQP connection string.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RabbitMQUser, c.RabbitMQPassword, c.RabbitMQHost, c.RabbitMQPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
