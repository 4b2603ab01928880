package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP struct {
		Port int
	}
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	SMTP struct {
		Host     string
		Port     int
		User     string
		Password string
		From     string
	}
	Storage struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}
	Security struct {
		JWTSecret          string
		TokenTTL           time.Duration
		VerificationExpiry time.Duration
		RecoveryExpiry     time.Duration
		SignedURLExpiry    time.Duration
		LoginRatePerSecond float64
	}
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return def
}

// LoadConfig reads the environment into a Config. A .env file in the working
// directory is honored when present; real environment variables win over it.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.HTTP.Port = getEnvInt("HTTP_PORT", 3001)

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "kowapp_user")
	cfg.Database.Password = getEnv("DB_PASSWORD", "kowapp_pass")
	cfg.Database.Name = getEnv("DB_NAME", "kowapp_db")

	cfg.RabbitMQ.Host = getEnv("RABBITMQ_HOST", "localhost")
	cfg.RabbitMQ.Port = getEnvInt("RABBITMQ_PORT", 5672)
	cfg.RabbitMQ.User = getEnv("RABBITMQ_USER", "guest")
	cfg.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")

	cfg.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTP.Port = getEnvInt("SMTP_PORT", 587)
	cfg.SMTP.User = getEnv("SMTP_USER", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.User)

	cfg.Storage.Endpoint = getEnv("STORAGE_ENDPOINT", "localhost:9000")
	cfg.Storage.AccessKey = getEnv("STORAGE_ACCESS_KEY", "")
	cfg.Storage.SecretKey = getEnv("STORAGE_SECRET_KEY", "")
	cfg.Storage.Bucket = getEnv("STORAGE_BUCKET", "kowapp-profile-images")
	cfg.Storage.UseSSL = getEnvBool("STORAGE_USE_SSL", false)

	cfg.Security.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.Security.TokenTTL = getEnvDuration("TOKEN_TTL", time.Hour)
	cfg.Security.VerificationExpiry = getEnvDuration("VERIFICATION_CODE_EXPIRY", 3*time.Minute)
	cfg.Security.RecoveryExpiry = getEnvDuration("RECOVERY_CODE_EXPIRY", 2*time.Minute)
	cfg.Security.SignedURLExpiry = getEnvDuration("SIGNED_URL_EXPIRY", 15*time.Minute)
	cfg.Security.LoginRatePerSecond = getEnvFloat("LOGIN_RATE_PER_SECOND", 1)

	if cfg.Security.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}
