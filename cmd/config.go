package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	RedisURL    string        `env:"REDIS_URL"    envDefault:"redis://localhost:6379/0"`
	LocationTTL time.Duration `env:"LOCATION_TTL" envDefault:"0s"`

	KafkaHost              []string `env:"KAFKA_HOST"                envDefault:"localhost:9092" envSeparator:","`
	KafkaParcelEventsTopic string   `env:"KAFKA_PARCEL_EVENTS_TOPIC" envDefault:"parcel.events"`

	OutboxSchedule  string        `env:"OUTBOX_SCHEDULE"   envDefault:"*/2 * * * * *"`
	OutboxBatchSize int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	OutboxTimeout   time.Duration `env:"OUTBOX_TIMEOUT"    envDefault:"10s"`

	TariffFile         string  `env:"TARIFF_FILE"`
	RequireKnownSender bool    `env:"REQUIRE_KNOWN_SENDER" envDefault:"false"`
	RateLimitRPS       float64 `env:"RATE_LIMIT_RPS"       envDefault:"50"`
	LogLevel           string  `env:"LOG_LEVEL"            envDefault:"info"`
}

// LoadConfig reads the optional .env files, then the environment. Variables
// already set in the environment win over the files.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN builds the libpq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown names fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
