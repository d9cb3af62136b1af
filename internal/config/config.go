package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken        string `env:"BOT_TOKEN,required,notEmpty"`
	InitialPassword string `env:"INITIAL_PASSWORD,required,notEmpty"`
	UnlockCode      string `env:"UNLOCK_CODE"`

	// Seconds of inactivity after which an authenticated session is locked.
	AutoLockSeconds int `env:"AUTOLOCK_TIMEOUT" envDefault:"300"`

	// Bot behavior. Workers caps how many users are served at once.
	Workers            int    `env:"BOT_WORKERS" envDefault:"8"`
	DropPendingUpdates bool   `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage
	StorageBackend   string `env:"STORAGE_BACKEND" envDefault:"minio"`
	StorageFolder    string `env:"STORAGE_FOLDER" envDefault:"secure_bot"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3Bucket         string `env:"S3_BUCKET" envDefault:"vaultbot"`
	S3AccessKey      string `env:"S3_ACCESS_KEY"`
	S3SecretKey      string `env:"S3_SECRET_KEY"`
	S3Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	S3UseSSL         bool   `env:"S3_USE_SSL" envDefault:"true"`
	LocalStoragePath string `env:"LOCAL_STORAGE_PATH" envDefault:"data"`

	// Activity log
	ActivityLogPath string `env:"ACTIVITY_LOG_PATH" envDefault:"log.txt"`
	DatabaseURL     string `env:"DATABASE_URL"`

	// Telegram mirror of the activity log
	LogTelegramChatID  int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTelegramTopicID int   `env:"LOG_TELEGRAM_TOPIC_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.AutoLockSeconds <= 0 {
		errs = append(errs, fmt.Errorf("AUTOLOCK_TIMEOUT must be positive, got %d", c.AutoLockSeconds))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("BOT_WORKERS must be positive, got %d", c.Workers))
	}
	if strings.Trim(c.StorageFolder, "/") == "" {
		errs = append(errs, errors.New("STORAGE_FOLDER must not be empty"))
	}

	switch c.StorageBackend {
	case BackendMinio, BackendS3:
		if c.S3Endpoint == "" {
			errs = append(errs, fmt.Errorf("S3_ENDPOINT is required for %s backend", c.StorageBackend))
		}
		if c.S3Bucket == "" {
			errs = append(errs, fmt.Errorf("S3_BUCKET is required for %s backend", c.StorageBackend))
		}
	case BackendLocal:
		if c.LocalStoragePath == "" {
			errs = append(errs, errors.New("LOCAL_STORAGE_PATH is required for local backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// AutoLockTimeout returns the inactivity window as a duration.
func (c *Config) AutoLockTimeout() time.Duration {
	return time.Duration(c.AutoLockSeconds) * time.Second
}

// SlogLevel returns the configured process log level.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
