// SPDX-License-Identifier: EPL-2.0

// Package config loads the service settings from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

var (
	// ErrIncompleteS3 is returned when only one of bucket and region is set.
	ErrIncompleteS3 = errors.New("config: AUDTRIM_S3_BUCKET and AUDTRIM_S3_REGION must be set together")
	// ErrInvalid wraps field validation failures.
	ErrInvalid = errors.New("config: invalid value")
	// ErrInvalidPublicURL is returned for a public URL that is neither an
	// absolute path nor an http(s) URL.
	ErrInvalidPublicURL = errors.New("config: AUDTRIM_PUBLIC_URL must be an absolute path or an http(s) URL")
)

// Config holds all configuration for the service.
type Config struct {
	// Server settings
	Port           int           `env:"AUDTRIM_PORT, default=8080" json:"port" validate:"min=1,max=65535"`
	MaxUploadBytes int64         `env:"AUDTRIM_MAX_UPLOAD_BYTES, default=104857600" json:"max_upload_bytes" validate:"min=1"`
	DecodeTimeout  time.Duration `env:"AUDTRIM_DECODE_TIMEOUT, default=2m" json:"decode_timeout" validate:"min=1s"`

	// Session settings. MaxSessions of 0 means no cap.
	SessionTTL  time.Duration `env:"AUDTRIM_SESSION_TTL, default=30m" json:"session_ttl" validate:"min=1s"`
	MaxSessions int           `env:"AUDTRIM_MAX_SESSIONS, default=256" json:"max_sessions" validate:"min=0"`

	// Artifact settings
	ArtifactDir string `env:"AUDTRIM_ARTIFACT_DIR" json:"artifact_dir"`
	PublicURL   string `env:"AUDTRIM_PUBLIC_URL, default=/artifacts" json:"public_url"`

	// Optional S3 settings
	S3Bucket           string `env:"AUDTRIM_S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"AUDTRIM_S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"AUDTRIM_S3_ENDPOINT" json:"s3_endpoint,omitempty" validate:"omitempty,url"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format" validate:"oneof=text json TEXT JSON"`
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: l,
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field ranges and that S3 is either fully configured or
// not at all.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if (c.S3Bucket == "") != (c.S3Region == "") {
		return ErrIncompleteS3
	}
	if err := checkPublicURL(c.PublicURL); err != nil {
		return err
	}
	return nil
}

func checkPublicURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicURL, err)
	}
	switch u.Scheme {
	case "":
		if u.Host != "" || !strings.HasPrefix(u.Path, "/") {
			return fmt.Errorf("%w: %q", ErrInvalidPublicURL, raw)
		}
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidPublicURL, raw)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPublicURL, raw)
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	keyID := ""
	if c.AWSAccessKeyID != "" {
		keyID = "****"
	}

	return fmt.Sprintf(
		"Config{Port: %d, MaxUploadBytes: %d, DecodeTimeout: %s, SessionTTL: %s, MaxSessions: %d, ArtifactDir: %s, PublicURL: %s, S3Bucket: %s, S3Region: %s, S3Endpoint: %s, AWSAccessKeyID: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.MaxUploadBytes,
		c.DecodeTimeout,
		c.SessionTTL,
		c.MaxSessions,
		c.ArtifactDir,
		c.PublicURL,
		c.S3Bucket,
		c.S3Region,
		c.S3Endpoint,
		keyID,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
