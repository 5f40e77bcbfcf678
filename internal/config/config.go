// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port int `env:"PORT, default=8080" json:"port"`

	// Cloudinary settings. Cloud name and upload preset are required for
	// publishing; the server may boot without them, but merge requests will
	// fail at the publish stage until both are set.
	CloudinaryCloudName    string `env:"CLOUDINARY_CLOUD_NAME" json:"cloudinary_cloud_name"`
	CloudinaryUploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET" json:"-"` // Masked in JSON
	CloudinaryFolder       string `env:"CLOUDINARY_FOLDER, default=reels_with_music" json:"cloudinary_folder"`

	// Processing settings
	TempDir    string `env:"TEMP_DIR, default=/tmp/reelmerge" json:"temp_dir"`
	FFmpegPath string `env:"FFMPEG_PATH" json:"ffmpeg_path,omitempty"`

	// Transition policy for two-clip merges. Both are deployment-tunable.
	FadeDurationSec    float64 `env:"FADE_DURATION_SEC, default=0.7" json:"fade_duration_sec"`
	FadeOffsetFloorSec float64 `env:"FADE_OFFSET_FLOOR_SEC, default=0.3" json:"fade_offset_floor_sec"`

	// Optional S3 settings. When both bucket and region are set, uploads go
	// to S3 instead of Cloudinary.
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// CloudinaryConfigured returns true if the unsigned upload settings are present.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryUploadPreset != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, CloudinaryCloudName: %s, CloudinaryFolder: %s, TempDir: %s, FadeDurationSec: %.2f, FadeOffsetFloorSec: %.2f, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.CloudinaryCloudName,
		c.CloudinaryFolder,
		c.TempDir,
		c.FadeDurationSec,
		c.FadeOffsetFloorSec,
		c.S3Bucket,
		c.S3Region,
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
