// Package bootstrap provides dependency initialization for the merge API.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/reelforge/merge-api/internal/config"
	"github.com/reelforge/merge-api/internal/fetch"
	"github.com/reelforge/merge-api/internal/media"
	"github.com/reelforge/merge-api/internal/pipeline"
	"github.com/reelforge/merge-api/internal/publish"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	MergeService *pipeline.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	publisher, err := initPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.NewClient()
	transcoder := media.NewFFmpeg(cfg.FFmpegPath)

	svc := pipeline.NewService(
		fetcher,
		transcoder,
		publisher,
		cfg.TempDir,
		logger,
		pipeline.WithTransitionPolicy(pipeline.TransitionPolicy{
			FadeDurationSec: cfg.FadeDurationSec,
			OffsetFloorSec:  cfg.FadeOffsetFloorSec,
		}),
	)

	return &Dependencies{
		MergeService: svc,
	}, nil
}

// initPublisher creates the publish backend selected by configuration.
func initPublisher(cfg *config.Config, logger *slog.Logger) (pipeline.Publisher, error) {
	if cfg.S3Enabled() {
		s3Pub, err := publish.NewS3Publisher(publish.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Folder:          cfg.CloudinaryFolder,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 publisher: %w", err)
		}
		logger.Info("S3 publishing configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Pub, nil
	}

	if !cfg.CloudinaryConfigured() {
		// Booting unconfigured is allowed; merges fail at the publish
		// stage until the upload settings are set.
		logger.Warn("cloudinary upload settings missing, merge requests will fail at publish")
	}

	logger.Info("cloudinary publishing configured",
		slog.String("cloud_name", cfg.CloudinaryCloudName),
		slog.String("folder", cfg.CloudinaryFolder),
	)
	return publish.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, cfg.CloudinaryFolder), nil
}
