// Package bootstrap provides dependency initialization for vadtrim.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/maauso/vadtrim/internal/config"
	"github.com/maauso/vadtrim/internal/job"
	"github.com/maauso/vadtrim/internal/storage"
)

// Dependencies holds all initialized dependencies for the CLI.
type Dependencies struct {
	TrimService *job.TrimService
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		TrimService: job.NewTrimService(store, logger),
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Debug("S3 storage configured",
			slog.String("region", cfg.S3Region),
			slog.String("temp_dir", cfg.TempDir),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Debug("local storage configured",
		slog.String("temp_dir", cfg.TempDir),
	)
	return localStore, nil
}
