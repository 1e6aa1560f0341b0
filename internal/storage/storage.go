// Package storage stages output files and publishes them to their final
// destination. It defines the Storage interface (port) and implementations
// for local disk and S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Storage stages files while they are being written and publishes them once
// complete, so a destination never holds a partially written file.
type Storage interface {
	// CreateTemp creates a new staging file. The name parameter is used as a
	// hint for the filename.
	CreateTemp(ctx context.Context, name string) (*os.File, error)

	// Publish moves a finished staging file to dst and returns the final
	// location. dst is a filesystem path or an s3://bucket/key URI.
	Publish(ctx context.Context, tempPath, dst string) (location string, err error)

	// CleanupTemp removes the specified staging files.
	// It continues cleanup even if some files fail to delete.
	CleanupTemp(ctx context.Context, paths []string) error
}

const s3Scheme = "s3://"

// ErrInvalidS3URI is returned for s3:// destinations without a bucket or key.
var ErrInvalidS3URI = errors.New("storage: invalid S3 URI")

// IsS3URI reports whether dst addresses an S3 object.
func IsS3URI(dst string) bool {
	return strings.HasPrefix(dst, s3Scheme)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URI, uri)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URI, uri)
	}
	return bucket, key, nil
}
