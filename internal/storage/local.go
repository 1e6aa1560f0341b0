package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrS3NotConfigured is returned when an S3 destination is used
// without S3 configuration.
var ErrS3NotConfigured = errors.New("S3 storage is not configured")

// LocalStorage implements the Storage interface using local disk.
// It stages files in a configurable directory and does not support
// S3 destinations unless wrapped with S3Storage.
type LocalStorage struct {
	tempDir string
}

// NewLocalStorage creates a new LocalStorage instance.
// The tempDir parameter specifies where staging files are stored.
// If tempDir is empty, os.TempDir()/vadtrim is used.
// The directory is created if it doesn't exist.
func NewLocalStorage(tempDir string) (*LocalStorage, error) {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "vadtrim")
	}

	if err := os.MkdirAll(tempDir, 0750); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	return &LocalStorage{tempDir: tempDir}, nil
}

// TempDir returns the staging directory path.
func (s *LocalStorage) TempDir() string {
	return s.tempDir
}

// CreateTemp creates a staging file named after name with a unique suffix.
// The caller owns the returned file and must close it.
func (s *LocalStorage) CreateTemp(ctx context.Context, name string) (*os.File, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	f, err := os.CreateTemp(s.tempDir, name+"_*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return f, nil
}

// Publish moves tempPath to the local path dst. When a rename is not
// possible, for example across filesystems, the file is copied instead.
func (s *LocalStorage) Publish(ctx context.Context, tempPath, dst string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if IsS3URI(dst) {
		return "", ErrS3NotConfigured
	}

	if err := os.Rename(tempPath, dst); err == nil {
		return dst, nil
	}

	if err := copyFile(tempPath, dst); err != nil {
		return "", fmt.Errorf("publish %s: %w", dst, err)
	}
	_ = os.Remove(tempPath)
	return dst, nil
}

// CleanupTemp removes the specified staging files.
// It continues cleanup even if some files fail to delete,
// returning the first error encountered.
func (s *LocalStorage) CleanupTemp(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove temp file %s: %w", p, err)
			}
		}
	}
	return firstErr
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 - src is a staging file we created
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst) // #nosec G304 - dst is provided by the operator
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}
