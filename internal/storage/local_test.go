package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLocalStorage(t *testing.T) {
	t.Run("creates directory if not exists", func(t *testing.T) {
		tempDir := filepath.Join(os.TempDir(), "vadtrim_test_"+randomSuffix())
		defer func() { _ = os.RemoveAll(tempDir) }()

		storage, err := NewLocalStorage(tempDir)
		if err != nil {
			t.Fatalf("NewLocalStorage() error = %v", err)
		}

		if storage.TempDir() != tempDir {
			t.Errorf("TempDir() = %v, want %v", storage.TempDir(), tempDir)
		}

		info, err := os.Stat(tempDir)
		if err != nil {
			t.Fatalf("directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("uses default directory when empty", func(t *testing.T) {
		storage, err := NewLocalStorage("")
		if err != nil {
			t.Fatalf("NewLocalStorage() error = %v", err)
		}

		expected := filepath.Join(os.TempDir(), "vadtrim")
		if storage.TempDir() != expected {
			t.Errorf("TempDir() = %v, want %v", storage.TempDir(), expected)
		}
	})
}

func TestLocalStorage_CreateTemp(t *testing.T) {
	storage := setupTestStorage(t)

	t.Run("creates file in temp dir", func(t *testing.T) {
		f, err := storage.CreateTemp(context.Background(), "trim")
		if err != nil {
			t.Fatalf("CreateTemp() error = %v", err)
		}
		defer func() { _ = os.Remove(f.Name()) }()
		defer func() { _ = f.Close() }()

		if filepath.Dir(f.Name()) != storage.TempDir() {
			t.Errorf("file %s not in %s", f.Name(), storage.TempDir())
		}
		if !strings.Contains(filepath.Base(f.Name()), "trim_") {
			t.Errorf("name %s should contain 'trim_'", f.Name())
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.CreateTemp(ctx, "trim")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLocalStorage_Publish(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	t.Run("moves file to destination", func(t *testing.T) {
		tempPath := stageFile(t, storage, "payload")
		dst := filepath.Join(t.TempDir(), "out.wav")

		location, err := storage.Publish(ctx, tempPath, dst)
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if location != dst {
			t.Errorf("location = %v, want %v", location, dst)
		}

		content, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("failed to read published file: %v", err)
		}
		if string(content) != "payload" {
			t.Errorf("got %q, want %q", string(content), "payload")
		}
		if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
			t.Errorf("staging file %s still exists", tempPath)
		}
	})

	t.Run("fails for missing destination directory", func(t *testing.T) {
		tempPath := stageFile(t, storage, "payload")
		defer func() { _ = os.Remove(tempPath) }()

		dst := filepath.Join(t.TempDir(), "missing", "out.wav")
		if _, err := storage.Publish(ctx, tempPath, dst); err == nil {
			t.Error("expected error for missing directory")
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Error("destination should not exist")
		}
	})

	t.Run("rejects S3 destinations", func(t *testing.T) {
		_, err := storage.Publish(ctx, "/some/path", "s3://bucket/key.wav")
		if !errors.Is(err, ErrS3NotConfigured) {
			t.Errorf("expected ErrS3NotConfigured, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.Publish(ctx, "/some/path", "/other/path")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLocalStorage_CleanupTemp(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	t.Run("removes files", func(t *testing.T) {
		var paths []string
		for i := 0; i < 3; i++ {
			paths = append(paths, stageFile(t, storage, "data"))
		}

		err := storage.CleanupTemp(ctx, paths)
		if err != nil {
			t.Fatalf("CleanupTemp() error = %v", err)
		}

		for _, p := range paths {
			if _, err := os.Stat(p); !os.IsNotExist(err) {
				t.Errorf("file %s still exists", p)
			}
		}
	})

	t.Run("ignores non-existent files", func(t *testing.T) {
		err := storage.CleanupTemp(ctx, []string{"/non/existent/file"})
		if err != nil {
			t.Errorf("CleanupTemp() should ignore non-existent files, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := storage.CleanupTemp(ctx, []string{"/some/path"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"s3://bucket/key.wav", "bucket", "key.wav", false},
		{"s3://bucket/dir/sub/key.wav", "bucket", "dir/sub/key.wav", false},
		{"s3://bucket", "", "", true},
		{"s3://bucket/", "", "", true},
		{"s3:///key.wav", "", "", true},
		{"/local/path.wav", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidS3URI) {
					t.Errorf("expected ErrInvalidS3URI, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseS3URI() error = %v", err)
			}
			if bucket != tt.wantBucket || key != tt.wantKey {
				t.Errorf("got (%q, %q), want (%q, %q)", bucket, key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func setupTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	tempDir := filepath.Join(os.TempDir(), "vadtrim_test_"+randomSuffix())
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	storage, err := NewLocalStorage(tempDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return storage
}

// stageFile creates a staging file holding content and returns its path.
func stageFile(t *testing.T, storage Storage, content string) string {
	t.Helper()
	f, err := storage.CreateTemp(context.Background(), "stage")
	if err != nil {
		t.Fatalf("CreateTemp() error = %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write staging file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close staging file: %v", err)
	}
	return f.Name()
}

func randomSuffix() string {
	return time.Now().Format("20060102150405.000000000")
}
