package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the configuration for S3 storage.
type S3Config struct {
	Region          string
	Endpoint        string // Optional: for custom S3-compatible endpoints
	AccessKeyID     string // Optional: AWS access key ID
	SecretAccessKey string // Optional: AWS secret access key
}

// S3Storage wraps LocalStorage and adds s3:// destinations.
// It uses LocalStorage for staging and for local destinations.
type S3Storage struct {
	*LocalStorage
	client *s3.Client
	region string
}

// NewS3Storage creates a new S3Storage instance.
// The tempDir parameter specifies where staging files are stored.
// The cfg parameter contains S3 configuration.
func NewS3Storage(tempDir string, cfg S3Config) (*S3Storage, error) {
	local, err := NewLocalStorage(tempDir)
	if err != nil {
		return nil, err
	}

	var configOpts []func(*config.LoadOptions) error
	configOpts = append(configOpts, config.WithRegion(cfg.Region))

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Storage{
		LocalStorage: local,
		client:       s3.NewFromConfig(awsCfg, clientOpts...),
		region:       cfg.Region,
	}, nil
}

// Publish uploads tempPath when dst is an s3:// URI and otherwise falls back
// to LocalStorage.Publish. The staging file is left for CleanupTemp.
func (s *S3Storage) Publish(ctx context.Context, tempPath, dst string) (string, error) {
	if !IsS3URI(dst) {
		return s.LocalStorage.Publish(ctx, tempPath, dst)
	}

	bucket, key, err := ParseS3URI(dst)
	if err != nil {
		return "", err
	}

	f, err := os.Open(tempPath) // #nosec G304 - tempPath is a staging file we created
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("audio/wav"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}

	return dst, nil
}
