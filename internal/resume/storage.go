package resume

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore persists uploaded resume documents and returns an opaque URL
// for later retrieval.
type BlobStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// LocalStore writes resumes to a directory on disk. The default for
// development.
type LocalStore struct {
	Dir string
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

// Save writes the document under the store directory.
func (s *LocalStore) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	path := filepath.Join(s.Dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}
	return "/resumes/" + key, nil
}

// S3Store writes resumes to an S3-compatible bucket (AWS S3 or Cloudflare R2).
type S3Store struct {
	client *s3.Client
	bucket string
}

// S3Config holds the settings for an S3-compatible bucket.
type S3Config struct {
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the AWS endpoint for S3-compatible providers.
	Endpoint string
}

// NewS3Store creates an S3-backed blob store.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads the document to the bucket.
func (s *S3Store) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume to bucket: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
