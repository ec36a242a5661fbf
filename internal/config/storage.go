package config

import (
	"fmt"
	"os"
)

// Storage backends for uploaded resumes.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// StorageConfig holds configuration for the resume blob store.
type StorageConfig struct {
	Backend   string // "local" or "s3"
	UploadDir string // local backend only

	// S3-compatible backend settings (AWS S3 or Cloudflare R2).
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string
}

// NewStorageConfig creates storage configuration from environment variables.
// RESUME_STORAGE selects the backend ("local" by default). The local backend
// reads UPLOAD_DIR (default: ./data/uploads); the s3 backend reads S3_BUCKET,
// S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY, S3_REGION and the optional
// S3_ENDPOINT override for S3-compatible providers.
func NewStorageConfig() (*StorageConfig, error) {
	backend := os.Getenv("RESUME_STORAGE")
	if backend == "" {
		backend = StorageLocal
	}

	config := &StorageConfig{
		Backend:   backend,
		UploadDir: os.Getenv("UPLOAD_DIR"),
		Bucket:    os.Getenv("S3_BUCKET"),
		AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Region:    os.Getenv("S3_REGION"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
	}
	if config.UploadDir == "" {
		config.UploadDir = "./data/uploads"
	}
	if config.Region == "" {
		config.Region = "auto"
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *StorageConfig) normalize() error {
	switch c.Backend {
	case StorageLocal:
		return nil
	case StorageS3:
		if c.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when RESUME_STORAGE=s3")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required when RESUME_STORAGE=s3")
		}
		return nil
	default:
		return fmt.Errorf("unknown RESUME_STORAGE backend: %q", c.Backend)
	}
}
