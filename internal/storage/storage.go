package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the blob-store capability: store a payload under a namespaced
// key and get back an externally resolvable reference, delete by key. The
// backend is selected once at startup, never branched per call.
type Storage interface {
	// Save stores a payload at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a payload from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the payload at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a payload exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the public reference for the path
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for S3
	Region    string // for S3
	AccessKey string // for S3
	SecretKey string // for S3
	Endpoint  string // for S3-compatible providers (R2, Wasabi, MinIO)
}

// NewStorage creates a storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
