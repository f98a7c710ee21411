package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the external image store. Listings reference stored objects by
// external id; deletion by id is the operation moderation depends on.
type Storage interface {
	// Save stores an object under the given id
	Save(ctx context.Context, id string, reader io.Reader, contentType string) error

	// Get retrieves an object
	Get(ctx context.Context, id string) (io.ReadCloser, error)

	// Delete removes a single object; deleting a missing object is not an error
	Delete(ctx context.Context, id string) error

	// DeleteMany removes a batch of objects, returning the first error after
	// attempting all of them
	DeleteMany(ctx context.Context, ids []string) error

	// Exists checks whether an object is present
	Exists(ctx context.Context, id string) (bool, error)

	// GetURL returns the public URL for an object
	GetURL(ctx context.Context, id string) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3
	BasePath   string // for local storage
	BaseURL    string // public URL base
	Bucket     string // for S3-compatible stores
	Region     string // for S3
	AccessKey  string
	SecretKey  string
	Endpoint   string // for R2 or custom S3
	PublicRead bool
}

// NewStorage creates a storage instance based on configuration.
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
