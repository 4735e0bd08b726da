package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

// ObjectStore holds the static backup copies of the tournament resources.
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Download(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
