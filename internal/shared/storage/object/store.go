package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Raw storage keys are private to the backend; external access goes through
// time-boxed signed URLs only.
type ObjectStore interface {
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	SignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
