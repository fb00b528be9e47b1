package storage

import (
	"context"
)

// Uploader stores image blobs with an external object store and returns a
// publicly addressable URL for the stored object.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
