package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get when nothing is stored under the path.
var ErrNotExist = errors.New("storage: object does not exist")

// Storage holds uploaded blobs under relative, slash-separated paths.
type Storage interface {
	// Save writes content to path, replacing anything already there.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Missing blobs are not an error.
	Delete(ctx context.Context, path string) error
}
