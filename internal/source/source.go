package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned, wrapped with the path, when a data file does not exist.
var ErrNotFound = errors.New("not found")

// Source fetches raw data files by their site-relative path, e.g. "data/site.json".
// Implementations must not cache.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	Name() string
}

// StatusError is a non-2xx response from an HTTP origin.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s → HTTP %d", e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == 404
}

func notFound(path string) error {
	return fmt.Errorf("%s: %w", path, ErrNotFound)
}
