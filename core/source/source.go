package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"proc-loader/core/storage"
)

// ErrNotFound is returned when a source has no content under the requested name.
var ErrNotFound = errors.New("resource not found")

const (
	KindDir    = "dir"
	KindBucket = "bucket"
	KindHTTP   = "http"
)

// Source fetches raw resource content by name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// New creates the source selected by cfg.Kind. The storage client is only
// required for the bucket kind.
func New(cfg Config, store storage.Client, bucket string) (Source, error) {
	switch cfg.Kind {
	case KindDir, "":
		return NewDir(cfg.Root), nil
	case KindBucket:
		if store == nil {
			return nil, fmt.Errorf("bucket source requires a storage client")
		}
		return NewBucket(store, bucket, cfg.Root), nil
	case KindHTTP:
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		return NewHTTP(cfg.URL, timeout, cfg.MaxSizeBytes, cfg.CacheBytes)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
}

// cleanName normalizes a resource name into a slash-separated relative path
// that cannot escape the source root.
func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
