package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Dir reads resources from a local directory tree.
type Dir struct {
	fsys fs.FS
}

// NewDir creates a source rooted at root.
func NewDir(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

// NewFS creates a source backed by an arbitrary file system.
func NewFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Fetch satisfies [Source].
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := cleanName(name)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	data, err := fs.ReadFile(d.fsys, clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", clean, err)
	}
	return data, nil
}
