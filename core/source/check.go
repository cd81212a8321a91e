package source

import (
	"context"
	"fmt"
	"io/fs"
)

// Checker is implemented by sources that can verify they are reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// Check verifies that the directory root exists.
func (d *Dir) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := fs.Stat(d.fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to stat source root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source root is not a directory")
	}
	return nil
}
