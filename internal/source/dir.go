package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Dir reads data files from a local directory, the site root.
type Dir struct {
	root string
}

func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Name() string {
	return "dir:" + d.root
}

func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Rooting the path before cleaning keeps reads inside root.
	clean := path.Clean("/" + p)
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(p)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return data, nil
}
