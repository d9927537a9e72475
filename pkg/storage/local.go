package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// localDisk is the local-filesystem driver.
type localDisk struct {
	root string
}

// NewLocal returns a disk rooted at root.
func NewLocal(root string) Disk {
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localDisk{root: root}
}

func (d *localDisk) Name() string { return "local" }

func (d *localDisk) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(p))
}

func (d *localDisk) GetStream(_ context.Context, p string) (io.ReadCloser, error) {
	f, err := os.Open(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: open %s: %w", p, err)
	}
	return f, nil
}

func (d *localDisk) Exists(_ context.Context, p string) bool {
	info, err := os.Stat(d.abs(p))
	return err == nil && !info.IsDir()
}

func (d *localDisk) Size(_ context.Context, p string) (int64, error) {
	info, err := os.Stat(d.abs(p))
	if err != nil {
		return 0, fmt.Errorf("storage/local: stat %s: %w", p, err)
	}
	return info.Size(), nil
}

func (d *localDisk) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if err != nil {
		return nil, fmt.Errorf("storage/local: list %s: %w", directory, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(directory, e.Name()))
		}
	}
	return out, nil
}
