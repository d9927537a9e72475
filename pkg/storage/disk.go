// Package storage gives read access to data sources that live on a local
// filesystem or in S3-compatible object storage.
//
// Two drivers are available:
//   - local: a directory tree on the local filesystem
//   - s3:    an S3 bucket (AWS S3, MinIO, R2, Spaces)
//
// Open resolves a location string to a disk and a key:
//
//	disk, key, err := storage.Open(ctx, "s3://gis-data/census/tracts.shp")
//	err = storage.Download(ctx, disk, key, "/tmp/x/tracts.shp")
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a key does not exist on a disk.
var ErrNotFound = errors.New("storage: not found")

// Disk is the read-only driver interface.
type Disk interface {
	// Name identifies the driver, "local" or "s3".
	Name() string

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Size returns the byte size of the file.
	Size(ctx context.Context, path string) (int64, error)

	// Files lists non-recursive file paths directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)
}

// IsRemote reports whether location names object storage rather than a
// local path.
func IsRemote(location string) bool {
	return strings.HasPrefix(strings.ToLower(location), "s3://")
}

// Open returns the disk holding location and the key of location on it.
// Local paths map to a disk rooted at "/" (or the volume root).
func Open(ctx context.Context, location string) (Disk, string, error) {
	if !IsRemote(location) {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, "", fmt.Errorf("storage: resolve %s: %w", location, err)
		}
		root := filepath.VolumeName(abs) + string(filepath.Separator)
		rel, _ := filepath.Rel(root, abs)
		return NewLocal(root), filepath.ToSlash(rel), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("storage: parse %s: %w", location, err)
	}
	if u.Host == "" {
		return nil, "", fmt.Errorf("storage: %s has no bucket", location)
	}
	disk, err := NewS3(ctx, u.Host)
	if err != nil {
		return nil, "", err
	}
	return disk, strings.TrimPrefix(u.Path, "/"), nil
}

// Download copies key from disk into the local file dst.
func Download(ctx context.Context, disk Disk, key, dst string) error {
	rc, err := disk.GetStream(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return fmt.Errorf("storage: copy %s: %w", key, err)
	}
	return f.Close()
}
