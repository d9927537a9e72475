package ogr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shashiranjanraj/geoinspect/pkg/logger"
	"github.com/shashiranjanraj/geoinspect/pkg/storage"
)

// shapefileSidecars are fetched next to a remote .shp.
var shapefileSidecars = []string{".shp", ".shx", ".dbf", ".prj", ".cpg"}

// fetchRemote copies a remote source into a new temporary directory and
// returns the local path to open plus the directory to remove afterwards.
func fetchRemote(ctx context.Context, open func(context.Context, string) (storage.Disk, string, error), location string) (string, string, error) {
	disk, key, err := open(ctx, location)
	if err != nil {
		return "", "", err
	}

	dir, err := os.MkdirTemp("", "geoinspect-")
	if err != nil {
		return "", "", fmt.Errorf("ogr: temp dir: %w", err)
	}

	local, err := fetchFromDisk(ctx, disk, key, dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", "", err
	}
	return local, dir, nil
}

// fetchFromDisk downloads key (a file, a shapefile with its sidecars, or a
// directory prefix) into dir.
func fetchFromDisk(ctx context.Context, disk storage.Disk, key, dir string) (string, error) {
	ext := path.Ext(key)

	switch {
	case key == "" || strings.HasSuffix(key, "/") || ext == "":
		files, err := disk.Files(ctx, key)
		if err != nil {
			return "", err
		}
		n := 0
		for _, f := range files {
			if !isSidecar(path.Ext(f)) {
				continue
			}
			if err := storage.Download(ctx, disk, f, filepath.Join(dir, path.Base(f))); err != nil {
				return "", err
			}
			n++
		}
		logger.Debug("ogr: fetched remote directory", "disk", disk.Name(), "prefix", key, "files", n)
		return dir, nil

	case strings.EqualFold(ext, ".shp"):
		base := strings.TrimSuffix(key, ext)
		upper := ext == ".SHP"
		for _, side := range shapefileSidecars {
			if upper {
				side = strings.ToUpper(side)
			}
			src := base + side
			dst := filepath.Join(dir, path.Base(src))
			err := storage.Download(ctx, disk, src, dst)
			switch {
			case err == nil:
			case errors.Is(err, storage.ErrNotFound) && !strings.EqualFold(side, ".shp"):
				// optional sidecar
			default:
				return "", err
			}
		}
		return filepath.Join(dir, path.Base(key)), nil

	default:
		dst := filepath.Join(dir, path.Base(key))
		if err := storage.Download(ctx, disk, key, dst); err != nil {
			return "", err
		}
		return dst, nil
	}
}

func isSidecar(ext string) bool {
	for _, s := range shapefileSidecars {
		if strings.EqualFold(s, ext) {
			return true
		}
	}
	return false
}
