package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/geoinspect/pkg/storage"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "parcels", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "parcels", "a.shp"), []byte("shape"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "parcels", "a.dbf"), []byte("dbf"), 0o644))

	disk := storage.NewLocal(root)
	require.Equal(t, "local", disk.Name())
	require.True(t, disk.Exists(ctx, "parcels/a.shp"))
	require.False(t, disk.Exists(ctx, "parcels/nested"), "directories are not files")
	require.False(t, disk.Exists(ctx, "parcels/b.shp"))

	size, err := disk.Size(ctx, "parcels/a.shp")
	require.NoError(t, err)
	require.EqualValues(t, 5, size)

	files, err := disk.Files(ctx, "parcels")
	require.NoError(t, err)
	require.Equal(t, []string{"parcels/a.dbf", "parcels/a.shp"}, files)

	_, err = disk.GetStream(ctx, "parcels/missing.shp")
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "roads.geojson"), []byte(`{"type":"FeatureCollection"}`), 0o644))

	dst := filepath.Join(t.TempDir(), "copy", "roads.geojson")
	require.NoError(t, storage.Download(ctx, storage.NewLocal(root), "roads.geojson", dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, `{"type":"FeatureCollection"}`, string(data))
}

func TestOpenLocalPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.shp")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	disk, key, err := storage.Open(context.Background(), file)
	require.NoError(t, err)
	require.Equal(t, "local", disk.Name())
	require.True(t, disk.Exists(context.Background(), key))
}

func TestIsRemote(t *testing.T) {
	require.True(t, storage.IsRemote("s3://bucket/a.shp"))
	require.True(t, storage.IsRemote("S3://bucket/a.shp"))
	require.False(t, storage.IsRemote("/data/a.shp"))
}

func TestOpenS3WithoutBucket(t *testing.T) {
	_, _, err := storage.Open(context.Background(), "s3:///a.shp")
	require.Error(t, err)
}
