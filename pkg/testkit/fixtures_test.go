package testkit_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/geoinspect/pkg/testkit"
)

func TestWriteShapefileSidecars(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteShapefile(t, dir, testkit.Cities())
	assert.Equal(t, filepath.Join(dir, "cities.shp"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"cities.dbf", "cities.prj", "cities.shp", "cities.shx"}, names)

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, r.Fields(), 4)
}
