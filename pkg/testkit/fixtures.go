// Package testkit builds vector data fixtures for tests.
//
// Fixtures are written into a test's temp directory, so tests never depend
// on checked-in binary shapefiles:
//
//	dir := t.TempDir()
//	shp := testkit.WriteShapefile(t, dir, testkit.Cities())
//	ds, err := ogr.Open(ctx, shp)
package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/geoinspect/pkg/srs"
)

// ─── Shapefiles ───────────────────────────────────────────────────────────────

// Shapefile describes a shapefile fixture.
type Shapefile struct {
	Name   string // file base name, which is also the layer name
	Type   shp.ShapeType
	Fields []shp.Field
	Shapes []shp.Shape
	Rows   [][]any // one row per shape; int, float64 or string values
	PRJ    string  // written to <Name>.prj when non-empty
}

// WriteShapefile writes f into dir and returns the .shp path.
func WriteShapefile(t testing.TB, dir string, f Shapefile) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, f.Name+".shp")
	w, err := shp.Create(path, f.Type)
	require.NoError(t, err, "testkit: create %s", path)

	if len(f.Fields) > 0 {
		require.NoError(t, w.SetFields(f.Fields), "testkit: set fields of %s", f.Name)
	}
	for i, s := range f.Shapes {
		row := w.Write(s)
		if i >= len(f.Rows) {
			continue
		}
		for col, v := range f.Rows[i] {
			require.NoError(t, w.WriteAttribute(int(row), col, v), "testkit: %s row %d col %d", f.Name, i, col)
		}
	}
	w.Close()

	// go-shp names the table "<name>dbf"; readers expect "<name>.dbf".
	if len(f.Fields) > 0 {
		base := filepath.Join(dir, f.Name)
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"), "testkit: rename dbf of %s", f.Name)
	}

	if f.PRJ != "" {
		WriteFile(t, dir, f.Name+".prj", f.PRJ)
	}
	return path
}

// StringField is a DBF character column.
func StringField(name string, width uint8) shp.Field { return shp.StringField(name, width) }

// NumberField is a DBF numeric column without decimals.
func NumberField(name string, width uint8) shp.Field { return shp.NumberField(name, width) }

// FloatField is a DBF numeric column with decimals.
func FloatField(name string, width, precision uint8) shp.Field {
	return shp.FloatField(name, width, precision)
}

// DateField is a DBF date column.
func DateField(name string) shp.Field { return shp.DateField(name) }

// LogicalField is a DBF logical column.
func LogicalField(name string) shp.Field {
	f := shp.Field{Fieldtype: 'L', Size: 1}
	copy(f.Name[:], name)
	return f
}

// Square is a closed polygon ring with its lower-left corner at x, y.
func Square(x, y, size float64) *shp.Polygon {
	ring := []shp.Point{{X: x, Y: y}, {X: x, Y: y + size}, {X: x + size, Y: y + size}, {X: x + size, Y: y}, {X: x, Y: y}}
	p := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	return &p
}

// Cities is a point layer with string, integer, real and date columns in
// WGS 84.
func Cities() Shapefile {
	return Shapefile{
		Name: "cities",
		Type: shp.POINT,
		Fields: []shp.Field{
			StringField("Name", 80),
			NumberField("Population", 9),
			FloatField("Density", 24, 15),
			DateField("Created"),
		},
		Shapes: []shp.Shape{
			&shp.Point{X: -104.609252, Y: 38.255001},
			&shp.Point{X: -95.23506, Y: 38.971823},
			&shp.Point{X: -97.521157, Y: 34.464642},
		},
		Rows: [][]any{
			{"Pueblo", 102121, 1.5, "20081230"},
			{"Lawrence", 88000, 2.25, "20081230"},
			{"Chickasha", 15000, 0.5, "20081230"},
		},
		PRJ: srs.WGS84WKT,
	}
}

// Counties is a polygon layer without a .prj, with a wide integer column,
// a logical column and a column whose name ends in an underscore.
func Counties() Shapefile {
	return Shapefile{
		Name: "counties",
		Type: shp.POLYGON,
		Fields: []shp.Field{
			StringField("NAME", 40),
			NumberField("POP_TOTAL", 12),
			LogicalField("URBAN"),
			StringField("CLASS_", 10),
		},
		Shapes: []shp.Shape{Square(0, 0, 1), Square(1, 0, 1)},
		Rows: [][]any{
			{"Adams", 4000000000, "T", "a"},
			{"Bent", 5000, "F", "b"},
		},
	}
}

// ─── GeoJSON and plain files ──────────────────────────────────────────────────

// WriteGeoJSON writes body to dir/name and returns the path.
func WriteGeoJSON(t testing.TB, dir, name, body string) string {
	t.Helper()
	return WriteFile(t, dir, name, body)
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "testkit: write %s", path)
	return path
}

// Interstates is a GeoJSON layer mixing LineString and MultiLineString
// features with inferred property types.
const Interstates = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "geometry": {"type": "LineString", "coordinates": [[-104.4780170766108, 36.66698791870694], [-104.4468522338495, 36.79925409393386]]},
     "properties": {"name": "I-25", "lanes": 4, "length": 12, "opened": "1960-06-29", "toll": false, "note": null}},
    {"type": "Feature",
     "geometry": {"type": "MultiLineString", "coordinates": [[[-100.0, 30.0], [-101.0, 31.0]], [[-102.0, 32.0], [-103.0, 33.0]]]},
     "properties": {"name": "I-35", "lanes": 6, "length": 1568.5, "opened": "1959-01-01T00:00:00", "toll": true, "note": null}}
  ]
}`
