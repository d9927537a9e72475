package ogrinspect_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/ogrinspect"
	"github.com/shashiranjanraj/geoinspect/pkg/testkit"
)

func openFixture(t *testing.T, f testkit.Shapefile) *ogr.DataSource {
	t.Helper()
	ds, err := ogr.Open(context.Background(), testkit.WriteShapefile(t, t.TempDir(), f))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestInspectDefaults(t *testing.T) {
	ds := openFixture(t, testkit.Cities())

	lines, err := ogrinspect.Inspect(ds, "City", nil)
	require.NoError(t, err)
	out := strings.Join(lines, "\n")

	assert.Equal(t, "// "+ogrinspect.Header, lines[0])
	assert.Contains(t, out, `"github.com/shashiranjanraj/geoinspect/pkg/geofield"`)
	assert.Contains(t, out, `"time"`)
	testkit.AssertLinesInOrder(t, out,
		"package models",
		"type City struct {",
		"ID uint `gorm:\"primaryKey\"`",
		"Name string `gorm:\"column:name;size:80;not null\" validate:\"required\"`",
		"Population int32 `gorm:\"column:population;not null\" validate:\"required\"`",
		"Density float64 `gorm:\"column:density;not null\" validate:\"required\"`",
		"Created time.Time `gorm:\"column:created;type:date;not null\" validate:\"required\"`",
		"Geom geofield.Geometry `gorm:\"column:geom;type:geometry(Point)\"`",
		"}",
	)
	testkit.AssertNoLine(t, out, "String()")
}

func TestInspectNullBlankAndUnknownSRS(t *testing.T) {
	ds := openFixture(t, testkit.Counties())

	lines, err := ogrinspect.Inspect(ds, "County", map[string]any{
		"null":  ogrinspect.SelectAll(),
		"blank": ogrinspect.SelectNames("name"),
	})
	require.NoError(t, err)

	testkit.AssertLinesInOrder(t, strings.Join(lines, "\n"),
		"type County struct {",
		"Name *string `gorm:\"column:name;size:40\"`",
		"PopTotal *int64 `gorm:\"column:pop_total\" validate:\"required\"`",
		"Urban *bool `gorm:\"column:urban\" validate:\"required\"`",
		"ClassField *string `gorm:\"column:class_field;size:10\" validate:\"required\"`",
		"Geom geofield.Geometry `gorm:\"column:geom;type:geometry(Polygon,-1)\"`",
	)
}

func TestInspectFragmentWithOptions(t *testing.T) {
	ds := openFixture(t, testkit.Cities())

	lines, err := ogrinspect.Inspect(ds, "Cities", map[string]any{
		"geom_name":  "the_geom",
		"multi_geom": true,
		"srid":       4326,
		"imports":    false,
		"decimal":    []string{"DENSITY"},
		"name_field": "Name",
		"layer_key":  ogr.LayerName("cities"),
	})
	require.NoError(t, err)
	out := strings.Join(lines, "\n")

	assert.Equal(t, "type Cities struct {", lines[0])
	testkit.AssertNoLine(t, out, "package")
	testkit.AssertNoLine(t, out, "import")
	testkit.AssertLinesInOrder(t, out,
		"Density float64 `gorm:\"column:density;type:decimal(24,15);not null\" validate:\"required\"`",
		"TheGeom geofield.Geometry `gorm:\"column:the_geom;type:geometry(MultiPoint,4326)\"`",
		"}",
		"func (m *Cities) String() string {",
		"return m.Name",
		"}",
	)
}

func TestInspectNullableNameField(t *testing.T) {
	ds := openFixture(t, testkit.Counties())

	lines, err := ogrinspect.Inspect(ds, "County", map[string]any{
		"null":       ogrinspect.SelectNames("NAME", "POP_TOTAL"),
		"name_field": "pop_total",
		"imports":    false,
	})
	require.NoError(t, err)

	testkit.AssertLinesInOrder(t, strings.Join(lines, "\n"),
		"func (m *County) String() string {",
		"if m.PopTotal == nil {",
		`return ""`,
		"}",
		"return fmt.Sprint(*m.PopTotal)",
	)
}

func TestInspectLayerWithIDField(t *testing.T) {
	f := testkit.Counties()
	f.Fields[0] = testkit.NumberField("ID", 9)
	ds := openFixture(t, f)

	lines, err := ogrinspect.Inspect(ds, "County", nil)
	require.NoError(t, err)
	out := strings.Join(lines, "\n")

	testkit.AssertNoLine(t, out, "primaryKey")
	testkit.AssertLinesInOrder(t, out, "ID int32 `gorm:\"column:id;not null\" validate:\"required\"`")
}

func TestInspectErrors(t *testing.T) {
	ds := openFixture(t, testkit.Cities())

	tests := []struct {
		name  string
		model string
		opts  map[string]any
		want  string
	}{
		{"unknown option", "City", map[string]any{"mapping": true}, `unknown option "mapping"`},
		{"wrong type", "City", map[string]any{"srid": "4326"}, `option "srid"`},
		{"bad model name", "1City", nil, "not a valid Go identifier"},
		{"keyword geom name", "City", map[string]any{"geom_name": "type"}, "reserved Go keyword"},
		{"missing name field", "City", map[string]any{"name_field": "title"}, `name field "title"`},
		{"geometry clash", "City", map[string]any{"geom_name": "name"}, "clashes with the geometry column"},
		{"geometry named id", "City", map[string]any{"geom_name": "id"}, "clashes with the ID primary key"},
		{"geometry named ID", "City", map[string]any{"geom_name": "ID"}, "clashes with the ID primary key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ogrinspect.Inspect(ds, tt.model, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := ogrinspect.Inspect(ds, "City", map[string]any{"layer_key": 3})
	assert.ErrorIs(t, err, ogr.ErrLayerNotFound)
}

func TestInspectUnknownFieldType(t *testing.T) {
	path := testkit.WriteGeoJSON(t, t.TempDir(), "tags.geojson", `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"tags": [1, 2]}}
	]}`)
	ds, err := ogr.Open(context.Background(), path)
	require.NoError(t, err)

	_, err = ogrinspect.Inspect(ds, "Tagged", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field type OFTIntegerList in tags")
}

func TestInspectGeoJSON(t *testing.T) {
	path := testkit.WriteGeoJSON(t, t.TempDir(), "interstates.geojson", testkit.Interstates)
	ds, err := ogr.Open(context.Background(), path)
	require.NoError(t, err)

	lines, err := ogrinspect.Inspect(ds, "Interstate", map[string]any{
		"null":    ogrinspect.SelectNames("note"),
		"decimal": ogrinspect.SelectNames("length"),
	})
	require.NoError(t, err)
	out := strings.Join(lines, "\n")

	testkit.AssertNoLine(t, out, "decimal(")
	testkit.AssertLinesInOrder(t, out,
		"Name string `gorm:\"column:name;not null\" validate:\"required\"`",
		"Lanes int32 `gorm:\"column:lanes;not null\" validate:\"required\"`",
		"Length float64 `gorm:\"column:length;not null\" validate:\"required\"`",
		"Opened time.Time `gorm:\"column:opened;not null\" validate:\"required\"`",
		"Toll bool `gorm:\"column:toll;not null\" validate:\"required\"`",
		"Note *string `gorm:\"column:note\" validate:\"required\"`",
		"Geom geofield.Geometry `gorm:\"column:geom;type:geometry(MultiLineString)\"`",
	)
}

func TestMapping(t *testing.T) {
	ds := openFixture(t, testkit.Counties())

	m, err := ogrinspect.Mapping(ds, "geom", ogr.LayerIndex(0), false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"name":        "NAME",
		"pop_total":   "POP_TOTAL",
		"urban":       "URBAN",
		"class_field": "CLASS_",
		"geom":        "POLYGON",
	}, m)

	m, err = ogrinspect.Mapping(ds, "poly", ogr.LayerName("counties"), true)
	require.NoError(t, err)
	assert.Equal(t, "MULTIPOLYGON", m["poly"])

	_, err = ogrinspect.Mapping(ds, "geom", ogr.LayerName("rivers"), false)
	assert.ErrorIs(t, err, ogr.ErrLayerNotFound)
}

func TestRenderTemplate(t *testing.T) {
	ds := openFixture(t, testkit.Cities())
	opts := ogrinspect.DefaultOptions()
	opts.Package = "geo"

	m, err := ogrinspect.Build(ds, "City", opts)
	require.NoError(t, err)

	lines, err := ogrinspect.RenderTemplate(m, "model.stub", `package {{.Package}}
// {{.Name}} from layer {{.Layer}}
{{range .Fields}}{{.Name}}={{.Column}}:{{.GoType}}
{{end}}{{.Geom.Name}}={{.Geom.Type}}:{{.Geom.SRID}}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"package geo",
		"// City from layer cities",
		"Name=name:string",
		"Population=population:int32",
		"Density=density:float64",
		"Created=created:time.Time",
		"Geom=Point:4326",
	}, lines)

	_, err = ogrinspect.RenderTemplate(m, "bad.stub", "{{.Missing")
	assert.Error(t, err)
}
