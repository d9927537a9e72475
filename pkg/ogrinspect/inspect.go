// Package ogrinspect generates GORM model source from the schema of a
// vector data source layer.
//
// Each layer field becomes a struct field typed after its OGR type, and
// the layer geometry becomes a geofield.Geometry column whose SQL type
// names the geometry type and SRID:
//
//	lines, err := ogrinspect.Inspect(ds, "Zipcode", map[string]any{"srid": 4269})
//	fmt.Println(strings.Join(lines, "\n"))
package ogrinspect

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
)

// Inspect generates model source for a layer of ds. opts holds option
// values keyed by the names in Params (see FilterOptions).
func Inspect(ds *ogr.DataSource, modelName string, opts map[string]any) ([]string, error) {
	o, err := OptionsFromMap(opts)
	if err != nil {
		return nil, err
	}
	m, err := Build(ds, modelName, o)
	if err != nil {
		return nil, err
	}
	return Render(m)
}

// Mapping maps generated column names to the layer's field names, plus the
// geometry column to the upper-cased geometry type (e.g. "MULTIPOLYGON"),
// in the shape a feature loader expects.
func Mapping(ds *ogr.DataSource, geomName string, layerKey ogr.LayerKey, multiGeom bool) (map[string]string, error) {
	layer, err := ds.Layer(layerKey)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(layer.Fields)+1)
	for _, f := range layer.Fields {
		col := ColumnName(f.Name)
		if prev, dup := out[col]; dup {
			return nil, fmt.Errorf("ogrinspect: fields %q and %q both map to column %q", prev, f.Name, col)
		}
		out[col] = f.Name
	}

	gtype := layer.GeomType
	if multiGeom {
		gtype = gtype.ToMulti()
	}
	out[geomName] = strings.ToUpper(gtype.String())
	return out, nil
}
