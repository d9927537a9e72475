package main

import (
	"strings"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/ogrinspect"
)

// MappingData is passed to mapping.stub.
type MappingData struct {
	Model   string
	Var     string // e.g. zipcodeMapping
	Entries []MappingEntry
}

// MappingEntry pairs a model column with its layer field, or the
// geometry column with its geometry type.
type MappingEntry struct {
	Field  string
	Source string
}

// mappingLines renders the layer mapping for model. Entries follow the
// layer's field order; the geometry entry comes last.
func mappingLines(ds *ogr.DataSource, model string, options map[string]any) ([]string, error) {
	geomName, _ := options["geom_name"].(string)
	key, _ := options["layer_key"].(ogr.LayerKey)
	multi, _ := options["multi_geom"].(bool)

	m, err := ogrinspect.Mapping(ds, geomName, key, multi)
	if err != nil {
		return nil, err
	}
	layer, err := ds.Layer(key)
	if err != nil {
		return nil, err
	}

	reverse := make(map[string]string, len(m))
	for column, source := range m {
		if column != geomName {
			reverse[source] = column
		}
	}

	data := MappingData{Model: model, Var: strings.ToLower(model) + "Mapping"}
	for _, f := range layer.Fields {
		data.Entries = append(data.Entries, MappingEntry{Field: reverse[f.Name], Source: f.Name})
	}
	data.Entries = append(data.Entries, MappingEntry{Field: geomName, Source: m[geomName]})

	out, err := renderStub("mapping", data)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(out), "\n"), "\n"), nil
}
