package ogrinspect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/ogrinspect"
)

func TestParseSelection(t *testing.T) {
	assert.Equal(t, ogrinspect.SelectAll(), ogrinspect.ParseSelection("true"))
	assert.Equal(t, ogrinspect.SelectAll(), ogrinspect.ParseSelection("TRUE"))
	assert.Equal(t, ogrinspect.SelectNames("a", "b"), ogrinspect.ParseSelection("a,b"))
	assert.Equal(t, ogrinspect.SelectNames("name"), ogrinspect.ParseSelection("name"))

	s := ogrinspect.ParseSelection("Name, Pop")
	assert.True(t, s.Has("name"))
	assert.True(t, s.Has("POP"))
	assert.False(t, s.Has("density"))
	assert.Equal(t, "Name, Pop", s.String())
}

func TestFilterOptions(t *testing.T) {
	srid := 4269
	in := map[string]any{
		"geom_name":  "geom",
		"layer_key":  ogr.LayerIndex(0),
		"srid":       nil,
		"name_field": nil,
		"multi_geom": false,
		"imports":    true,
		"decimal":    ogrinspect.Selection{},
		"blank":      ogrinspect.SelectAll(),
		"null":       ogrinspect.SelectNames("a"),
		"mapping":    true,
		"verbose":    true,
		"package":    "models",
	}
	out := ogrinspect.FilterOptions(in)

	assert.NotContains(t, out, "srid")
	assert.NotContains(t, out, "name_field")
	assert.NotContains(t, out, "mapping")
	assert.NotContains(t, out, "verbose")
	assert.Len(t, out, 8)
	for k := range out {
		assert.Contains(t, ogrinspect.Params, k)
	}

	in["srid"] = srid
	assert.Equal(t, srid, ogrinspect.FilterOptions(in)["srid"])
}

func TestOptionsFromMap(t *testing.T) {
	o, err := ogrinspect.OptionsFromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, ogrinspect.DefaultOptions(), o)
	assert.Equal(t, "geom", o.GeomName)
	assert.True(t, o.Imports)
	assert.Nil(t, o.SRID)

	o, err = ogrinspect.OptionsFromMap(map[string]any{
		"layer_key": "cities",
		"srid":      3857,
		"blank":     true,
		"null":      []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.True(t, o.LayerKey.IsName())
	assert.Equal(t, "cities", o.LayerKey.Name())
	require.NotNil(t, o.SRID)
	assert.Equal(t, 3857, *o.SRID)
	assert.True(t, o.Blank.All)
	assert.Equal(t, []string{"a", "b"}, o.Null.Names)

	o, err = ogrinspect.OptionsFromMap(map[string]any{"layer_key": 2})
	require.NoError(t, err)
	assert.False(t, o.LayerKey.IsName())
	assert.Equal(t, 2, o.LayerKey.Index())

	_, err = ogrinspect.OptionsFromMap(map[string]any{"imports": "no"})
	assert.Error(t, err)
}

func TestOptionsValidate(t *testing.T) {
	o := ogrinspect.DefaultOptions()
	assert.NoError(t, o.Validate())

	o.Package = "my-models"
	assert.Error(t, o.Validate())

	o = ogrinspect.DefaultOptions()
	o.GeomName = ""
	assert.Error(t, o.Validate())
}
