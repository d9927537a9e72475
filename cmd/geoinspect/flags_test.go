package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionValue(t *testing.T) {
	tests := []struct {
		in    string
		all   bool
		names []string
	}{
		{"true", true, nil},
		{"True", true, nil},
		{"a,b", false, []string{"a", "b"}},
		{"name", false, []string{"name"}},
	}
	for _, tt := range tests {
		var v selectionValue
		require.NoError(t, v.Set(tt.in))
		assert.Equal(t, tt.all, v.sel.All, tt.in)
		assert.Equal(t, tt.names, v.sel.Names, tt.in)
	}
}

func TestLayerValue(t *testing.T) {
	var v layerValue
	assert.Equal(t, "0", v.String())

	require.NoError(t, v.Set("3"))
	assert.False(t, v.key.IsName())
	assert.Equal(t, 3, v.key.Index())

	require.NoError(t, v.Set("name"))
	assert.True(t, v.key.IsName())
	assert.Equal(t, "name", v.key.Name())
}
