package main

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/ogrinspect"
)

// selectionValue is a flag taking "true" or a comma-separated list of
// layer field names.
type selectionValue struct {
	sel ogrinspect.Selection
}

var _ pflag.Value = (*selectionValue)(nil)

func (v *selectionValue) String() string { return v.sel.String() }

func (v *selectionValue) Set(s string) error {
	v.sel = ogrinspect.ParseSelection(s)
	return nil
}

func (v *selectionValue) Type() string { return "fields" }

// layerValue is a flag taking a layer index or a layer name.
type layerValue struct {
	key ogr.LayerKey
}

var _ pflag.Value = (*layerValue)(nil)

func (v *layerValue) String() string { return v.key.String() }

func (v *layerValue) Set(s string) error {
	v.key = ogr.ParseLayerKey(strings.TrimSpace(s))
	return nil
}

func (v *layerValue) Type() string { return "index|name" }
