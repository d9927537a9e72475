package ogrinspect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/validate"
)

// Params are the option names Inspect accepts.
var Params = []string{
	"geom_name",
	"layer_key",
	"srid",
	"multi_geom",
	"name_field",
	"imports",
	"decimal",
	"blank",
	"null",
	"package",
}

// Selection picks layer fields for the blank, null and decimal options:
// either every applicable field or the named ones.
type Selection struct {
	All   bool
	Names []string
}

// SelectAll selects every applicable field.
func SelectAll() Selection { return Selection{All: true} }

// SelectNames selects the named fields.
func SelectNames(names ...string) Selection { return Selection{Names: names} }

// ParseSelection reads "true" (any case) as every field and anything else
// as a comma-separated list of field names.
func ParseSelection(s string) Selection {
	if strings.EqualFold(s, "true") {
		return SelectAll()
	}
	return SelectNames(strings.Split(s, ",")...)
}

// Has reports whether the field called name is selected. Names compare
// case-insensitively.
func (s Selection) Has(name string) bool {
	if s.All {
		return true
	}
	for _, n := range s.Names {
		if strings.EqualFold(strings.TrimSpace(n), name) {
			return true
		}
	}
	return false
}

func (s Selection) String() string {
	if s.All {
		return "true"
	}
	return strings.Join(s.Names, ",")
}

// Options control model generation.
type Options struct {
	GeomName  string `json:"geom_name" validate:"required,identifier,not_keyword"`
	LayerKey  ogr.LayerKey
	SRID      *int
	MultiGeom bool
	NameField string
	Imports   bool
	Decimal   Selection
	Blank     Selection
	Null      Selection
	Package   string `json:"package" validate:"required,identifier,not_keyword"`
}

// DefaultOptions are the options of a bare invocation.
func DefaultOptions() Options {
	return Options{
		GeomName: "geom",
		LayerKey: ogr.LayerIndex(0),
		Imports:  true,
		Package:  "models",
	}
}

// Validate checks the options that end up as Go identifiers.
func (o Options) Validate() error {
	return validate.Err(validate.Struct(o))
}

// FilterOptions keeps the entries of opts named in Params and drops nil
// values.
func FilterOptions(opts map[string]any) map[string]any {
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		if v == nil || !slices.Contains(Params, k) {
			continue
		}
		out[k] = v
	}
	return out
}

// OptionsFromMap applies m over DefaultOptions. Keys outside Params and
// values of the wrong type are errors.
func OptionsFromMap(m map[string]any) (Options, error) {
	o := DefaultOptions()
	for k, v := range m {
		if err := o.set(k, v); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

func (o *Options) set(key string, v any) error {
	switch key {
	case "geom_name":
		return setString(&o.GeomName, key, v)
	case "name_field":
		return setString(&o.NameField, key, v)
	case "package":
		return setString(&o.Package, key, v)
	case "multi_geom":
		return setBool(&o.MultiGeom, key, v)
	case "imports":
		return setBool(&o.Imports, key, v)
	case "decimal":
		return setSelection(&o.Decimal, key, v)
	case "blank":
		return setSelection(&o.Blank, key, v)
	case "null":
		return setSelection(&o.Null, key, v)
	case "layer_key":
		switch x := v.(type) {
		case ogr.LayerKey:
			o.LayerKey = x
		case int:
			o.LayerKey = ogr.LayerIndex(x)
		case string:
			o.LayerKey = ogr.LayerName(x)
		default:
			return typeError(key, v)
		}
	case "srid":
		switch x := v.(type) {
		case int:
			o.SRID = &x
		case *int:
			o.SRID = x
		default:
			return typeError(key, v)
		}
	default:
		return fmt.Errorf("ogrinspect: unknown option %q", key)
	}
	return nil
}

func setString(dst *string, key string, v any) error {
	s, ok := v.(string)
	if !ok {
		return typeError(key, v)
	}
	*dst = s
	return nil
}

func setBool(dst *bool, key string, v any) error {
	b, ok := v.(bool)
	if !ok {
		return typeError(key, v)
	}
	*dst = b
	return nil
}

func setSelection(dst *Selection, key string, v any) error {
	switch x := v.(type) {
	case Selection:
		*dst = x
	case bool:
		*dst = Selection{All: x}
	case []string:
		*dst = SelectNames(x...)
	default:
		return typeError(key, v)
	}
	return nil
}

func typeError(key string, v any) error {
	return fmt.Errorf("ogrinspect: option %q: unexpected type %T", key, v)
}
