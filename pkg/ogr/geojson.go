package ogr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// geojsonDriver reads a GeoJSON FeatureCollection (or a single Feature) as
// one layer. The schema is inferred from the feature properties.
type geojsonDriver struct{}

func (geojsonDriver) Name() string { return "GeoJSON" }

func (geojsonDriver) Identify(path string, info fs.FileInfo) bool {
	if info.IsDir() {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return true
	}
	return false
}

// geojsonDoc holds the members orb does not expose.
type geojsonDoc struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	CRS        *geojsonCRS     `json:"crs"`
	Properties json.RawMessage `json:"properties"`
	Features   []struct {
		Properties json.RawMessage `json:"properties"`
	} `json:"features"`
}

type geojsonCRS struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
		Code int    `json:"code"`
	} `json:"properties"`
}

func (geojsonDriver) Open(ctx context.Context, path string) ([]*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc geojsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("geojson: %s: %w", filepath.Base(path), err)
	}

	var (
		geoms []orb.Geometry
		props []json.RawMessage
	)
	switch doc.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %s: %w", filepath.Base(path), err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
		for _, f := range doc.Features {
			props = append(props, f.Properties)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %s: %w", filepath.Base(path), err)
		}
		geoms = append(geoms, f.Geometry)
		props = append(props, doc.Properties)
	default:
		return nil, fmt.Errorf("geojson: %s: unsupported type %q", filepath.Base(path), doc.Type)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var schema schemaBuilder
	for i, raw := range props {
		if err := scanProperties(raw, schema.observe); err != nil {
			return nil, fmt.Errorf("geojson: %s: feature %d: %w", filepath.Base(path), i, err)
		}
	}

	name := doc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	l := &Layer{
		Name:         name,
		GeomType:     commonGeomType(geoms),
		Fields:       schema.fields(),
		SRS:          FromEPSG(4326),
		FeatureCount: len(geoms),
	}
	if code := doc.CRS.epsg(); code != 0 {
		l.SRS = FromEPSG(code)
	}
	return []*Layer{l}, nil
}

var epsgName = regexp.MustCompile(`(?i)EPSG:+(\d+)$`)

// epsg decodes the legacy 2008 crs member. 0 means absent or unknown.
func (c *geojsonCRS) epsg() int {
	if c == nil {
		return 0
	}
	switch strings.ToLower(c.Type) {
	case "epsg":
		return c.Properties.Code
	case "name":
		n := strings.TrimSpace(c.Properties.Name)
		if strings.HasSuffix(strings.ToUpper(n), "CRS84") {
			return 4326
		}
		if m := epsgName.FindStringSubmatch(n); m != nil {
			code, _ := strconv.Atoi(m[1])
			return code
		}
	}
	return 0
}

// commonGeomType is the single geometry type of all features, promoted to
// its Multi* form when single and multi parts mix.
func commonGeomType(geoms []orb.Geometry) GeomType {
	var types []GeomType
	for _, g := range geoms {
		if g == nil {
			continue
		}
		t := ParseGeomType(g.GeoJSONType())
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}

	switch len(types) {
	case 1:
		return types[0]
	case 2:
		a, b := types[0], types[1]
		switch {
		case !a.IsMulti() && a.ToMulti() == b:
			return b
		case !b.IsMulti() && b.ToMulti() == a:
			return a
		}
	}
	return GeomUnknown
}

// ─── Property schema inference ────────────────────────────────────────────────

type fieldStats struct {
	name  string
	typ   FieldType
	typed bool
}

// schemaBuilder collects fields in first-seen order and merges their types
// across features.
type schemaBuilder struct {
	order []*fieldStats
	index map[string]*fieldStats
}

func (s *schemaBuilder) observe(key string, v any) {
	if s.index == nil {
		s.index = map[string]*fieldStats{}
	}
	f, ok := s.index[key]
	if !ok {
		f = &fieldStats{name: key}
		s.index[key] = f
		s.order = append(s.order, f)
	}

	t, ok := classify(v)
	if !ok {
		return
	}
	if !f.typed {
		f.typ, f.typed = t, true
		return
	}
	f.typ = mergeFieldTypes(f.typ, t)
}

func (s *schemaBuilder) fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, f := range s.order {
		t := f.typ
		if !f.typed {
			t = FieldString
		}
		out = append(out, Field{Name: f.name, Type: t})
	}
	return out
}

// scanProperties walks a properties object in document order.
func scanProperties(raw json.RawMessage, fn func(key string, v any)) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("properties is not an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		fn(key, v)
	}
	_, err = dec.Token()
	return err
}

var (
	dateLayouts     = []string{"2006-01-02", "2006/01/02"}
	timeLayouts     = []string{"15:04:05", "15:04"}
	dateTimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
		"2006-01-02T15:04:05.000",
	}
)

// classify returns the field type of one property value; ok is false for
// null.
func classify(v any) (FieldType, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case bool:
		return FieldBoolean, true
	case json.Number:
		return numberType(x), true
	case string:
		return stringType(x), true
	case []any:
		return listType(x), true
	default:
		return FieldString, true
	}
}

func numberType(n json.Number) FieldType {
	i, err := n.Int64()
	if err != nil || strings.ContainsAny(n.String(), ".eE") {
		return FieldReal
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return FieldInteger64
	}
	return FieldInteger
}

func stringType(s string) FieldType {
	switch {
	case parses(s, dateLayouts):
		return FieldDate
	case parses(s, dateTimeLayouts):
		return FieldDateTime
	case parses(s, timeLayouts):
		return FieldTime
	}
	return FieldString
}

func parses(s string, layouts []string) bool {
	for _, l := range layouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}

func listType(items []any) FieldType {
	elem, typed := FieldString, false
	for _, it := range items {
		t, ok := classify(it)
		if !ok {
			continue
		}
		if !typed {
			elem, typed = t, true
			continue
		}
		elem = mergeFieldTypes(elem, t)
	}
	switch elem {
	case FieldInteger:
		return FieldIntegerList
	case FieldInteger64:
		return FieldInteger64List
	case FieldReal:
		return FieldRealList
	}
	return FieldStringList
}

// mergeFieldTypes widens a and b to a type that can hold both.
func mergeFieldTypes(a, b FieldType) FieldType {
	if a == b {
		return a
	}
	pair := func(x, y FieldType) bool { return a == x && b == y || a == y && b == x }
	switch {
	case pair(FieldInteger, FieldInteger64):
		return FieldInteger64
	case pair(FieldInteger, FieldReal), pair(FieldInteger64, FieldReal):
		return FieldReal
	case pair(FieldDate, FieldDateTime):
		return FieldDateTime
	case pair(FieldIntegerList, FieldInteger64List):
		return FieldInteger64List
	case pair(FieldIntegerList, FieldRealList), pair(FieldInteger64List, FieldRealList):
		return FieldRealList
	}
	return FieldString
}
