package ogrinspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/geoinspect/pkg/metrics"
	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/validate"
)

// UnknownSRID is written for layers whose reference system is unknown.
const UnknownSRID = -1

// DefaultSRID is the SRID a geometry column gets when none is written.
const DefaultSRID = 4326

// Model is a generated model before rendering. Custom templates receive it.
type Model struct {
	Name       string // Go type name
	Package    string
	Imports    bool
	Source     string // data source as given
	Layer      string
	Fields     []ModelField
	Geom       GeomField
	PrimaryKey bool   // emit an ID primary key; false when the layer has one
	NameField  string // Go field returned by String(), or ""
	NameType   string // Go type of NameField
}

// ModelField is one attribute column.
type ModelField struct {
	Name      string // Go identifier
	Column    string
	Source    string // layer field name
	OGRType   ogr.FieldType
	GoType    string // e.g. "float64", "*time.Time"
	GormTag   string
	Validate  string
	Null      bool
	Blank     bool
	Decimal   bool
	Width     int
	Precision int
}

// Tag is the rendered struct tag body.
func (f ModelField) Tag() string {
	tag := fmt.Sprintf("gorm:%q", f.GormTag)
	if f.Validate != "" {
		tag += fmt.Sprintf(" validate:%q", f.Validate)
	}
	return tag
}

// GeomField is the geometry column.
type GeomField struct {
	Name     string // Go identifier
	Column   string
	OGRType  ogr.GeomType
	Type     string // e.g. "MultiPolygon"
	SRID     int    // UnknownSRID when the layer has none
	SRIDText string // "" when the default applies
	GormTag  string
}

// Tag is the rendered struct tag body.
func (g GeomField) Tag() string { return fmt.Sprintf("gorm:%q", g.GormTag) }

// Build derives the model for the selected layer of ds.
func Build(ds *ogr.DataSource, modelName string, opts Options) (*Model, error) {
	if !validate.IsIdentifier(modelName) {
		return nil, fmt.Errorf("ogrinspect: model name %q is not a valid Go identifier", modelName)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("ogrinspect: %w", err)
	}

	layer, err := ds.Layer(opts.LayerKey)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Name:       modelName,
		Package:    opts.Package,
		Imports:    opts.Imports,
		Source:     ds.Name,
		Layer:      layer.Name,
		PrimaryKey: true,
	}

	names := uniqueNames{}
	geomGo := ToGoName(opts.GeomName)

	// The geometry column claims its name first; clashing fields are numbered.
	names.take(geomGo)

	columns := map[string]string{}
	for _, f := range layer.Fields {
		mf, err := buildField(f, opts)
		if err != nil {
			return nil, err
		}
		if prev, dup := columns[mf.Column]; dup {
			return nil, fmt.Errorf("ogrinspect: fields %q and %q both map to column %q", prev, f.Name, mf.Column)
		}
		if mf.Column == strings.ToLower(opts.GeomName) {
			return nil, fmt.Errorf("ogrinspect: field %q clashes with the geometry column %q", f.Name, opts.GeomName)
		}
		columns[mf.Column] = f.Name
		mf.Name = names.take(ToGoName(mf.Column))
		if mf.Name == "ID" {
			m.PrimaryKey = false
		}
		m.Fields = append(m.Fields, mf)
		metrics.FieldsGenerated.WithLabelValues(f.Type.String()).Inc()
	}

	if m.PrimaryKey && geomGo == "ID" {
		return nil, fmt.Errorf("ogrinspect: geometry field %q clashes with the ID primary key", opts.GeomName)
	}

	m.Geom = buildGeom(layer, opts, geomGo)

	if opts.NameField != "" {
		col := ColumnName(opts.NameField)
		for _, f := range m.Fields {
			if f.Column == col {
				m.NameField, m.NameType = f.Name, f.GoType
				break
			}
		}
		if m.NameField == "" {
			return nil, fmt.Errorf("ogrinspect: name field %q is not a field of layer %q", opts.NameField, layer.Name)
		}
	}
	return m, nil
}

func buildField(f ogr.Field, opts Options) (ModelField, error) {
	mf := ModelField{
		Column:    ColumnName(f.Name),
		Source:    f.Name,
		OGRType:   f.Type,
		Null:      opts.Null.Has(f.Name),
		Blank:     opts.Blank.Has(f.Name),
		Width:     f.Width,
		Precision: f.Precision,
	}

	tags := []string{"column:" + mf.Column}
	switch f.Type {
	case ogr.FieldReal:
		mf.GoType = "float64"
		if opts.Decimal.Has(f.Name) {
			mf.Decimal = true
			// Sources without a declared width (GeoJSON) keep the default numeric type.
			if f.Width > 0 {
				tags = append(tags, fmt.Sprintf("type:decimal(%d,%d)", f.Width, f.Precision))
			}
		}
	case ogr.FieldInteger:
		mf.GoType = "int32"
	case ogr.FieldInteger64:
		mf.GoType = "int64"
	case ogr.FieldString:
		mf.GoType = "string"
		if f.Width > 0 {
			tags = append(tags, "size:"+strconv.Itoa(f.Width))
		}
	case ogr.FieldDate:
		mf.GoType = "time.Time"
		tags = append(tags, "type:date")
	case ogr.FieldDateTime:
		mf.GoType = "time.Time"
	case ogr.FieldTime:
		mf.GoType = "string"
		tags = append(tags, "type:time")
	case ogr.FieldBoolean:
		mf.GoType = "bool"
	default:
		return ModelField{}, fmt.Errorf("ogrinspect: unknown field type %s in %s", f.Type, mf.Column)
	}

	if mf.Null {
		mf.GoType = "*" + mf.GoType
	} else {
		tags = append(tags, "not null")
	}
	if !mf.Blank {
		mf.Validate = "required"
	}
	mf.GormTag = strings.Join(tags, ";")
	return mf, nil
}

func buildGeom(layer *ogr.Layer, opts Options, goName string) GeomField {
	gtype := layer.GeomType
	if opts.MultiGeom {
		gtype = gtype.ToMulti()
	}

	g := GeomField{
		Name:    goName,
		Column:  opts.GeomName,
		OGRType: gtype,
		Type:    gtype.ModelType(),
	}

	switch {
	case opts.SRID != nil:
		g.SRID = *opts.SRID
		g.SRIDText = strconv.Itoa(g.SRID)
	case layer.SRID() == 0:
		g.SRID = UnknownSRID
		g.SRIDText = strconv.Itoa(UnknownSRID)
	case layer.SRID() == DefaultSRID:
		g.SRID = DefaultSRID
	default:
		g.SRID = layer.SRID()
		g.SRIDText = strconv.Itoa(g.SRID)
	}

	colType := g.Type
	if g.SRIDText != "" {
		colType += "," + g.SRIDText
	}
	g.GormTag = fmt.Sprintf("column:%s;type:geometry(%s)", g.Column, colType)
	return g
}
