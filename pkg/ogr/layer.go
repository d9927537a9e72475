package ogr

import "fmt"

// FieldType is the OGR attribute type of a layer field.
type FieldType int

const (
	FieldInteger FieldType = iota
	FieldIntegerList
	FieldReal
	FieldRealList
	FieldString
	FieldStringList
	FieldBinary
	FieldDate
	FieldTime
	FieldDateTime
	FieldInteger64
	FieldInteger64List
	FieldBoolean
)

var fieldTypeNames = [...]string{
	FieldInteger:       "OFTInteger",
	FieldIntegerList:   "OFTIntegerList",
	FieldReal:          "OFTReal",
	FieldRealList:      "OFTRealList",
	FieldString:        "OFTString",
	FieldStringList:    "OFTStringList",
	FieldBinary:        "OFTBinary",
	FieldDate:          "OFTDate",
	FieldTime:          "OFTTime",
	FieldDateTime:      "OFTDateTime",
	FieldInteger64:     "OFTInteger64",
	FieldInteger64List: "OFTInteger64List",
	FieldBoolean:       "OFTBoolean",
}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

// Field describes one attribute column of a layer.
type Field struct {
	Name      string
	Type      FieldType
	Width     int
	Precision int
}

// Layer is a collection of features sharing one schema.
type Layer struct {
	Name         string
	GeomType     GeomType
	Fields       []Field
	SRS          *SpatialReference // nil when the source has no CRS
	FeatureCount int
}

// FieldNames returns the field names in layer order.
func (l *Layer) FieldNames() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// SRID returns the layer's resolved SRID, or 0 when unknown.
func (l *Layer) SRID() int {
	if l.SRS == nil {
		return 0
	}
	return l.SRS.SRID
}
