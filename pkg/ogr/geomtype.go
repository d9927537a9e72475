package ogr

import "strings"

// GeomType is an OGR geometry type code. The 25D bit marks geometries
// that carry Z values.
type GeomType uint32

const (
	GeomUnknown            GeomType = 0
	GeomPoint              GeomType = 1
	GeomLineString         GeomType = 2
	GeomPolygon            GeomType = 3
	GeomMultiPoint         GeomType = 4
	GeomMultiLineString    GeomType = 5
	GeomMultiPolygon       GeomType = 6
	GeomGeometryCollection GeomType = 7
	GeomNone               GeomType = 100

	wkb25DBit GeomType = 0x80000000
)

var geomNames = map[GeomType]string{
	GeomUnknown:            "Unknown",
	GeomPoint:              "Point",
	GeomLineString:         "LineString",
	GeomPolygon:            "Polygon",
	GeomMultiPoint:         "MultiPoint",
	GeomMultiLineString:    "MultiLineString",
	GeomMultiPolygon:       "MultiPolygon",
	GeomGeometryCollection: "GeometryCollection",
	GeomNone:               "None",
}

// With25D returns t with the Z flag set.
func (t GeomType) With25D() GeomType { return t | wkb25DBit }

// Is25D reports whether t carries Z values.
func (t GeomType) Is25D() bool { return t&wkb25DBit != 0 }

// Flat returns t without the Z flag.
func (t GeomType) Flat() GeomType { return t &^ wkb25DBit }

// ToMulti promotes Point, LineString and Polygon (with or without Z) to
// their Multi* counterparts. Other types are returned unchanged.
func (t GeomType) ToMulti() GeomType {
	switch t.Flat() {
	case GeomPoint, GeomLineString, GeomPolygon:
		return t + 3
	}
	return t
}

// IsMulti reports whether t is a Multi* type.
func (t GeomType) IsMulti() bool {
	switch t.Flat() {
	case GeomMultiPoint, GeomMultiLineString, GeomMultiPolygon:
		return true
	}
	return false
}

// String is the OGR name, e.g. "Polygon", "MultiPoint25D".
func (t GeomType) String() string {
	name, ok := geomNames[t.Flat()]
	if !ok {
		return "Unknown"
	}
	if t.Is25D() {
		return name + "25D"
	}
	return name
}

// ModelType is the geometry name used in generated column types:
// the OGR name without 25D, with Unknown and None mapped to Geometry.
func (t GeomType) ModelType() string {
	name := strings.TrimSuffix(t.String(), "25D")
	switch name {
	case "Unknown", "None":
		return "Geometry"
	}
	return name
}

// ParseGeomType maps a GeoJSON or OGR geometry name onto a GeomType.
func ParseGeomType(name string) GeomType {
	base := name
	var z GeomType
	if strings.HasSuffix(base, "25D") {
		base, z = strings.TrimSuffix(base, "25D"), wkb25DBit
	}
	for t, n := range geomNames {
		if strings.EqualFold(n, base) {
			return t | z
		}
	}
	return GeomUnknown
}
