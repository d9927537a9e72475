package ogr

import (
	"context"

	"github.com/shashiranjanraj/geoinspect/pkg/srs"
)

// SpatialReference is the coordinate reference system of a layer.
type SpatialReference struct {
	WKT  string
	Name string
	SRID int // 0 when not identified
}

// NewSpatialReference parses wkt and identifies it from local knowledge.
func NewSpatialReference(wkt string) *SpatialReference {
	sr := &SpatialReference{WKT: wkt}
	if w, err := srs.ParseWKT(wkt); err == nil {
		sr.Name = w.Name
	}
	sr.SRID = srs.Identify(wkt)
	return sr
}

// FromEPSG builds a reference from a bare EPSG code (GeoJSON crs members).
func FromEPSG(code int) *SpatialReference {
	if code == 4326 {
		return &SpatialReference{WKT: srs.WGS84WKT, Name: "WGS 84", SRID: 4326}
	}
	for _, wk := range srs.All() {
		if wk.SRID == code {
			return &SpatialReference{WKT: wk.WKT, Name: wk.Name, SRID: code}
		}
	}
	return &SpatialReference{SRID: code}
}

// SRIDResolver identifies WKT the built-in table does not know.
// *srs.Resolver implements it.
type SRIDResolver interface {
	ResolveSRID(ctx context.Context, wkt string) (int, error)
}
