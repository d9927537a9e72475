// Package geofield provides the geometry column type used by generated
// models. Values travel as EWKB, which PostGIS, SpatiaLite and MySQL (via
// ST_GeomFromWKB) all understand.
package geofield

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
)

// Geometry is a nullable geometry column. A nil Geometry stores NULL.
type Geometry struct {
	orb.Geometry
	SRID int
}

// New wraps g with srid.
func New(g orb.Geometry, srid int) Geometry {
	return Geometry{Geometry: g, SRID: srid}
}

// Valid reports whether the column holds a geometry.
func (g Geometry) Valid() bool { return g.Geometry != nil }

// GormDataType is the column type used by AutoMigrate.
func (Geometry) GormDataType() string { return "geometry" }

// Scan implements sql.Scanner. Postgres drivers return EWKB either as raw
// bytes or as hex text; both are accepted.
func (g *Geometry) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Geometry{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("geofield: cannot scan %T", src)
	}

	if isHex(raw) {
		dec := make([]byte, hex.DecodedLen(len(raw)))
		if _, err := hex.Decode(dec, raw); err != nil {
			return fmt.Errorf("geofield: decode hex: %w", err)
		}
		raw = dec
	}

	geom, srid, err := ewkb.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("geofield: %w", err)
	}
	g.Geometry, g.SRID = geom, srid
	return nil
}

// Value implements driver.Valuer as hex EWKB.
func (g Geometry) Value() (driver.Value, error) {
	if g.Geometry == nil {
		return nil, nil
	}
	s, err := ewkb.MarshalToHex(g.Geometry, g.SRID)
	if err != nil {
		return nil, fmt.Errorf("geofield: %w", err)
	}
	return s, nil
}

// isHex reports whether b looks like hex EWKB text: an even number of hex
// digits starting with a byte-order marker (00 or 01).
func isHex(b []byte) bool {
	if len(b) < 2 || len(b)%2 != 0 || b[0] != '0' || (b[1] != '0' && b[1] != '1') {
		return false
	}
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
