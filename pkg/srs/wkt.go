// Package srs identifies spatial reference systems.
//
// A reference system arrives as WKT text (a shapefile .prj, a GeoJSON crs
// member, a spatial_ref_sys row). Identification tries, in order: an EPSG
// authority on the root node, the built-in table of well-known systems, an
// optional cache, and an optional spatial_ref_sys database table.
package srs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformedWKT is returned when the root node of a WKT string cannot be read.
var ErrMalformedWKT = errors.New("srs: malformed WKT")

// WKT is the part of a WKT CRS definition needed for identification.
type WKT struct {
	Kind      string // root keyword, e.g. GEOGCS, PROJCS, GEOGCRS
	Name      string // root node name
	Authority string // root authority name, e.g. EPSG
	Code      int    // root authority code
}

// ParseWKT reads the root keyword, root name and the root-level AUTHORITY
// (WKT1) or ID (WKT2) of s. Authorities on nested nodes (datum, spheroid,
// base CRS) are ignored.
func ParseWKT(s string) (WKT, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	if s == "" {
		return WKT{}, fmt.Errorf("%w: empty", ErrMalformedWKT)
	}

	open := strings.IndexAny(s, "[(")
	if open <= 0 {
		return WKT{}, fmt.Errorf("%w: no root node", ErrMalformedWKT)
	}

	out := WKT{Kind: strings.ToUpper(strings.TrimSpace(s[:open]))}
	for _, r := range out.Kind {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return WKT{}, fmt.Errorf("%w: bad keyword %q", ErrMalformedWKT, out.Kind)
		}
	}

	name, _, ok := readQuoted(s, open+1)
	if !ok {
		return WKT{}, fmt.Errorf("%w: root node has no name", ErrMalformedWKT)
	}
	out.Name = name

	depth := 0
	inQuote := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		switch c {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		default:
			if depth != 1 || !isKeywordStart(s, i) {
				continue
			}
			kw, next := readKeyword(s, i)
			if kw == "AUTHORITY" || kw == "ID" {
				if auth, code, ok := readAuthority(s, next); ok {
					out.Authority, out.Code = auth, code
				}
			}
			i = next - 1
		}
	}
	if depth != 0 {
		return WKT{}, fmt.Errorf("%w: unbalanced brackets", ErrMalformedWKT)
	}

	return out, nil
}

func isKeywordStart(s string, i int) bool {
	if !unicode.IsLetter(rune(s[i])) {
		return false
	}
	if i == 0 {
		return true
	}
	p := s[i-1]
	return p == ',' || p == '[' || p == '(' || p == ' ' || p == '\n' || p == '\t' || p == '\r'
}

func readKeyword(s string, i int) (string, int) {
	j := i
	for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
		j++
	}
	return strings.ToUpper(s[i:j]), j
}

// readQuoted returns the first quoted string at or after i.
func readQuoted(s string, i int) (string, int, bool) {
	start := strings.IndexByte(s[i:], '"')
	if start < 0 {
		return "", i, false
	}
	start += i + 1
	end := strings.IndexByte(s[start:], '"')
	if end < 0 {
		return "", i, false
	}
	end += start
	return s[start:end], end + 1, true
}

// readAuthority parses `["EPSG","4326"]` or `["EPSG",4326]` starting at i.
func readAuthority(s string, i int) (string, int, bool) {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i >= len(s) || (s[i] != '[' && s[i] != '(') {
		return "", 0, false
	}
	closeIdx := strings.IndexAny(s[i:], "])")
	if closeIdx < 0 {
		return "", 0, false
	}
	body := s[i+1 : i+closeIdx]
	parts := strings.Split(body, ",")
	if len(parts) < 2 {
		return "", 0, false
	}
	auth := strings.Trim(strings.TrimSpace(parts[0]), `"`)
	code, err := strconv.Atoi(strings.Trim(strings.TrimSpace(parts[1]), `"`))
	if err != nil || auth == "" {
		return "", 0, false
	}
	return strings.ToUpper(auth), code, true
}

// Identify returns the EPSG code for wkt using only local knowledge: the
// root authority, then the built-in table. It returns 0 when unknown.
func Identify(wkt string) int {
	w, err := ParseWKT(wkt)
	if err != nil {
		return 0
	}
	if w.Authority == "EPSG" && w.Code > 0 {
		return w.Code
	}
	if srid, ok := Lookup(w.Name); ok {
		return srid
	}
	return 0
}
