package ogrinspect

import (
	"strconv"
	"strings"
	"unicode"
)

// knownAbbreviations maps lowercase abbreviations to their Go-conventional
// uppercase forms. When a word segment matches one of these entries during
// identifier construction the uppercase form is used instead.
var knownAbbreviations = map[string]string{
	"id":    "ID",
	"ids":   "IDs",
	"fid":   "FID",
	"gid":   "GID",
	"ogc":   "OGC",
	"url":   "URL",
	"uri":   "URI",
	"api":   "API",
	"http":  "HTTP",
	"json":  "JSON",
	"xml":   "XML",
	"csv":   "CSV",
	"sql":   "SQL",
	"srid":  "SRID",
	"epsg":  "EPSG",
	"fips":  "FIPS",
	"iso":   "ISO",
	"uuid":  "UUID",
	"utm":   "UTM",
	"gps":   "GPS",
	"dem":   "DEM",
	"zip":   "ZIP",
	"usps":  "USPS",
	"wkt":   "WKT",
	"wkb":   "WKB",
	"ttl":   "TTL",
	"ip":    "IP",
	"os":    "OS",
	"https": "HTTPS",
}

// ColumnName is the database column generated for a layer field: the name
// lower-cased, with "field" appended when it ends in an underscore.
func ColumnName(field string) string {
	col := strings.ToLower(field)
	if strings.HasSuffix(col, "_") {
		col += "field"
	}
	return col
}

// ToGoName converts a column name (e.g. "pop_total") into an exported Go
// identifier (e.g. "PopTotal"). It handles snake_case, kebab-case,
// dot-separated and camelCase input; other punctuation separates words.
// Known abbreviations are uppercased per Go convention and a leading digit
// gets an "F" prefix.
func ToGoName(name string) string {
	words := splitWords(name)
	var b strings.Builder
	for _, w := range words {
		if upper, ok := knownAbbreviations[strings.ToLower(w)]; ok {
			b.WriteString(upper)
		} else {
			b.WriteString(capitalize(w))
		}
	}
	out := b.String()
	if out == "" {
		return "Field"
	}
	if unicode.IsDigit([]rune(out)[0]) {
		return "F" + out
	}
	return out
}

// uniqueNames hands out Go names, numbering repeats (Name, Name2, ...).
type uniqueNames map[string]int

func (u uniqueNames) take(name string) string {
	u[name]++
	if n := u[name]; n > 1 {
		next := name + strconv.Itoa(n)
		for u[next] > 0 {
			n++
			next = name + strconv.Itoa(n)
		}
		u[next]++
		return next
	}
	return name
}

// splitWords breaks an identifier string into its component words.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			// "URLParser" splits into "URL", "Parser"; "popTotal" into "pop", "Total".
			if current.Len() > 0 && i > 0 && unicode.IsLower(runes[i-1]) {
				flush()
			} else if current.Len() > 1 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

// capitalize returns s with its first rune uppercased and the rest lowercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
