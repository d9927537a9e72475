package srs

import (
	"regexp"
	"strconv"
	"strings"
)

// WellKnown is a reference system the tool recognises without a database.
type WellKnown struct {
	SRID    int
	Name    string
	Aliases []string // ESRI and other spellings of Name
	WKT     string
	Proj4   string
}

// WGS84WKT is the OGC WKT of EPSG:4326.
const WGS84WKT = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`

var wellKnown = []WellKnown{
	{
		SRID:    4326,
		Name:    "WGS 84",
		Aliases: []string{"GCS_WGS_1984", "WGS84", "World Geodetic System 1984"},
		WKT:     WGS84WKT,
		Proj4:   "+proj=longlat +datum=WGS84 +no_defs",
	},
	{
		SRID:    4269,
		Name:    "NAD83",
		Aliases: []string{"GCS_North_American_1983", "North American Datum 1983"},
		WKT:     `GEOGCS["NAD83",DATUM["North_American_Datum_1983",SPHEROID["GRS 1980",6378137,298.257222101,AUTHORITY["EPSG","7019"]],AUTHORITY["EPSG","6269"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4269"]]`,
		Proj4:   "+proj=longlat +datum=NAD83 +no_defs",
	},
	{
		SRID:    4267,
		Name:    "NAD27",
		Aliases: []string{"GCS_North_American_1927", "North American Datum 1927"},
		WKT:     `GEOGCS["NAD27",DATUM["North_American_Datum_1927",SPHEROID["Clarke 1866",6378206.4,294.978698213898,AUTHORITY["EPSG","7008"]],AUTHORITY["EPSG","6267"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4267"]]`,
		Proj4:   "+proj=longlat +datum=NAD27 +no_defs",
	},
	{
		SRID:    4258,
		Name:    "ETRS89",
		Aliases: []string{"GCS_ETRS_1989"},
		WKT:     `GEOGCS["ETRS89",DATUM["European_Terrestrial_Reference_System_1989",SPHEROID["GRS 1980",6378137,298.257222101,AUTHORITY["EPSG","7019"]],AUTHORITY["EPSG","6258"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4258"]]`,
		Proj4:   "+proj=longlat +ellps=GRS80 +no_defs",
	},
	{
		SRID:    4283,
		Name:    "GDA94",
		Aliases: []string{"GCS_GDA_1994"},
		WKT:     `GEOGCS["GDA94",DATUM["Geocentric_Datum_of_Australia_1994",SPHEROID["GRS 1980",6378137,298.257222101,AUTHORITY["EPSG","7019"]],AUTHORITY["EPSG","6283"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4283"]]`,
		Proj4:   "+proj=longlat +ellps=GRS80 +no_defs",
	},
	{
		SRID:    3857,
		Name:    "WGS 84 / Pseudo-Mercator",
		Aliases: []string{"WGS_1984_Web_Mercator_Auxiliary_Sphere", "WGS_84_Pseudo_Mercator", "Popular Visualisation CRS / Mercator"},
		WKT:     `PROJCS["WGS 84 / Pseudo-Mercator",GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]],PROJECTION["Mercator_1SP"],PARAMETER["central_meridian",0],PARAMETER["scale_factor",1],PARAMETER["false_easting",0],PARAMETER["false_northing",0],UNIT["metre",1,AUTHORITY["EPSG","9001"]],AXIS["Easting",EAST],AXIS["Northing",NORTH],EXTENSION["PROJ4","+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs"],AUTHORITY["EPSG","3857"]]`,
		Proj4:   "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs",
	},
	{
		SRID:    27700,
		Name:    "OSGB 1936 / British National Grid",
		Aliases: []string{"British_National_Grid", "OSGB36 / British National Grid"},
	},
	{
		SRID:    2154,
		Name:    "RGF93 / Lambert-93",
		Aliases: []string{"RGF93_Lambert_93", "RGF93 v1 / Lambert-93"},
	},
}

var (
	byName = buildIndex()

	// UTM zones on WGS 84 (326xx north, 327xx south) and NAD83 (269xx).
	utmPattern = regexp.MustCompile(`^(wgs1984|wgs84|nad1983|nad83)utmzone(\d{1,2})([ns])$`)
)

func buildIndex() map[string]int {
	idx := make(map[string]int)
	for _, wk := range wellKnown {
		idx[normalize(wk.Name)] = wk.SRID
		for _, a := range wk.Aliases {
			idx[normalize(a)] = wk.SRID
		}
	}
	return idx
}

// normalize folds case and drops everything but letters and digits, so
// "GCS_WGS_1984" and "gcs wgs 1984" compare equal.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup returns the EPSG code for a reference system name.
func Lookup(name string) (int, bool) {
	key := normalize(name)
	if key == "" {
		return 0, false
	}
	if srid, ok := byName[key]; ok {
		return srid, true
	}

	m := utmPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}
	zone, _ := strconv.Atoi(m[2])
	if zone < 1 || zone > 60 {
		return 0, false
	}
	switch {
	case strings.HasPrefix(m[1], "nad"):
		if m[3] != "n" || zone > 23 {
			return 0, false
		}
		return 26900 + zone, true
	case m[3] == "n":
		return 32600 + zone, true
	default:
		return 32700 + zone, true
	}
}

// All returns the built-in reference systems that carry a WKT definition.
func All() []WellKnown {
	out := make([]WellKnown, 0, len(wellKnown))
	for _, wk := range wellKnown {
		if wk.WKT != "" {
			out = append(out, wk)
		}
	}
	return out
}
