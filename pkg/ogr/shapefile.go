package ogr

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonas-p/go-shp"
)

// shapefileDriver reads ESRI shapefiles. A directory holding shapefiles is
// a data source with one layer per .shp file.
type shapefileDriver struct{}

func (shapefileDriver) Name() string { return "ESRI Shapefile" }

func (shapefileDriver) Identify(path string, info fs.FileInfo) bool {
	if info.IsDir() {
		files, _ := shapefilesIn(path)
		return len(files) > 0
	}
	return strings.EqualFold(filepath.Ext(path), ".shp")
}

func (shapefileDriver) Open(ctx context.Context, path string) ([]*Layer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	files := []string{path}
	if info.IsDir() {
		if files, err = shapefilesIn(path); err != nil {
			return nil, err
		}
	}

	layers := make([]*Layer, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l, err := readShapefile(f)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func shapefilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".shp") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func readShapefile(path string) (*Layer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shapefile: open %s: %w", filepath.Base(path), err)
	}
	defer r.Close()

	base := strings.TrimSuffix(path, filepath.Ext(path))
	l := &Layer{
		Name:     filepath.Base(base),
		GeomType: shapeGeomType(r.GeometryType),
	}

	dbf := r.Fields()
	l.Fields = make([]Field, 0, len(dbf))
	for _, f := range dbf {
		l.Fields = append(l.Fields, dbfField(f))
	}

	l.FeatureCount = shapeCount(base)
	if l.FeatureCount < 0 {
		l.FeatureCount = r.AttributeCount()
	}

	if wkt, ok := readSidecar(base, ".prj"); ok && strings.TrimSpace(wkt) != "" {
		l.SRS = NewSpatialReference(strings.TrimSpace(wkt))
	}
	return l, nil
}

// shapeCount derives the record count from the .shx index: a 100 byte
// header plus 8 bytes per record. It returns -1 without an index.
func shapeCount(base string) int {
	for _, ext := range []string{".shx", ".SHX"} {
		if info, err := os.Stat(base + ext); err == nil && info.Size() >= 100 {
			return int((info.Size() - 100) / 8)
		}
	}
	return -1
}

func readSidecar(base, ext string) (string, bool) {
	for _, e := range []string{ext, strings.ToUpper(ext)} {
		b, err := os.ReadFile(base + e)
		if err == nil {
			return string(b), true
		}
	}
	return "", false
}

func shapeGeomType(t shp.ShapeType) GeomType {
	switch t {
	case shp.POINT, shp.POINTM:
		return GeomPoint
	case shp.POLYLINE, shp.POLYLINEM:
		return GeomLineString
	case shp.POLYGON, shp.POLYGONM:
		return GeomPolygon
	case shp.MULTIPOINT, shp.MULTIPOINTM:
		return GeomMultiPoint
	case shp.POINTZ:
		return GeomPoint.With25D()
	case shp.POLYLINEZ:
		return GeomLineString.With25D()
	case shp.POLYGONZ:
		return GeomPolygon.With25D()
	case shp.MULTIPOINTZ:
		return GeomMultiPoint.With25D()
	case shp.MULTIPATCH:
		return GeomMultiPolygon.With25D()
	}
	return GeomUnknown
}

func dbfField(f shp.Field) Field {
	out := Field{
		Name:      f.String(),
		Width:     int(f.Size),
		Precision: int(f.Precision),
	}
	switch f.Fieldtype {
	case 'N':
		switch {
		case f.Precision > 0:
			out.Type = FieldReal
		case f.Size < 10:
			out.Type = FieldInteger
		case f.Size < 19:
			out.Type = FieldInteger64
		default:
			out.Type = FieldReal
		}
	case 'F':
		out.Type = FieldReal
	case 'D':
		out.Type = FieldDate
	case 'L':
		out.Type = FieldBoolean
	default:
		out.Type = FieldString
	}
	return out
}
