// Package ogr reads the schema of vector data sources: their layers, each
// layer's attribute fields, geometry type and spatial reference.
//
// Formats are provided by drivers registered at init time (shapefile and
// GeoJSON ship with the package). A data source may be a local file, a
// local directory of shapefiles, or an s3:// location, which is fetched
// into a temporary directory first.
//
//	ds, err := ogr.Open(ctx, "zipcode.shp")
//	if err != nil { ... }
//	defer ds.Close()
//	layer, err := ds.Layer(ogr.LayerIndex(0))
package ogr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shashiranjanraj/geoinspect/pkg/logger"
	"github.com/shashiranjanraj/geoinspect/pkg/storage"
)

var (
	// ErrNoDriver means no vector driver is registered at all.
	ErrNoDriver = errors.New("ogr: no vector drivers available")

	// ErrUnsupported means no registered driver recognises the source.
	ErrUnsupported = errors.New("ogr: unsupported data source")

	// ErrNoLayers means the source opened but contains no layers.
	ErrNoLayers = errors.New("ogr: data source has no layers")

	// ErrLayerNotFound is returned by DataSource.Layer.
	ErrLayerNotFound = errors.New("ogr: layer not found")
)

// OpenError reports a data source that could not be opened.
type OpenError struct {
	Source string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("could not open the data source at %q: %v", e.Source, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Driver reads one vector format.
type Driver interface {
	Name() string
	// Identify reports whether the driver can read path.
	Identify(path string, info fs.FileInfo) bool
	Open(ctx context.Context, path string) ([]*Layer, error)
}

var (
	driversMu sync.RWMutex
	drivers   []Driver
)

// The built-in drivers. A directory of shapefiles is tried before any
// single-file format.
func init() {
	Register(shapefileDriver{})
	Register(geojsonDriver{})
}

// Register adds a driver. Drivers are tried in registration order.
func Register(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers = append(drivers, d)
}

// Available reports whether any driver is registered.
func Available() bool {
	driversMu.RLock()
	defer driversMu.RUnlock()
	return len(drivers) > 0
}

// Drivers returns the registered driver names.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, len(drivers))
	for i, d := range drivers {
		names[i] = d.Name()
	}
	return names
}

func identify(path string, info fs.FileInfo) Driver {
	driversMu.RLock()
	defer driversMu.RUnlock()
	for _, d := range drivers {
		if d.Identify(path, info) {
			return d
		}
	}
	return nil
}

// ─── Layer keys ───────────────────────────────────────────────────────────────

// LayerKey selects a layer by index or by name.
type LayerKey struct {
	index  int
	name   string
	byName bool
}

// LayerIndex selects the layer at i.
func LayerIndex(i int) LayerKey { return LayerKey{index: i} }

// LayerName selects the layer called name.
func LayerName(name string) LayerKey { return LayerKey{name: name, byName: true} }

// ParseLayerKey reads s as an index when it is an integer and as a layer
// name otherwise.
func ParseLayerKey(s string) LayerKey {
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return LayerIndex(i)
	}
	return LayerName(s)
}

// IsName reports whether the key selects by name.
func (k LayerKey) IsName() bool { return k.byName }

// Index is the selected index; meaningless when IsName.
func (k LayerKey) Index() int { return k.index }

// Name is the selected name; empty unless IsName.
func (k LayerKey) Name() string { return k.name }

func (k LayerKey) String() string {
	if k.byName {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// ─── Data sources ─────────────────────────────────────────────────────────────

// DataSource is an opened vector source.
type DataSource struct {
	Name   string // as passed to Open
	Driver string
	layers []*Layer
	close  func() error
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	resolver SRIDResolver
	disk     func(ctx context.Context, location string) (storage.Disk, string, error)
}

// WithResolver identifies layer reference systems the built-in table does
// not know.
func WithResolver(r SRIDResolver) Option {
	return func(o *openOptions) { o.resolver = r }
}

// WithStorage replaces storage.Open for remote locations.
func WithStorage(open func(ctx context.Context, location string) (storage.Disk, string, error)) Option {
	return func(o *openOptions) { o.disk = open }
}

// Open opens source with the first driver that recognises it.
func Open(ctx context.Context, source string, opts ...Option) (*DataSource, error) {
	o := openOptions{disk: storage.Open}
	for _, opt := range opts {
		opt(&o)
	}

	if !Available() {
		return nil, &OpenError{Source: source, Err: ErrNoDriver}
	}

	ds := &DataSource{Name: source, close: func() error { return nil }}
	path := source
	if storage.IsRemote(source) {
		local, dir, err := fetchRemote(ctx, o.disk, source)
		if err != nil {
			return nil, &OpenError{Source: source, Err: err}
		}
		path = local
		ds.close = func() error { return os.RemoveAll(dir) }
	}

	layers, driver, err := openLocal(ctx, path)
	if err != nil {
		_ = ds.close()
		return nil, &OpenError{Source: source, Err: err}
	}
	ds.Driver = driver
	ds.layers = layers

	for _, l := range layers {
		resolveLayerSRID(ctx, o.resolver, l)
	}

	logger.Debug("ogr: opened data source", "source", source, "driver", driver, "layers", len(layers))
	return ds, nil
}

func openLocal(ctx context.Context, path string) ([]*Layer, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	d := identify(path, info)
	if d == nil {
		return nil, "", fmt.Errorf("%w (drivers: %s)", ErrUnsupported, strings.Join(Drivers(), ", "))
	}
	layers, err := d.Open(ctx, path)
	if err != nil {
		return nil, d.Name(), err
	}
	if len(layers) == 0 {
		return nil, d.Name(), ErrNoLayers
	}
	return layers, d.Name(), nil
}

func resolveLayerSRID(ctx context.Context, r SRIDResolver, l *Layer) {
	if r == nil || l.SRS == nil || l.SRS.SRID != 0 || l.SRS.WKT == "" {
		return
	}
	srid, err := r.ResolveSRID(ctx, l.SRS.WKT)
	if err != nil {
		logger.Warn("ogr: SRID lookup failed", "layer", l.Name, "error", err)
		return
	}
	l.SRS.SRID = srid
}

// LayerCount returns the number of layers.
func (ds *DataSource) LayerCount() int { return len(ds.layers) }

// Layers returns the layers in source order.
func (ds *DataSource) Layers() []*Layer { return ds.layers }

// Layer returns the layer selected by key.
func (ds *DataSource) Layer(key LayerKey) (*Layer, error) {
	if key.IsName() {
		for _, l := range ds.layers {
			if l.Name == key.Name() {
				return l, nil
			}
		}
		return nil, fmt.Errorf("%w: invalid layer name %q (have %s)", ErrLayerNotFound, key.Name(), strings.Join(ds.layerNames(), ", "))
	}
	if key.Index() < 0 || key.Index() >= len(ds.layers) {
		return nil, fmt.Errorf("%w: index %d out of range, data source has %d layer(s)", ErrLayerNotFound, key.Index(), len(ds.layers))
	}
	return ds.layers[key.Index()], nil
}

func (ds *DataSource) layerNames() []string {
	names := make([]string, len(ds.layers))
	for i, l := range ds.layers {
		names[i] = l.Name
	}
	sort.Strings(names)
	return names
}

// Close releases temporary files of remote sources.
func (ds *DataSource) Close() error {
	if ds == nil || ds.close == nil {
		return nil
	}
	return ds.close()
}
