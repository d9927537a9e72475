package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/geoinspect/config"
	"github.com/shashiranjanraj/geoinspect/pkg/cache"
	"github.com/shashiranjanraj/geoinspect/pkg/database"
	"github.com/shashiranjanraj/geoinspect/pkg/logger"
	"github.com/shashiranjanraj/geoinspect/pkg/metrics"
	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
	"github.com/shashiranjanraj/geoinspect/pkg/ogrinspect"
	"github.com/shashiranjanraj/geoinspect/pkg/srs"
)

var (
	errInvalidArgs = errors.New("Invalid arguments, must provide: [data_source] [model_name]")
	errNoGDAL      = errors.New("GDAL is required to inspect geospatial data sources.")
)

// available reports whether any vector driver is compiled in.
var available = ogr.Available

// geoinspect ogrinspect [data_source] [model_name]
func newOgrinspectCmd() *cobra.Command {
	var (
		blank, decimal, null selectionValue
		layer                layerValue
		geomName, nameField  string
		pkg                  string
		srid                 int
		multiGeom, noImports bool
		mapping              bool
	)

	cmd := &cobra.Command{
		Use:   "ogrinspect [data_source] [model_name]",
		Short: "Inspect a vector data source layer and output a GORM model",
		Long: "Inspects the given OGR-compatible data source (e.g., a shapefile) and outputs\n" +
			"a GORM model with the given model name. For example:\n" +
			" geoinspect ogrinspect zipcode.shp Zipcode",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errInvalidArgs
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options := map[string]any{
				"geom_name":  geomName,
				"layer_key":  layer.key,
				"srid":       nil,
				"multi_geom": multiGeom,
				"name_field": nil,
				"imports":    !noImports,
				"decimal":    decimal.sel,
				"blank":      blank.sel,
				"null":       null.sel,
				"package":    pkg,
				"mapping":    mapping,
			}
			if cmd.Flags().Changed("srid") {
				options["srid"] = srid
			}
			if cmd.Flags().Changed("name-field") {
				options["name_field"] = nameField
			}
			return inspect(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], options)
		},
	}

	f := cmd.Flags()
	f.Var(&blank, "blank", `use "true" to allow blank values on all fields, or a comma-separated list of fields`)
	f.Var(&decimal, "decimal", `use "true" to map all OFTReal fields to decimal columns, or a comma-separated list of fields`)
	f.StringVar(&geomName, "geom-name", "geom", "name of the geometry field")
	f.Var(&layer, "layer", "the key for the layer in the data source: an integer index or a layer name")
	f.BoolVar(&multiGeom, "multi-geom", false, "treat the geometry in the data source as a geometry collection")
	f.StringVar(&nameField, "name-field", "", "field name whose value is returned by the String() method")
	f.BoolVar(&noImports, "no-imports", false, "omit the header comment, package clause and imports")
	f.Var(&null, "null", `use "true" to make all fields nullable, or a comma-separated list of fields`)
	f.IntVar(&srid, "srid", 0, "the SRID to use for the geometry field; guessed from the data source when unset")
	f.BoolVar(&mapping, "mapping", false, "also generate a mapping from model fields to layer fields")
	f.StringVar(&pkg, "package", "models", "package name of the generated file")

	return cmd
}

// inspect opens source, renders the model (and its mapping when asked)
// and writes the joined lines to out.
func inspect(ctx context.Context, out io.Writer, source, model string, options map[string]any) (err error) {
	if !available() {
		return errNoGDAL
	}
	if ctx == nil {
		ctx = context.Background()
	}

	openOpts, closeResolver := resolverOptions(ctx)
	defer closeResolver()

	ds, err := ogr.Open(ctx, source, openOpts...)
	if err != nil {
		return err
	}
	defer ds.Close()

	start := time.Now()
	defer func() { metrics.ObserveInspect(ds.Driver, start, err) }()

	logger.Info("ogrinspect: inspecting", "source", source, "driver", ds.Driver, "model", model)

	lines, err := renderModel(ds, model, ogrinspect.FilterOptions(options))
	if err != nil {
		return err
	}

	if on, _ := options["mapping"].(bool); on {
		extra, err := mappingLines(ds, model, options)
		if err != nil {
			return err
		}
		lines = append(lines, "")
		lines = append(lines, extra...)
	}

	_, err = io.WriteString(out, strings.Join(lines, "\n")+"\n")
	return err
}

// renderModel uses the user's model.stub when one exists, the built-in
// renderer otherwise.
func renderModel(ds *ogr.DataSource, model string, params map[string]any) ([]string, error) {
	stub := filepath.Join(config.StubDir(), "model.stub")
	text, err := os.ReadFile(stub)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read user stub %s: %w", stub, err)
		}
		return ogrinspect.Inspect(ds, model, params)
	}

	logger.Debug("ogrinspect: using user stub", "path", stub)
	opts, err := ogrinspect.OptionsFromMap(params)
	if err != nil {
		return nil, err
	}
	m, err := ogrinspect.Build(ds, model, opts)
	if err != nil {
		return nil, err
	}
	return ogrinspect.RenderTemplate(m, stub, string(text))
}

// resolverOptions wires the spatial_ref_sys lookup when a database is
// configured. Connection failures only disable the lookup.
func resolverOptions(ctx context.Context) ([]ogr.Option, func()) {
	noop := func() {}
	if !config.DatabaseEnabled() {
		return nil, noop
	}

	db, err := database.Connect()
	if err != nil {
		logger.Warn("ogrinspect: spatial_ref_sys lookups disabled", "error", err)
		return nil, noop
	}
	r := &srs.Resolver{DB: db, TTL: config.SRSCacheTTL()}

	store, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("ogrinspect: SRID cache disabled", "error", err)
	}
	if store.Enabled() {
		r.Cache = store
	}

	return []ogr.Option{ogr.WithResolver(r)}, func() {
		_ = store.Close()
		_ = database.Close(db)
	}
}
