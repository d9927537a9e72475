package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/geoinspect/config"
	"github.com/shashiranjanraj/geoinspect/pkg/logger"
	"github.com/shashiranjanraj/geoinspect/pkg/metrics"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/shashiranjanraj/geoinspect/database/migrations"
	_ "github.com/shashiranjanraj/geoinspect/database/seeders"
)

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the CLI with args, writing command output to stdout.
func execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if werr := metrics.WriteTextfile(config.MetricsTextfile()); werr != nil {
		logger.Warn("metrics textfile not written", "error", werr)
	}
	return err
}

func newRootCmd() *cobra.Command {
	var verbose, debug bool

	root := &cobra.Command{
		Use:   "geoinspect",
		Short: "Generate GORM models from geospatial vector data",
		Long: "geoinspect inspects geospatial vector data sources (shapefiles, GeoJSON) " +
			"and generates GORM model source for their layers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			logger.Setup(verbose, debug)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log debug detail to stderr")

	// Inspection
	root.AddCommand(newOgrinspectCmd())
	root.AddCommand(newLayerListCmd())

	// Database
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newMigrateRollbackCmd())
	root.AddCommand(newMigrateStatusCmd())
	root.AddCommand(newSeedCmd())

	return root
}
