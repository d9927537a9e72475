package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/geoinspect/pkg/ogr"
)

// geoinspect layer:list [data_source]
func newLayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layer:list [data_source]",
		Short: "List the layers of a vector data source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !available() {
				return errNoGDAL
			}
			openOpts, closeResolver := resolverOptions(cmd.Context())
			defer closeResolver()

			ds, err := ogr.Open(cmd.Context(), args[0], openOpts...)
			if err != nil {
				return err
			}
			defer ds.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tNAME\tGEOMETRY\tFIELDS\tFEATURES\tSRID")
			for i, l := range ds.Layers() {
				srid := "-"
				if l.SRID() != 0 {
					srid = fmt.Sprint(l.SRID())
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", i, l.Name, l.GeomType, len(l.Fields), l.FeatureCount, srid)
			}
			return w.Flush()
		},
	}
}
