package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var zonesOut string

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the contamination zone catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLATITUDE\tLONGITUDE\tRADIUS (KM)")
		for _, z := range catalog.Zones() {
			fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.1f\n",
				z.Name, z.Center.Latitude, z.Center.Longitude, z.RadiusKm)
		}
		return w.Flush()
	},
}

var zonesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the zone catalog as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		out, err := catalog.GeoJSON()
		if err != nil {
			return err
		}

		if zonesOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		if err := os.WriteFile(zonesOut, out, 0o644); err != nil {
			return eris.Wrap(err, "zones: write export")
		}
		return nil
	},
}

func init() {
	zonesExportCmd.Flags().StringVar(&zonesOut, "out", "", "write GeoJSON to a file instead of stdout")
	zonesCmd.AddCommand(zonesExportCmd)
	rootCmd.AddCommand(zonesCmd)
}
