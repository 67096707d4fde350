package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/location"
	"github.com/meridian-legal/pfas-intake/internal/model"
	"github.com/meridian-legal/pfas-intake/internal/verdict"
	"github.com/meridian-legal/pfas-intake/internal/zone"
)

var (
	checkLat float64
	checkLng float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a coordinate against the contamination zone catalog",
	Long: `Check resolves a coordinate to a contamination verdict, the same
determination the API server makes for POST /api/geolocation. The coordinate
comes from --lat/--lon, or from the configured location block when the flags
are omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		lookup, closeCache, err := buildLookup()
		if err != nil {
			return err
		}
		defer closeCache()

		verdicts := verdict.NewService(zone.NewMatcher(catalog), lookup)

		coord, err := resolveCoordinate(cmd)
		if err != nil {
			zap.L().Warn("could not acquire coordinate", zap.Error(err))
			return printJSON(cmd, verdict.Fallback(err))
		}

		return printJSON(cmd, verdicts.Check(cmd.Context(), coord))
	},
}

// resolveCoordinate prefers the --lat/--lon flags and falls back to the
// configured static source.
func resolveCoordinate(cmd *cobra.Command) (model.Coordinate, error) {
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		coord := model.Coordinate{Latitude: checkLat, Longitude: checkLng}
		if err := coord.Validate(); err != nil {
			return model.Coordinate{}, err
		}
		return coord, nil
	}

	var src location.Source = location.Denied{}
	if !cfg.Location.Denied {
		static := location.Static{}
		if cfg.Location.Latitude != nil && cfg.Location.Longitude != nil {
			static.Coord = model.Coordinate{
				Latitude:  *cfg.Location.Latitude,
				Longitude: *cfg.Location.Longitude,
			}
			static.Set = true
		}
		src = static
	}

	timeout := time.Duration(cfg.Location.TimeoutSecs) * time.Second
	return location.WithTimeout(src, timeout).Current(cmd.Context())
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	checkCmd.Flags().Float64Var(&checkLat, "lat", 0, "latitude to check")
	checkCmd.Flags().Float64Var(&checkLng, "lon", 0, "longitude to check")
	rootCmd.AddCommand(checkCmd)
}
