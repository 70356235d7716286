package main

import (
	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

func newRecommendCommand(opts *globalOptions) *cobra.Command {
	var sample domain.SoilSample

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank crops for a soil reading",
		Long: `Rank every crop in the catalog for one soil reading.

Readings must lie within pH 0-14, temperature 0-50°C and humidity 0-100%.
Crops are listed from most to least suitable; ties keep catalog order.`,
		Example: "  cropctl recommend --ph 6.5 --temperature 27 --humidity 75",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(opts)
			if err != nil {
				return err
			}
			defer b.Close()

			rec, err := b.Recommend(cmd.Context(), sample)
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			return writeRecommendation(cmd.OutOrStdout(), rec)
		},
	}

	cmd.Flags().Float64Var(&sample.PH, "ph", 0, "Soil pH (0-14)")
	cmd.Flags().Float64Var(&sample.Temperature, "temperature", 0, "Soil temperature in °C (0-50)")
	cmd.Flags().Float64Var(&sample.Humidity, "humidity", 0, "Soil humidity in % (0-100)")
	for _, name := range []string{"ph", "temperature", "humidity"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
