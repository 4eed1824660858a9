package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gis-cli/internal/extract"
	"github.com/sells-group/gis-cli/internal/geojson"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <geojson_path> <path>",
	Short: "Extract values at a dot-separated property path into a CSV",
	Long:  "Resolves a dot-separated address (e.g. \"tags.name:en\") against every feature's properties and writes one value per feature to a single-column CSV.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		geojsonPath, address := args[0], args[1]
		out := cmd.OutOrStdout()

		doc, err := geojson.Load(geojsonPath)
		if err != nil {
			return err
		}

		// Advisory path listing so an operator can see what is addressable.
		paths := geojson.Discover(doc.Features, cfg.Discover.MaxFeatures, cfg.Discover.MaxDepth)
		if len(paths) > 0 {
			fmt.Fprintf(out, "Available nested paths (from first %d features):\n", cfg.Discover.MaxFeatures)
			for _, p := range paths {
				fmt.Fprintf(out, "  - %s\n", p.Address)
				for _, sample := range capSamples(p.Samples, cfg.Discover.MaxSamples) {
					fmt.Fprintf(out, "    Sample: %s\n", sample)
				}
			}
			fmt.Fprintln(out)
		}

		values, err := extract.Values(doc, address)
		if err != nil {
			return err
		}

		summary := extract.Summarize(values, cfg.Analyze.SampleCap)
		if summary.NonEmpty == 0 {
			return eris.Errorf("extract: no values found for path %q", address)
		}

		outputPath := extractOutput
		if outputPath == "" {
			outputPath = extract.DefaultOutputPath(geojsonPath)
		}
		if err := extract.WriteCSV(values, outputPath); err != nil {
			return err
		}

		fmt.Fprintf(out, "Extracted %d values (%d non-empty, %d empty)\n", summary.Total, summary.NonEmpty, summary.Empty)
		if len(summary.Samples) > 0 {
			fmt.Fprintln(out, "Sample values:")
			for i, v := range summary.Samples {
				fmt.Fprintf(out, "  %d. %s\n", i+1, v)
			}
		}
		fmt.Fprintf(out, "CSV written to %s\n", outputPath)

		zap.L().Info("extraction complete",
			zap.String("path", address),
			zap.Int("values", summary.Total),
			zap.Int("non_empty", summary.NonEmpty),
			zap.String("output", outputPath),
		)
		return nil
	},
}

func capSamples(samples []string, limit int) []string {
	if len(samples) > limit {
		return samples[:limit]
	}
	return samples
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output CSV path (default <input stem>_extracted_values.csv)")
	rootCmd.AddCommand(extractCmd)
}
