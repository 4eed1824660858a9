package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gis-cli/internal/analyze"
	"github.com/sells-group/gis-cli/internal/geojson"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <geojson_path>",
	Short: "Report a GeoJSON file's property schema and geometry statistics",
	Long:  "Aggregates per-property type, occurrence, and sample statistics plus geometry-type and coordinate statistics, and writes a markdown structure report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		geojsonPath := args[0]
		out := cmd.OutOrStdout()

		info, err := analyze.StatFile(geojsonPath)
		if err != nil {
			return err
		}
		doc, err := geojson.Load(geojsonPath)
		if err != nil {
			return err
		}

		analysis := analyze.New(cfg.Analyze.SampleCap).Run(doc, info)
		report := analyze.RenderMarkdown(analysis)

		outputPath := analyzeOutput
		if outputPath == "" {
			outputPath = analyze.DefaultOutputPath(geojsonPath)
		}
		if err := os.WriteFile(outputPath, []byte(report), 0o644); err != nil {
			return eris.Wrapf(err, "analyze: write %s", outputPath)
		}

		fmt.Fprintf(out, "Report written to %s\n", outputPath)
		fmt.Fprintf(out, "Found %d features\n", analysis.Structure.FeatureCount)
		fmt.Fprintf(out, "Found %d unique properties\n", len(analysis.Properties))
		if len(analysis.Geometry.Types) > 0 {
			fmt.Fprintf(out, "Geometry types: %s\n", strings.Join(analysis.Geometry.Types, ", "))
		}

		zap.L().Info("analysis complete",
			zap.String("input", geojsonPath),
			zap.String("output", outputPath),
			zap.Int("features", analysis.Structure.FeatureCount),
			zap.Int("properties", len(analysis.Properties)),
		)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output markdown path (default <input stem>.structure.md)")
	rootCmd.AddCommand(analyzeCmd)
}
