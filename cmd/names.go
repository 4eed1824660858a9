package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gis-cli/internal/geojson"
	"github.com/sells-group/gis-cli/internal/names"
)

var namesEncoding string

var namesCmd = &cobra.Command{
	Use:   "names <geojson_path> <csv_path>",
	Short: "Reconcile GeoJSON feature names against a CSV name column",
	Long:  "Normalizes the localized name of every feature and every CSV row, then prints the names found only in the GeoJSON, only in the CSV, and in both.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		geojsonPath, csvPath := args[0], args[1]

		doc, err := geojson.Load(geojsonPath)
		if err != nil {
			return err
		}
		geoNames := names.FromFeatures(doc.Features)

		f, err := os.Open(csvPath)
		if err != nil {
			return eris.Wrapf(err, "names: open %s", csvPath)
		}
		defer f.Close() //nolint:errcheck

		encoding := namesEncoding
		if encoding == "" {
			encoding = cfg.Names.CSVEncoding
		}
		r, err := names.DecodeReader(f, encoding)
		if err != nil {
			return err
		}
		csvNames, err := names.FromCSV(r)
		if err != nil {
			return err
		}

		report := names.Reconcile(geoNames, csvNames)
		report.Write(cmd.OutOrStdout())

		zap.L().Info("name reconciliation complete",
			zap.Int("geojson_only", len(report.OnlyGeoJSON)),
			zap.Int("csv_only", len(report.OnlyCSV)),
			zap.Int("both", len(report.Both)),
		)
		return nil
	},
}

func init() {
	namesCmd.Flags().StringVar(&namesEncoding, "encoding", "", "CSV character encoding (IANA name, default UTF-8)")
	rootCmd.AddCommand(namesCmd)
}
