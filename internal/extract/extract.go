// Package extract pulls per-feature values out of a GeoJSON feature
// collection at a dot-separated property address and writes them as a
// single-column CSV.
package extract

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gis-cli/internal/geojson"
)

// OutputSuffix is appended to the input file's stem for the default output.
const OutputSuffix = "_extracted_values.csv"

// Values resolves the address against every feature, in feature order.
// Unresolved addresses become the empty string; the result always has one
// entry per feature. A document without a features list is an error.
func Values(doc *geojson.Document, address string) ([]string, error) {
	if !doc.HasFeatures {
		return nil, eris.New("extract: no features found in document")
	}

	values := make([]string, 0, len(doc.Features))
	for _, f := range doc.Features {
		v, ok := geojson.Resolve(f.Properties, address)
		if !ok {
			values = append(values, "")
			continue
		}
		values = append(values, geojson.Stringify(v))
	}
	return values, nil
}

// WriteCSV writes the values under a single header cell named value.
func WriteCSV(values []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "extract: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write([]string{"value"}); err != nil {
		return eris.Wrap(err, "extract: write header")
	}
	for _, v := range values {
		if err := w.Write([]string{v}); err != nil {
			return eris.Wrap(err, "extract: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "extract: flush csv")
	}
	return nil
}

// DefaultOutputPath derives the output file name from the input file's base
// name, resolved in the current working directory.
func DefaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + OutputSuffix
}

// Summary describes one extraction run for operator output.
type Summary struct {
	Total    int
	NonEmpty int
	Empty    int
	Samples  []string
}

// Summarize counts empty and non-empty values and keeps up to sampleCap
// non-empty samples in feature order.
func Summarize(values []string, sampleCap int) Summary {
	s := Summary{Total: len(values)}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			s.Empty++
			continue
		}
		s.NonEmpty++
		if len(s.Samples) < sampleCap {
			s.Samples = append(s.Samples, v)
		}
	}
	return s
}
