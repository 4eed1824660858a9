// Package names reconciles the names found in a GeoJSON feature collection
// against the names found in a CSV reference table.
package names

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/gis-cli/internal/geojson"
)

// FeatureNameAddress is where the localized name lives in a feature's
// properties bag.
const FeatureNameAddress = "tags.name:en"

// Normalize makes GeoJSON and CSV names comparable. Suffix removal happens
// before whitespace removal and no case folding is applied.
func Normalize(name string) string {
	name = strings.ReplaceAll(name, " Province", "")
	name = strings.ReplaceAll(name, " County", "")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}

// Set is a set of normalized names. The empty string is a valid member:
// a feature or row with no name still contributes one entry.
type Set map[string]struct{}

// Add inserts a normalized name.
func (s Set) Add(name string) { s[name] = struct{}{} }

// Contains reports membership.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// FromFeatures collects the normalized name of every feature. Features
// without a resolvable name contribute the empty string.
func FromFeatures(features []geojson.Feature) Set {
	set := make(Set, len(features))
	for _, f := range features {
		var name string
		if v, ok := geojson.Resolve(f.Properties, FeatureNameAddress); ok {
			name = geojson.Stringify(v)
		}
		set.Add(Normalize(name))
	}
	return set
}

// FromCSV collects the normalized value of the name column from every row.
// A header without a name column is a fatal shape error.
func FromCSV(r io.Reader) (Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("names: csv is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "names: read csv header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	nameIdx := -1
	for i, col := range header {
		if col == "name" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, eris.New(`names: csv has no "name" column`)
	}

	set := Set{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "names: read csv row")
		}
		var name string
		if nameIdx < len(record) {
			name = record[nameIdx]
		}
		set.Add(Normalize(name))
	}
	return set, nil
}

// DecodeReader wraps r with a charset decoder when encoding names a
// non-UTF-8 IANA charset. An empty or utf-8 encoding returns r unchanged.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") {
		return r, nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, eris.Wrapf(err, "names: unsupported encoding %q", encoding)
	}
	return enc.NewDecoder().Reader(r), nil
}

// Report is the three-way partition of two name sets. Each list is sorted
// lexicographically; the lists are pairwise disjoint and their union equals
// the union of the inputs.
type Report struct {
	OnlyGeoJSON []string
	OnlyCSV     []string
	Both        []string
}

// Reconcile partitions the GeoJSON and CSV name sets.
func Reconcile(geo, csvNames Set) Report {
	var r Report
	for name := range geo {
		if csvNames.Contains(name) {
			r.Both = append(r.Both, name)
		} else {
			r.OnlyGeoJSON = append(r.OnlyGeoJSON, name)
		}
	}
	for name := range csvNames {
		if !geo.Contains(name) {
			r.OnlyCSV = append(r.OnlyCSV, name)
		}
	}
	sort.Strings(r.OnlyGeoJSON)
	sort.Strings(r.OnlyCSV)
	sort.Strings(r.Both)
	return r
}

// Write prints the three lists under their fixed section headers, each
// entry indented by two spaces.
func (r Report) Write(w io.Writer) {
	writeSection(w, "GeoJSON names not in CSV:", r.OnlyGeoJSON)
	fmt.Fprintln(w)
	writeSection(w, "CSV names not in GeoJSON:", r.OnlyCSV)
	fmt.Fprintln(w)
	writeSection(w, "Names present in both:", r.Both)
}

func writeSection(w io.Writer, header string, entries []string) {
	fmt.Fprintln(w, header)
	for _, name := range entries {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
