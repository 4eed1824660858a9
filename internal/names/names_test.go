package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gis-cli/internal/geojson"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "AddisAbaba", expected: "AddisAbaba"},
		{name: "spaces removed", input: "Addis Ababa", expected: "AddisAbaba"},
		{name: "province suffix stripped", input: "Amhara Province", expected: "Amhara"},
		{name: "county suffix stripped", input: "Orange County", expected: "Orange"},
		{name: "suffix mid-string stripped", input: "Amhara Region Province", expected: "AmharaRegion"},
		{name: "region is not a suffix", input: "Amhara Region", expected: "AmharaRegion"},
		{name: "case sensitive", input: "amhara province", expected: "amharaprovince"},
		{name: "tabs and newlines removed", input: "Addis\tAbaba\n", expected: "AddisAbaba"},
		{name: "empty string", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Addis Ababa",
		"Amhara Region Province",
		"Orange County",
		" Province County ",
		"",
		"no-op",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", in)
	}
}

func TestFromFeatures(t *testing.T) {
	doc, err := geojson.Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [
			{"properties": {"tags": {"name:en": "Addis Ababa"}}},
			{"properties": {"tags": {"name:en": "Amhara Region Province"}}},
			{"properties": {}},
			{"properties": {"tags": "not an object"}}
		]
	}`))
	require.NoError(t, err)

	set := FromFeatures(doc.Features)

	assert.True(t, set.Contains("AddisAbaba"))
	assert.True(t, set.Contains("AmharaRegion"))
	assert.True(t, set.Contains(""), "missing names contribute the empty string")
	assert.Len(t, set, 3)
}

func TestFromCSV(t *testing.T) {
	set, err := FromCSV(strings.NewReader("id,name\n1,Addis Ababa\n2,Amhara Region\n3,\n"))
	require.NoError(t, err)

	assert.True(t, set.Contains("AddisAbaba"))
	assert.True(t, set.Contains("AmharaRegion"))
	assert.True(t, set.Contains(""))
	assert.Len(t, set, 3)
}

func TestFromCSVHeaderOnly(t *testing.T) {
	set, err := FromCSV(strings.NewReader("name\n"))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestFromCSVMissingNameColumn(t *testing.T) {
	_, err := FromCSV(strings.NewReader("id,label\n1,Oromia\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name" column`)
}

func TestFromCSVEmpty(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFromCSVBOMHeader(t *testing.T) {
	set, err := FromCSV(strings.NewReader("\ufeffname\nOromia\n"))
	require.NoError(t, err)
	assert.True(t, set.Contains("Oromia"))
}

func TestDecodeReader(t *testing.T) {
	r := strings.NewReader("name\nM\xfcnchen\n")

	decoded, err := DecodeReader(r, "windows-1252")
	require.NoError(t, err)

	set, err := FromCSV(decoded)
	require.NoError(t, err)
	assert.True(t, set.Contains("München"))
}

func TestDecodeReaderPassthrough(t *testing.T) {
	r := strings.NewReader("x")
	out, err := DecodeReader(r, "")
	require.NoError(t, err)
	assert.Equal(t, r, out)

	out, err = DecodeReader(r, "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, r, out)
}

func TestDecodeReaderUnknownEncoding(t *testing.T) {
	_, err := DecodeReader(strings.NewReader("x"), "no-such-charset")
	assert.Error(t, err)
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name        string
		geo         []string
		csv         []string
		onlyGeoJSON []string
		onlyCSV     []string
		both        []string
	}{
		{
			name: "identical names match",
			geo:  []string{"AddisAbaba"},
			csv:  []string{"AddisAbaba"},
			both: []string{"AddisAbaba"},
		},
		{
			name:        "disjoint sets",
			geo:         []string{"Oromia"},
			csv:         []string{"Amhara"},
			onlyGeoJSON: []string{"Oromia"},
			onlyCSV:     []string{"Amhara"},
		},
		{
			name:        "empty csv",
			geo:         []string{"Afar", "Oromia"},
			csv:         nil,
			onlyGeoJSON: []string{"Afar", "Oromia"},
		},
		{
			name:        "sorted output",
			geo:         []string{"Tigray", "Afar", "Oromia"},
			csv:         []string{"Oromia"},
			onlyGeoJSON: []string{"Afar", "Tigray"},
			both:        []string{"Oromia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo, csvNames := Set{}, Set{}
			for _, n := range tt.geo {
				geo.Add(n)
			}
			for _, n := range tt.csv {
				csvNames.Add(n)
			}

			r := Reconcile(geo, csvNames)
			assert.Equal(t, tt.onlyGeoJSON, r.OnlyGeoJSON)
			assert.Equal(t, tt.onlyCSV, r.OnlyCSV)
			assert.Equal(t, tt.both, r.Both)
		})
	}
}

// The three reported groups are pairwise disjoint and their union equals
// the union of the inputs.
func TestReconcilePartition(t *testing.T) {
	geo := Set{"a": {}, "b": {}, "c": {}, "": {}}
	csvNames := Set{"b": {}, "c": {}, "d": {}}

	r := Reconcile(geo, csvNames)

	seen := Set{}
	for _, group := range [][]string{r.OnlyGeoJSON, r.OnlyCSV, r.Both} {
		for _, name := range group {
			assert.False(t, seen.Contains(name), "name %q appears in two groups", name)
			seen.Add(name)
		}
	}

	union := Set{}
	for n := range geo {
		union.Add(n)
	}
	for n := range csvNames {
		union.Add(n)
	}
	assert.Equal(t, union, seen)
}

func TestReportWrite(t *testing.T) {
	r := Report{
		OnlyGeoJSON: []string{"Afar"},
		OnlyCSV:     []string{"Sidama"},
		Both:        []string{"AddisAbaba", "Oromia"},
	}

	var sb strings.Builder
	r.Write(&sb)

	expected := "GeoJSON names not in CSV:\n" +
		"  Afar\n" +
		"\n" +
		"CSV names not in GeoJSON:\n" +
		"  Sidama\n" +
		"\n" +
		"Names present in both:\n" +
		"  AddisAbaba\n" +
		"  Oromia\n"
	assert.Equal(t, expected, sb.String())
}
