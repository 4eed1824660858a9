package geojson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
	"type": "FeatureCollection",
	"bbox": [0, 0, 2, 2],
	"crs": {"type": "name", "properties": {"name": "EPSG:4326"}},
	"features": [
		{
			"type": "Feature",
			"properties": {"tags": {"name:en": "Oromia"}, "population": 35000000},
			"geometry": {"type": "Point", "coordinates": [1.5, 0.5]}
		},
		{
			"type": "Feature",
			"properties": {},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
		}
	]
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "FeatureCollection", doc.Type)
	assert.Equal(t, []string{"type", "bbox", "crs", "features"}, doc.TopLevelKeys)
	assert.True(t, doc.HasBBox)
	assert.True(t, doc.HasCRS)
	assert.True(t, doc.HasFeatures)
	assert.NotNil(t, doc.CRS)
	require.Len(t, doc.Features, 2)

	f := doc.Features[0]
	assert.Equal(t, "Point", f.Geometry.Type)
	tags, ok := f.Properties["tags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Oromia", tags["name:en"])
	assert.Equal(t, json.Number("35000000"), f.Properties["population"])

	assert.Empty(t, doc.Features[1].Properties)
	assert.Equal(t, "Polygon", doc.Features[1].Geometry.Type)
}

func TestParseNoFeatures(t *testing.T) {
	doc, err := Parse([]byte(`{"type": "FeatureCollection"}`))
	require.NoError(t, err)
	assert.False(t, doc.HasFeatures)
	assert.Empty(t, doc.Features)
	assert.False(t, doc.HasBBox)
	assert.Nil(t, doc.CRS)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed JSON", input: `{"type": "FeatureCollection",`},
		{name: "not an object", input: `[1, 2, 3]`},
		{name: "truncated nesting", input: `{"features": [{"properties": {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseNullTolerance(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{"type": "Feature", "properties": null, "geometry": null}]
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Features, 1)
	assert.Empty(t, doc.Features[0].Properties)
	assert.Empty(t, doc.Features[0].Geometry.Type)
	assert.Nil(t, doc.Features[0].Geometry.Coordinates)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Features, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.geojson"))
	assert.Error(t, err)
}
