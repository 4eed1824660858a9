// Package geojson loads GeoJSON feature collections into a schema-less
// in-memory document and provides the traversal primitives shared by the
// inspection commands: runtime type naming, stringification, dot-path
// resolution, and bounded path discovery.
package geojson

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Geometry is a feature geometry: the type tag plus the raw coordinate
// structure, which nests to arbitrary depth. Raw keeps the original JSON of
// the whole geometry object for consumers that want a structured decode.
type Geometry struct {
	Type        string
	Coordinates any
	Raw         json.RawMessage
}

// Feature is one geographic entity: a geometry and an unconstrained
// properties bag. Two features may have disjoint key sets or different
// value types for the same key.
type Feature struct {
	Geometry   Geometry
	Properties map[string]any
}

// Document is a parsed feature collection. It is read-only for all tools;
// nothing mutates or persists it back.
type Document struct {
	Type         string
	TopLevelKeys []string
	HasBBox      bool
	HasCRS       bool
	CRS          any
	HasFeatures  bool
	Features     []Feature
}

// Load reads and parses a GeoJSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geojson: read %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "geojson: parse %s", path)
	}
	return doc, nil
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type rawFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

type rawDocument struct {
	Type     string          `json:"type"`
	CRS      json.RawMessage `json:"crs"`
	Features []rawFeature    `json:"features"`
}

// Parse decodes a GeoJSON document. Numbers are decoded as json.Number so
// the int/float distinction and the exact source lexeme survive.
func Parse(data []byte) (*Document, error) {
	keys, err := topLevelKeys(data)
	if err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "decode document")
	}

	doc := &Document{
		Type:         raw.Type,
		TopLevelKeys: keys,
	}
	for _, k := range keys {
		switch k {
		case "bbox":
			doc.HasBBox = true
		case "crs":
			doc.HasCRS = true
		case "features":
			doc.HasFeatures = true
		}
	}

	if len(raw.CRS) > 0 {
		crs, err := decodeValue(raw.CRS)
		if err != nil {
			return nil, eris.Wrap(err, "decode crs")
		}
		doc.CRS = crs
	}

	doc.Features = make([]Feature, 0, len(raw.Features))
	for i, rf := range raw.Features {
		f, err := decodeFeature(rf)
		if err != nil {
			return nil, eris.Wrapf(err, "decode feature %d", i)
		}
		doc.Features = append(doc.Features, f)
	}

	return doc, nil
}

func decodeFeature(rf rawFeature) (Feature, error) {
	f := Feature{Properties: map[string]any{}}

	if len(rf.Properties) > 0 {
		v, err := decodeValue(rf.Properties)
		if err != nil {
			return f, eris.Wrap(err, "decode properties")
		}
		// Non-object properties (null, scalars) are treated as an empty bag.
		if m, ok := v.(map[string]any); ok {
			f.Properties = m
		}
	}

	if len(rf.Geometry) > 0 && !bytes.Equal(bytes.TrimSpace(rf.Geometry), []byte("null")) {
		var rg rawGeometry
		if err := json.Unmarshal(rf.Geometry, &rg); err != nil {
			return f, eris.Wrap(err, "decode geometry")
		}
		coords, err := decodeValue(rg.Coordinates)
		if err != nil {
			return f, eris.Wrap(err, "decode coordinates")
		}
		f.Geometry = Geometry{
			Type:        rg.Type,
			Coordinates: coords,
			Raw:         rf.Geometry,
		}
	}

	return f, nil
}

// decodeValue decodes raw JSON into the generic value form used throughout
// the tools: map[string]any, []any, string, json.Number, bool, or nil.
func decodeValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// topLevelKeys returns the document's object keys in source order. JSON maps
// lose ordering on decode, so the order is recovered with a token scan.
func topLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, eris.Wrap(err, "decode document")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, eris.New("document is not a JSON object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrap(err, "decode document key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, eris.New("malformed document key")
		}
		keys = append(keys, key)

		if err := skipValue(dec); err != nil {
			if err == io.EOF {
				return nil, eris.New("truncated document")
			}
			return nil, eris.Wrapf(err, "decode value of %q", key)
		}
	}
	return keys, nil
}

// skipValue consumes exactly one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	for dec.More() {
		if d == '{' {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
