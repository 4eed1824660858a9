// Package analyze aggregates per-property and per-geometry statistics over a
// GeoJSON feature collection and renders them as a markdown report.
package analyze

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	gj "github.com/sells-group/gis-cli/internal/geojson"
)

// OutputSuffix is appended to the input file's stem for the default report.
const OutputSuffix = ".structure.md"

// FileInfo is the metadata block at the top of the report.
type FileInfo struct {
	Path      string
	SizeBytes int64
	SizeMiB   float64
	Timestamp time.Time
}

// StatFile collects file metadata, with the size in MiB rounded to two
// decimals and the timestamp taken at analysis time.
func StatFile(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, eris.Wrapf(err, "analyze: stat %s", path)
	}
	return FileInfo{
		Path:      path,
		SizeBytes: st.Size(),
		SizeMiB:   math.Round(float64(st.Size())/(1024*1024)*100) / 100,
		Timestamp: time.Now(),
	}, nil
}

// PropertyProfile is the per-key aggregate across all features.
type PropertyProfile struct {
	Key           string
	Occurrences   int
	Types         []string // first-seen order
	Samples       []string // capped at the configured sample limit
	DistinctCount int
}

// GeometryProfile aggregates geometry statistics across the collection.
type GeometryProfile struct {
	Types     []string // sorted
	AvgCoords float64  // mean numeric leaves over features with non-empty coordinates
	BBox      *BBox    // best-effort, nil when no geometry decoded
}

// BBox is the collection bounding box in coordinate order x, y.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Structure describes the document's top-level shape.
type Structure struct {
	Type         string
	FeatureCount int
	HasBBox      bool
	HasCRS       bool
	TopLevelKeys []string
}

// Analysis is the full result of one analyzer run.
type Analysis struct {
	File       FileInfo
	Structure  Structure
	Properties []PropertyProfile // occurrence desc, encounter order on ties
	Geometry   GeometryProfile
	CRS        []string
}

// Analyzer is the aggregation context for one run. It holds all
// accumulation state so nothing lives at package level.
type Analyzer struct {
	sampleCap int
	propOrder []string
	props     map[string]*propAgg
	geomOrder []string
	geomSeen  map[string]struct{}
	coordSums float64
	coordRuns int
	bbox      *BBox
	crs       []string
}

type propAgg struct {
	occurrences int
	types       []string
	typeSeen    map[string]struct{}
	samples     []string
	distinct    map[string]struct{}
}

// New returns an analyzer keeping up to sampleCap sample values per property.
func New(sampleCap int) *Analyzer {
	return &Analyzer{
		sampleCap: sampleCap,
		props:     make(map[string]*propAgg),
		geomSeen:  make(map[string]struct{}),
	}
}

// Run performs the property and geometry passes and assembles the analysis.
func (a *Analyzer) Run(doc *gj.Document, info FileInfo) *Analysis {
	for _, f := range doc.Features {
		a.observeProperties(f.Properties)
	}
	for _, f := range doc.Features {
		a.observeGeometry(f.Geometry)
	}
	if doc.CRS != nil {
		a.crs = append(a.crs, gj.Stringify(doc.CRS))
	}

	return &Analysis{
		File: info,
		Structure: Structure{
			Type:         doc.Type,
			FeatureCount: len(doc.Features),
			HasBBox:      doc.HasBBox,
			HasCRS:       doc.HasCRS,
			TopLevelKeys: doc.TopLevelKeys,
		},
		Properties: a.rankedProperties(),
		Geometry: GeometryProfile{
			Types:     a.sortedGeometryTypes(),
			AvgCoords: a.avgCoords(),
			BBox:      a.bbox,
		},
		CRS: a.crs,
	}
}

// observeProperties folds one feature's property bag into the aggregates.
// Keys are visited in sorted order so encounter order is deterministic.
func (a *Analyzer) observeProperties(props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		agg, ok := a.props[key]
		if !ok {
			agg = &propAgg{
				typeSeen: make(map[string]struct{}),
				distinct: make(map[string]struct{}),
			}
			a.props[key] = agg
			a.propOrder = append(a.propOrder, key)
		}

		agg.occurrences++

		typeName := gj.TypeName(value)
		if _, seen := agg.typeSeen[typeName]; !seen {
			agg.typeSeen[typeName] = struct{}{}
			agg.types = append(agg.types, typeName)
		}

		s := gj.Stringify(value)
		if len(agg.samples) < a.sampleCap {
			agg.samples = append(agg.samples, s)
		}
		agg.distinct[s] = struct{}{}
	}
}

// observeGeometry folds one feature's geometry into the aggregates: the
// type tag set, the numeric coordinate leaf count, and the bounding box.
func (a *Analyzer) observeGeometry(g gj.Geometry) {
	if g.Type != "" {
		if _, seen := a.geomSeen[g.Type]; !seen {
			a.geomSeen[g.Type] = struct{}{}
			a.geomOrder = append(a.geomOrder, g.Type)
		}
	}

	if hasCoordinates(g.Coordinates) {
		a.coordSums += float64(CountCoordinates(g.Coordinates))
		a.coordRuns++
	}

	a.extendBBox(g.Raw)
}

// extendBBox decodes the geometry with go-geom and grows the collection
// bounds. Decode failures are tolerated; the bbox is advisory output.
func (a *Analyzer) extendBBox(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var g geom.T
	if err := geomjson.Unmarshal(raw, &g); err != nil || g == nil || g.Empty() {
		return
	}
	b := g.Bounds()
	if b == nil || b.IsEmpty() || b.Layout().Stride() < 2 {
		return
	}
	if a.bbox == nil {
		a.bbox = &BBox{MinX: b.Min(0), MinY: b.Min(1), MaxX: b.Max(0), MaxY: b.Max(1)}
		return
	}
	a.bbox.MinX = math.Min(a.bbox.MinX, b.Min(0))
	a.bbox.MinY = math.Min(a.bbox.MinY, b.Min(1))
	a.bbox.MaxX = math.Max(a.bbox.MaxX, b.Max(0))
	a.bbox.MaxY = math.Max(a.bbox.MaxY, b.Max(1))
}

// CountCoordinates counts numeric leaves in a coordinate structure: a
// number contributes 1, a sequence the sum over its elements, anything
// else 0.
func CountCoordinates(coords any) int {
	switch c := coords.(type) {
	case json.Number:
		return 1
	case []any:
		total := 0
		for _, elem := range c {
			total += CountCoordinates(elem)
		}
		return total
	default:
		return 0
	}
}

// hasCoordinates reports whether the coordinate structure is non-empty.
// Features without one are excluded from the coordinate mean.
func hasCoordinates(coords any) bool {
	switch c := coords.(type) {
	case json.Number:
		return true
	case []any:
		return len(c) > 0
	default:
		return false
	}
}

func (a *Analyzer) avgCoords() float64 {
	if a.coordRuns == 0 {
		return 0
	}
	return a.coordSums / float64(a.coordRuns)
}

func (a *Analyzer) sortedGeometryTypes() []string {
	types := append([]string(nil), a.geomOrder...)
	sort.Strings(types)
	return types
}

// rankedProperties orders profiles by occurrence count descending, keeping
// encounter order for equal counts.
func (a *Analyzer) rankedProperties() []PropertyProfile {
	profiles := make([]PropertyProfile, 0, len(a.propOrder))
	for _, key := range a.propOrder {
		agg := a.props[key]
		profiles = append(profiles, PropertyProfile{
			Key:           key,
			Occurrences:   agg.occurrences,
			Types:         agg.types,
			Samples:       agg.samples,
			DistinctCount: len(agg.distinct),
		})
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Occurrences > profiles[j].Occurrences
	})
	return profiles
}

// joinKeywords flags likely join keys for external reference-data matching.
var joinKeywords = []string{"name", "region", "province", "state", "area", "id"}

// JoinKeyCandidates returns the property keys whose lowercase form contains
// one of the join keywords, in report order.
func JoinKeyCandidates(profiles []PropertyProfile) []string {
	var out []string
	for _, p := range profiles {
		lower := strings.ToLower(p.Key)
		for _, kw := range joinKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, p.Key)
				break
			}
		}
	}
	return out
}

// DefaultOutputPath derives the report file name from the input file's base
// name, resolved in the current working directory.
func DefaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + OutputSuffix
}
