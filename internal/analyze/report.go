package analyze

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders the analysis as a markdown report with a fixed
// section order: file info, structure overview, top-level keys, geometry,
// properties, coordinate systems, recommendations.
func RenderMarkdown(a *Analysis) string {
	var b strings.Builder

	b.WriteString("# GeoJSON Structure Analysis\n\n")
	fmt.Fprintf(&b, "**File:** `%s`  \n", a.File.Path)
	fmt.Fprintf(&b, "**Analysis Date:** %s  \n", a.File.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**File Size:** %.2f MiB\n\n", a.File.SizeMiB)

	b.WriteString("## File Information\n\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| File Path | `%s` |\n", a.File.Path)
	fmt.Fprintf(&b, "| File Size | %d bytes (%.2f MiB) |\n", a.File.SizeBytes, a.File.SizeMiB)
	fmt.Fprintf(&b, "| Analysis Date | %s |\n\n", a.File.Timestamp.Format("2006-01-02 15:04:05"))

	b.WriteString("## Structure Overview\n\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| GeoJSON Type | `%s` |\n", a.Structure.Type)
	fmt.Fprintf(&b, "| Feature Count | %d |\n", a.Structure.FeatureCount)
	fmt.Fprintf(&b, "| Has Bounding Box | %s |\n", yesNo(a.Structure.HasBBox))
	fmt.Fprintf(&b, "| Has CRS | %s |\n\n", yesNo(a.Structure.HasCRS))

	b.WriteString("### Top-level Keys\n\n")
	for _, key := range a.Structure.TopLevelKeys {
		fmt.Fprintf(&b, "- `%s`\n", key)
	}
	b.WriteString("\n")

	if len(a.Geometry.Types) > 0 {
		b.WriteString("## Geometry Analysis\n\n")
		b.WriteString("### Geometry Types\n\n")
		for _, t := range a.Geometry.Types {
			fmt.Fprintf(&b, "- `%s`\n", t)
		}
		b.WriteString("\n")

		b.WriteString("### Statistics\n\n")
		b.WriteString("| Metric | Value |\n")
		b.WriteString("|--------|-------|\n")
		fmt.Fprintf(&b, "| Average Coordinates per Feature | %.1f |\n", a.Geometry.AvgCoords)
		fmt.Fprintf(&b, "| Total Features | %d |\n", a.Structure.FeatureCount)
		if bb := a.Geometry.BBox; bb != nil {
			fmt.Fprintf(&b, "| Bounding Box | (%g, %g) to (%g, %g) |\n", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY)
		}
		b.WriteString("\n")
	}

	if len(a.Properties) > 0 {
		b.WriteString("## Properties Analysis\n\n")
		b.WriteString("### Property Summary\n\n")
		b.WriteString("| Property | Occurrences | Data Types | Unique Values |\n")
		b.WriteString("|----------|-------------|------------|---------------|\n")
		for _, p := range a.Properties {
			fmt.Fprintf(&b, "| `%s` | %d | %s | %d |\n",
				p.Key, p.Occurrences, strings.Join(p.Types, ", "), p.DistinctCount)
		}
		b.WriteString("\n")

		b.WriteString("### Sample Values\n\n")
		for _, p := range a.Properties {
			fmt.Fprintf(&b, "#### `%s`\n\n", p.Key)
			for i, sample := range p.Samples {
				fmt.Fprintf(&b, "%d. `%s`\n", i+1, sample)
			}
			b.WriteString("\n")
		}
	}

	if len(a.CRS) > 0 {
		b.WriteString("## Coordinate Systems\n\n")
		for _, crs := range a.CRS {
			fmt.Fprintf(&b, "- %s\n", crs)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations\n\n")
	b.WriteString("### Reference Data Matching\n\n")
	if candidates := JoinKeyCandidates(a.Properties); len(candidates) > 0 {
		b.WriteString("**Potential join properties for region mapping:**\n\n")
		for _, key := range candidates {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Data Quality Notes\n\n")
	if a.Structure.FeatureCount == 0 {
		b.WriteString("- No features found in the GeoJSON file\n")
	} else {
		fmt.Fprintf(&b, "- Found %d features\n", a.Structure.FeatureCount)
	}
	if len(a.Properties) == 0 {
		b.WriteString("- No properties found in features\n")
	} else {
		fmt.Fprintf(&b, "- Found %d unique properties\n", len(a.Properties))
	}
	if len(a.Geometry.Types) == 0 {
		b.WriteString("- No geometry types found\n")
	} else {
		fmt.Fprintf(&b, "- Found %d geometry type(s)\n", len(a.Geometry.Types))
	}
	b.WriteString("\n")

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
