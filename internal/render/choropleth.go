package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Roberto-info/CDA2-Demokratie-Challange/votes"
)

const (
	mapWidth  = 900.0
	mapHeight = 620.0
	mapMargin = 24.0
)

// ChoroplethMap renders per-canton yes-percentages onto the canton
// boundaries as a standalone SVG. Cantons present in the boundaries but
// absent from the values render with the no-data fill; the map never fails
// on a partial per-canton mapping. The color scale is the diverging palette
// with 50% as its neutral midpoint.
func ChoroplethMap(boundaries *votes.Boundaries, values map[votes.Canton]*float64, title, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create map dir: %w", err)
	}

	project := newProjection(boundaries.Bound())

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		mapWidth, mapHeight, mapWidth, mapHeight)
	fmt.Fprintf(&sb, `<title>%s</title>`+"\n", escapeXML(title))
	fmt.Fprintf(&sb, `<text x="%.0f" y="18" font-size="16" font-weight="bold">%s</text>`+"\n",
		mapMargin, escapeXML(title))

	// Polygons first, labels on top.
	var labels strings.Builder
	for _, canton := range boundaries.Cantons() {
		geom, _ := boundaries.Geometry(canton)
		fill := svgColor(noDataColor)
		if v, ok := values[canton]; ok && v != nil {
			fill = svgColor(colorFor(*v))
		}
		fmt.Fprintf(&sb, `<path d="%s" fill="%s" stroke="black" stroke-width="0.8"/>`+"\n",
			geometryPath(geom, project), fill)

		if v, ok := values[canton]; ok && v != nil {
			centroid, _ := planar.CentroidArea(geom)
			cx, cy := project(centroid)
			fmt.Fprintf(&labels, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%s %.0f%%</text>`+"\n",
				cx, cy, strings.ToUpper(string(canton)), *v)
		}
	}
	sb.WriteString(labels.String())
	writeStatsBlock(&sb, values, len(boundaries.Cantons()))
	sb.WriteString("</svg>\n")

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename map: %w", err)
	}
	return nil
}

// newProjection maps the boundary coordinate system onto the SVG viewport,
// preserving aspect ratio and flipping the y axis.
func newProjection(bound orb.Bound) func(orb.Point) (float64, float64) {
	spanX := bound.Max[0] - bound.Min[0]
	spanY := bound.Max[1] - bound.Min[1]
	if spanX == 0 || spanY == 0 {
		return func(p orb.Point) (float64, float64) { return mapMargin, mapMargin }
	}
	scale := (mapWidth - 2*mapMargin) / spanX
	if s := (mapHeight - 2*mapMargin) / spanY; s < scale {
		scale = s
	}
	return func(p orb.Point) (float64, float64) {
		x := mapMargin + (p[0]-bound.Min[0])*scale
		y := mapHeight - mapMargin - (p[1]-bound.Min[1])*scale
		return x, y
	}
}

func geometryPath(geom orb.Geometry, project func(orb.Point) (float64, float64)) string {
	var sb strings.Builder
	switch g := geom.(type) {
	case orb.Polygon:
		polygonPath(&sb, g, project)
	case orb.MultiPolygon:
		for _, poly := range g {
			polygonPath(&sb, poly, project)
		}
	}
	return sb.String()
}

func polygonPath(sb *strings.Builder, poly orb.Polygon, project func(orb.Point) (float64, float64)) {
	for _, ring := range poly {
		for i, pt := range ring {
			x, y := project(pt)
			if i == 0 {
				fmt.Fprintf(sb, "M%.1f %.1f", x, y)
			} else {
				fmt.Fprintf(sb, "L%.1f %.1f", x, y)
			}
		}
		sb.WriteString("Z")
	}
}

// writeStatsBlock adds the summary box the study prints alongside each map:
// mean, median, min, max and how many cantons carried data.
func writeStatsBlock(sb *strings.Builder, values map[votes.Canton]*float64, total int) {
	var present []float64
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	if len(present) == 0 {
		fmt.Fprintf(sb, `<text x="%.0f" y="%.0f" font-size="11">Keine Kantonsdaten</text>`+"\n",
			mapMargin, mapHeight-8)
		return
	}
	sort.Float64s(present)
	var sum float64
	for _, v := range present {
		sum += v
	}
	mean := sum / float64(len(present))
	median := present[len(present)/2]
	if len(present)%2 == 0 {
		median = (present[len(present)/2-1] + present[len(present)/2]) / 2
	}
	fmt.Fprintf(sb, `<text x="%.0f" y="%.0f" font-size="11">Durchschnitt %.1f%% | Median %.1f%% | Min %.1f%% | Max %.1f%% | Kantone mit Daten %d/%d</text>`+"\n",
		mapMargin, mapHeight-8, mean, median, present[0], present[len(present)-1], len(present), total)
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
