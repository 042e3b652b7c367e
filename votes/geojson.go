package votes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Boundaries holds the canton boundary geometries, keyed by canton code.
// The geometries are reference data: loaded once, never mutated, borrowed
// read-only by the renderer.
type Boundaries struct {
	geometries map[Canton]orb.Geometry
}

// Properties a feature may carry its canton code or name under, depending on
// which national dataset the GeoJSON was derived from.
var boundaryKeyProperties = []string{"code", "canton", "abbr", "KUERZEL"}
var boundaryNameProperties = []string{"name", "NAME"}

// LoadBoundaries reads a GeoJSON feature collection of canton polygons.
// Features are keyed by canton code; a feature carrying a code outside the
// fixed set fails the load with the offending value named.
func LoadBoundaries(path string) (*Boundaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundaries: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	b := &Boundaries{geometries: make(map[Canton]orb.Geometry, len(fc.Features))}
	for i, feature := range fc.Features {
		code, err := featureCanton(feature)
		if err != nil {
			return nil, fmt.Errorf("boundary feature %d: %w", i, err)
		}
		b.geometries[code] = feature.Geometry
	}
	if len(b.geometries) == 0 {
		return nil, fmt.Errorf("no canton features in %s", filepath.Base(path))
	}
	return b, nil
}

func featureCanton(feature *geojson.Feature) (Canton, error) {
	for _, prop := range boundaryKeyProperties {
		raw, ok := feature.Properties[prop].(string)
		if !ok || raw == "" {
			continue
		}
		code := foldText(raw)
		if !IsCanton(code) {
			return "", fmt.Errorf("%w: %q", ErrUnknownCanton, raw)
		}
		return Canton(code), nil
	}
	// Fall back to matching the display name.
	for _, prop := range boundaryNameProperties {
		raw, ok := feature.Properties[prop].(string)
		if !ok || raw == "" {
			continue
		}
		for code, name := range cantonNames {
			if foldText(name) == foldText(raw) {
				return code, nil
			}
		}
		return "", fmt.Errorf("%w: no canton named %q", ErrUnknownCanton, raw)
	}
	return "", fmt.Errorf("feature has no canton code or name property")
}

// Geometry returns the boundary of the canton.
func (b *Boundaries) Geometry(c Canton) (orb.Geometry, bool) {
	geom, ok := b.geometries[c]
	return geom, ok
}

// Cantons lists the cantons with a boundary, in code order.
func (b *Boundaries) Cantons() []Canton {
	out := make([]Canton, 0, len(b.geometries))
	for c := range b.geometries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bound returns the combined bounding box of all boundaries.
func (b *Boundaries) Bound() orb.Bound {
	var bound orb.Bound
	first := true
	for _, geom := range b.geometries {
		if first {
			bound = geom.Bound()
			first = false
			continue
		}
		bound = bound.Union(geom.Bound())
	}
	return bound
}
