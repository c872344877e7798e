package focalplane

import (
	"fmt"
	"sort"

	"warpsim/internal/plane"
)

// Geometry is the read-only mosaic of detectors sharing one focal-plane
// frame. Construct it once from the instrument description and share it
// freely; it never changes afterwards.
type Geometry struct {
	detectors []Detector
	byID      map[int]int
}

// NewGeometry validates the detector list and fixes the assignment order.
// Detectors are kept sorted by ID, which makes the overlap tie-break
// below independent of the order the caller listed them in.
func NewGeometry(detectors []Detector) (*Geometry, error) {
	if len(detectors) == 0 {
		return nil, fmt.Errorf("%w: no detectors", ErrBadGeometry)
	}
	sorted := append([]Detector{}, detectors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]int, len(sorted))
	for i, d := range sorted {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate detector id %d", ErrBadGeometry, d.ID)
		}
		byID[d.ID] = i
	}
	return &Geometry{detectors: sorted, byID: byID}, nil
}

// Detectors returns the detectors in assignment order (ascending ID).
func (g *Geometry) Detectors() []Detector {
	return append([]Detector{}, g.detectors...)
}

// Detector looks up a detector by ID.
func (g *Geometry) Detector(id int) (Detector, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Detector{}, false
	}
	return g.detectors[i], true
}

// Assignment is the outcome of placing one focal-plane point. A point in
// an inter-chip gap or outside the mosaic is simply unassigned; that is
// an expected result, not a failure.
type Assignment struct {
	DetectorID int
	Pixel      plane.Point
	Assigned   bool
}

// Assign places each focal-plane point on the detector that contains it.
// Physical mosaics do not overlap, but when a study configures
// overlapping chips the lowest detector ID deterministically wins.
func (g *Geometry) Assign(pts []plane.Point) []Assignment {
	out := make([]Assignment, len(pts))
	for i, pt := range pts {
		for _, d := range g.detectors {
			px := d.toPixel(pt)
			if d.contains(px) {
				out[i] = Assignment{DetectorID: d.ID, Pixel: px, Assigned: true}
				break
			}
		}
	}
	return out
}

// PixelToFocal maps pixel coordinates on a named detector back to the
// shared focal-plane frame. The affine inverse is exact, so every pixel
// maps cleanly; only an unknown detector ID is an error.
func (g *Geometry) PixelToFocal(detectorID int, pixels []plane.Point) ([]plane.Point, error) {
	d, ok := g.Detector(detectorID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown detector id %d", ErrBadGeometry, detectorID)
	}
	out := make([]plane.Point, len(pixels))
	for i, px := range pixels {
		out[i] = d.toFocal(px)
	}
	return out, nil
}
