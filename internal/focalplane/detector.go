// Package focalplane lays out detectors on the focal surface and maps
// focal-plane positions to pixel coordinates on the detector that
// contains them. All focal-plane lengths are millimetres.
package focalplane

import (
	"errors"
	"fmt"
	"math"

	"warpsim/internal/plane"
)

// ErrBadGeometry marks an unusable detector layout. It is reported at
// construction time; Assign never returns it.
var ErrBadGeometry = errors.New("focalplane: invalid geometry")

// Detector places one chip on the focal plane. OffsetX/OffsetY locate the
// chip center, RotationDeg turns the chip counter-clockwise about that
// center, and PixelScale is the pixel pitch in millimetres. Pixel
// coordinates run from (0,0) at one corner to (Width,Height), with the
// chip center at (Width/2, Height/2).
type Detector struct {
	ID          int
	OffsetX     float64
	OffsetY     float64
	RotationDeg float64
	PixelScale  float64
	Width       int
	Height      int
}

func (d Detector) validate() error {
	for _, v := range []float64{d.OffsetX, d.OffsetY, d.RotationDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: detector %d has a non-finite placement", ErrBadGeometry, d.ID)
		}
	}
	if d.PixelScale <= 0 || math.IsNaN(d.PixelScale) || math.IsInf(d.PixelScale, 0) {
		return fmt.Errorf("%w: detector %d pixel scale %v must be positive", ErrBadGeometry, d.ID, d.PixelScale)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: detector %d size %dx%d must be positive", ErrBadGeometry, d.ID, d.Width, d.Height)
	}
	return nil
}

// toPixel maps a focal-plane point into this detector's pixel frame. The
// result may lie outside the active area; contains decides membership.
func (d Detector) toPixel(p plane.Point) plane.Point {
	local := plane.Rotation(-d.RotationDeg * degToRad).Apply(p.Sub(plane.Point{X: d.OffsetX, Y: d.OffsetY}))
	return plane.Point{
		X: local.X/d.PixelScale + float64(d.Width)/2,
		Y: local.Y/d.PixelScale + float64(d.Height)/2,
	}
}

// toFocal is the exact inverse of toPixel.
func (d Detector) toFocal(px plane.Point) plane.Point {
	local := plane.Point{
		X: (px.X - float64(d.Width)/2) * d.PixelScale,
		Y: (px.Y - float64(d.Height)/2) * d.PixelScale,
	}
	return plane.Rotation(d.RotationDeg * degToRad).Apply(local).Add(plane.Point{X: d.OffsetX, Y: d.OffsetY})
}

// contains applies the half-open boundary convention: the lower edge of
// the active area is inside, the upper edge outside. A point landing
// exactly on pixel 0 is on-chip; one landing exactly on pixel Width is
// already on the far side.
func (d Detector) contains(px plane.Point) bool {
	return px.X >= 0 && px.X < float64(d.Width) &&
		px.Y >= 0 && px.Y < float64(d.Height)
}

// PixelJacobian returns the constant derivative d(pixel)/d(focal) of this
// detector's affine map.
func (d Detector) PixelJacobian() plane.Mat2 {
	return plane.Rotation(-d.RotationDeg * degToRad).Scale(1 / d.PixelScale)
}

const degToRad = math.Pi / 180
