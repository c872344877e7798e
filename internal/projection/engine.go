// Package projection composes attitude, distortion, and focal-plane
// geometry into the full sky-to-pixel transform and its inverse.
//
// The forward pipeline runs Attitude -> Distortion -> Geometry: a source
// is projected onto the boresight tangent plane (radians), scaled by the
// focal length onto the ideal focal plane (millimetres), warped by the
// distortion model, and finally assigned to the detector containing it.
// The inverse runs the exact reverse order with each stage inverted.
package projection

import (
	"errors"
	"fmt"

	"warpsim/internal/attitude"
	"warpsim/internal/distortion"
	"warpsim/internal/focalplane"
	"warpsim/internal/plane"
	"warpsim/internal/starfield"
)

// ErrBadEngine marks an engine configuration that cannot project
// anything. Construction fails fast; a built engine never returns it.
var ErrBadEngine = errors.New("projection: invalid engine configuration")

// Engine is the configured projection pipeline. It holds only immutable
// models, keeps no per-call state, and is safe for concurrent read-only
// use: identical inputs always produce identical outputs.
type Engine struct {
	pointing      attitude.Pointing
	model         distortion.Model
	geometry      *focalplane.Geometry
	focalLengthMM float64
}

// New validates the configuration and builds an engine around it.
func New(p attitude.Pointing, m distortion.Model, g *focalplane.Geometry, focalLengthMM float64) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEngine, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil distortion model", ErrBadEngine)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: nil focal-plane geometry", ErrBadEngine)
	}
	if !(focalLengthMM > 0) {
		return nil, fmt.Errorf("%w: focal length %v must be positive", ErrBadEngine, focalLengthMM)
	}
	return &Engine{pointing: p, model: m, geometry: g, focalLengthMM: focalLengthMM}, nil
}

// Pointing returns the boresight the engine was built with.
func (e *Engine) Pointing() attitude.Pointing { return e.pointing }

// Geometry returns the focal-plane geometry the engine was built with.
func (e *Engine) Geometry() *focalplane.Geometry { return e.geometry }

// SkyToPixel projects a field of sources onto the focal plane. The batch
// holds one result per source in input order; singular or unassigned
// sources are marked, never dropped, and never fail the batch.
func (e *Engine) SkyToPixel(field starfield.Field) Batch {
	return e.project(field, false)
}

// SkyToPixelWithJacobians is SkyToPixel plus the local error-propagation
// Jacobian d(pixel)/d(sky radians) for every assigned source.
func (e *Engine) SkyToPixelWithJacobians(field starfield.Field) Batch {
	return e.project(field, true)
}

func (e *Engine) project(field starfield.Field, withJacobians bool) Batch {
	sky := make([]attitude.Sky, len(field))
	for i, src := range field {
		sky[i] = attitude.Sky{RADeg: src.RADeg, DecDeg: src.DecDeg}
	}
	tangent, valid := attitude.ToTangentPlane(e.pointing, sky)

	// Collect the projectable points and push them through distortion and
	// detector assignment in one batch each.
	idx := make([]int, 0, len(field))
	ideal := make([]plane.Point, 0, len(field))
	for i, ok := range valid {
		if ok {
			idx = append(idx, i)
			ideal = append(ideal, tangent[i].Scale(e.focalLengthMM))
		}
	}
	warped := e.model.Apply(ideal)
	assignments := e.geometry.Assign(warped)

	var jacobians []plane.Mat2
	if withJacobians {
		jacobians = e.model.Jacobian(ideal)
	}

	batch := Batch{Results: make([]Result, 0, len(field))}
	next := 0
	for i, src := range field {
		if !valid[i] {
			batch.add(Result{SourceID: src.ID, Status: StatusSingular})
			continue
		}
		a := assignments[next]
		if !a.Assigned {
			batch.add(Result{SourceID: src.ID, Status: StatusUnassigned})
			next++
			continue
		}
		res := Result{
			SourceID:   src.ID,
			Status:     StatusOK,
			DetectorID: a.DetectorID,
			Pixel:      a.Pixel,
		}
		if withJacobians {
			if j, ok := e.localJacobian(sky[i], jacobians[next], a.DetectorID); ok {
				res.Jacobian = &j
			}
		}
		batch.add(res)
		next++
	}
	return batch
}

// PixelToSky maps pixel coordinates on one detector back to celestial
// positions. The mask flags which points survived the inverse-distortion
// iteration; failed points keep their slot with a zero value. Only an
// unknown detector ID is a call-level error.
func (e *Engine) PixelToSky(detectorID int, pixels []plane.Point) ([]attitude.Sky, []bool, error) {
	focal, err := e.geometry.PixelToFocal(detectorID, pixels)
	if err != nil {
		return nil, nil, err
	}
	ideal, converged := e.model.Invert(focal)

	tangent := make([]plane.Point, len(ideal))
	for i, pt := range ideal {
		tangent[i] = pt.Scale(1 / e.focalLengthMM)
	}
	sky := attitude.ToSky(e.pointing, tangent)

	// Zero out the slots that never converged so no caller mistakes a
	// deprojected garbage value for a position.
	for i, ok := range converged {
		if !ok {
			sky[i] = attitude.Sky{}
		}
	}
	return sky, converged, nil
}

// LocalJacobians returns d(pixel)/d(sky radians) for each source, with a
// per-source mask that is false for singular or unassigned sources.
func (e *Engine) LocalJacobians(field starfield.Field) ([]plane.Mat2, []bool) {
	batch := e.project(field, true)
	out := make([]plane.Mat2, len(batch.Results))
	ok := make([]bool, len(batch.Results))
	for i, r := range batch.Results {
		if r.Jacobian != nil {
			out[i] = *r.Jacobian
			ok[i] = true
		}
	}
	return out, ok
}

// localJacobian chains the three stage derivatives:
// pixel-per-focal * distortion * focal-length-scaled gnomonic.
func (e *Engine) localJacobian(s attitude.Sky, distJac plane.Mat2, detectorID int) (plane.Mat2, bool) {
	skyJac, ok := attitude.SkyJacobian(e.pointing, s)
	if !ok {
		return plane.Mat2{}, false
	}
	det, ok := e.geometry.Detector(detectorID)
	if !ok {
		return plane.Mat2{}, false
	}
	return det.PixelJacobian().Mul(distJac).Mul(skyJac.Scale(e.focalLengthMM)), true
}
