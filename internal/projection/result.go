package projection

import "warpsim/internal/plane"

// Status classifies the per-source outcome of a batch projection. Numeric
// failures never abort a batch; every input source gets a slot carrying
// either a pixel position or the reason there is none.
type Status uint8

const (
	// StatusOK: the source landed on a detector's active area.
	StatusOK Status = iota
	// StatusUnassigned: projected fine but fell in a chip gap or outside
	// the mosaic. Expected for real fields, not a failure.
	StatusUnassigned
	// StatusSingular: the source sits at or numerically near the
	// projection antipode, where the gnomonic map is undefined.
	StatusSingular
	// StatusNoConverge: the inverse-distortion iteration ran out of
	// budget without reaching the residual tolerance.
	StatusNoConverge
)

// String returns the wire-friendly name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnassigned:
		return "unassigned"
	case StatusSingular:
		return "singular"
	case StatusNoConverge:
		return "no_converge"
	default:
		return "unknown"
	}
}

// Result is the projection outcome for one source. DetectorID and Pixel
// are meaningful only when Status is StatusOK. Jacobian is d(pixel)/d(sky
// radians) and is filled only when Jacobians were requested and the
// source was assigned.
type Result struct {
	SourceID   string
	Status     Status
	DetectorID int
	Pixel      plane.Point
	Jacobian   *plane.Mat2
}

// Batch is a full projection outcome: one Result per input source, in
// input order, plus aggregate failure counts so callers can gauge a run
// without walking every element.
type Batch struct {
	Results    []Result
	Assigned   int
	Unassigned int
	Singular   int
	NoConverge int
}

func (b *Batch) add(r Result) {
	b.Results = append(b.Results, r)
	switch r.Status {
	case StatusOK:
		b.Assigned++
	case StatusUnassigned:
		b.Unassigned++
	case StatusSingular:
		b.Singular++
	case StatusNoConverge:
		b.NoConverge++
	}
}
