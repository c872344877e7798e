package sim

import "time"

// ResultRow is one projected source flattened for output. DetectorID is
// -1 whenever the source did not land on a chip; Jacobian, when present,
// is d(pixel)/d(sky radians) in row-major order.
type ResultRow struct {
	RunID      string    `json:"run_id"`
	SourceID   string    `json:"source_id"`
	RADeg      float64   `json:"ra_deg"`
	DecDeg     float64   `json:"dec_deg"`
	Status     string    `json:"status"`
	DetectorID int       `json:"detector_id"`
	PixelX     float64   `json:"pixel_x"`
	PixelY     float64   `json:"pixel_y"`
	Jacobian   []float64 `json:"jacobian,omitempty"`
	Timestamp  time.Time `json:"ts"`
}

// SummaryRow closes a run with its aggregate counts.
type SummaryRow struct {
	RunID      string    `json:"run_id"`
	Instrument string    `json:"instrument"`
	Sources    int       `json:"sources"`
	Assigned   int       `json:"assigned"`
	Unassigned int       `json:"unassigned"`
	Singular   int       `json:"singular"`
	NoConverge int       `json:"no_converge"`
	Timestamp  time.Time `json:"ts"`
}

// ResultWriter is an interface to support different output writers.
type ResultWriter interface {
	Write(ResultRow) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]ResultRow) error
}

// Optional: writers can record the run summary.
type summaryWriter interface {
	WriteSummary(SummaryRow) error
}
