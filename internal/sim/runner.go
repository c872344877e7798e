// Runner driving a projection run end to end
package sim

import (
	"context"
	"time"

	"github.com/google/uuid"

	"warpsim/internal/logging"
	"warpsim/internal/projection"
	"warpsim/internal/starfield"
)

// RunOptions tunes one projection run.
type RunOptions struct {
	// EpochYear propagates source proper motions to this epoch before
	// projecting. Zero leaves the catalog positions untouched.
	EpochYear float64
	// Jacobians requests the local error-propagation matrix per source.
	Jacobians bool
}

// Runner feeds a source field through a projection engine and hands the
// flattened results to a writer. The engine stays immutable; a Runner can
// be reused across fields.
type Runner struct {
	runID      string
	instrument string
	engine     *projection.Engine
	writer     ResultWriter
	now        func() time.Time
}

// NewRunner creates a Runner. An empty runID is replaced by a fresh UUID.
func NewRunner(runID, instrument string, engine *projection.Engine, writer ResultWriter) *Runner {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Runner{
		runID:      runID,
		instrument: instrument,
		engine:     engine,
		writer:     writer,
		now:        time.Now,
	}
}

// RunID returns the identifier stamped on every row of this run.
func (r *Runner) RunID() string { return r.runID }

// Run projects the field and writes one row per source plus a summary.
// Per-source numeric failures are part of the output, not errors; only a
// writer failure aborts the run.
func (r *Runner) Run(ctx context.Context, field starfield.Field, opts RunOptions) (projection.Batch, error) {
	log := logging.FromContext(ctx)

	if opts.EpochYear != 0 {
		field = field.AtEpoch(opts.EpochYear)
	}

	var batch projection.Batch
	if opts.Jacobians {
		batch = r.engine.SkyToPixelWithJacobians(field)
	} else {
		batch = r.engine.SkyToPixel(field)
	}

	ts := r.now().UTC()
	rows := make([]ResultRow, len(batch.Results))
	for i, res := range batch.Results {
		rows[i] = r.toRow(field[i], res, ts)
	}

	if bw, ok := r.writer.(batchWriter); ok {
		if err := bw.WriteBatch(rows); err != nil {
			return batch, err
		}
	} else {
		for _, row := range rows {
			if err := r.writer.Write(row); err != nil {
				return batch, err
			}
		}
	}

	summary := SummaryRow{
		RunID:      r.runID,
		Instrument: r.instrument,
		Sources:    len(field),
		Assigned:   batch.Assigned,
		Unassigned: batch.Unassigned,
		Singular:   batch.Singular,
		NoConverge: batch.NoConverge,
		Timestamp:  ts,
	}
	if sw, ok := r.writer.(summaryWriter); ok {
		if err := sw.WriteSummary(summary); err != nil {
			return batch, err
		}
	}

	log.Info("projection run complete",
		"run_id", r.runID,
		"sources", len(field),
		"assigned", batch.Assigned,
		"unassigned", batch.Unassigned,
		"singular", batch.Singular,
		"no_converge", batch.NoConverge,
	)
	return batch, nil
}

func (r *Runner) toRow(src starfield.Source, res projection.Result, ts time.Time) ResultRow {
	row := ResultRow{
		RunID:      r.runID,
		SourceID:   res.SourceID,
		RADeg:      src.RADeg,
		DecDeg:     src.DecDeg,
		Status:     res.Status.String(),
		DetectorID: -1,
		Timestamp:  ts,
	}
	if res.Status == projection.StatusOK {
		row.DetectorID = res.DetectorID
		row.PixelX = res.Pixel.X
		row.PixelY = res.Pixel.Y
	}
	if res.Jacobian != nil {
		j := res.Jacobian
		row.Jacobian = []float64{j.A, j.B, j.C, j.D}
	}
	return row
}
