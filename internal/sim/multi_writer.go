package sim

// MultiWriter fans result rows out to multiple writers.
type MultiWriter struct {
	writers []ResultWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(writers ...ResultWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write sends a result row to all writers.
func (mw *MultiWriter) Write(row ResultRow) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple result rows to all writers, using batch mode
// where a writer supports it.
func (mw *MultiWriter) WriteBatch(rows []ResultRow) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSummary sends the run summary to every writer that records one.
func (mw *MultiWriter) WriteSummary(s SummaryRow) error {
	for _, w := range mw.writers {
		if sw, ok := w.(summaryWriter); ok {
			if err := sw.WriteSummary(s); err != nil {
				return err
			}
		}
	}
	return nil
}
