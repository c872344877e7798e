package sim

import (
	"encoding/json"
	"os"
)

// FileWriter writes result rows to a JSONL file. summaryPath may be empty
// to skip the separate summary log.
type FileWriter struct {
	resultFile  *os.File
	summaryFile *os.File
	resultEnc   *json.Encoder
	summaryEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter.
func NewFileWriter(resultPath, summaryPath string) (*FileWriter, error) {
	rf, err := os.Create(resultPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{resultFile: rf, resultEnc: json.NewEncoder(rf)}
	if summaryPath != "" {
		sf, err := os.Create(summaryPath)
		if err != nil {
			rf.Close()
			return nil, err
		}
		fw.summaryFile = sf
		fw.summaryEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// Write appends one result row.
func (w *FileWriter) Write(row ResultRow) error {
	return w.resultEnc.Encode(row)
}

// WriteBatch appends multiple result rows.
func (w *FileWriter) WriteBatch(rows []ResultRow) error {
	for _, r := range rows {
		if err := w.resultEnc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary appends the run summary to the summary log, or to the
// result file when no separate summary log was configured.
func (w *FileWriter) WriteSummary(s SummaryRow) error {
	if w.summaryEnc != nil {
		return w.summaryEnc.Encode(s)
	}
	return w.resultEnc.Encode(s)
}

// Close flushes and closes the underlying files.
func (w *FileWriter) Close() error {
	err := w.resultFile.Close()
	if w.summaryFile != nil {
		if cerr := w.summaryFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
