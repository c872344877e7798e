package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONStdoutWriter prints result rows as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// Write outputs a result row in JSON format.
func (w *JSONStdoutWriter) Write(row ResultRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteBatch outputs multiple result rows in JSON format.
func (w *JSONStdoutWriter) WriteBatch(rows []ResultRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary outputs the run summary in JSON format.
func (w *JSONStdoutWriter) WriteSummary(s SummaryRow) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(w.out, string(data))
	return nil
}
