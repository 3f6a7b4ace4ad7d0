package report

import (
	"io"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// Writer defines the interface for report output. Implementations
// render an odds report in one format and write it to their configured
// destination.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.OddsReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, for example to
// both terminal and file. It is a separate type rather than
// io.MultiWriter because the Writer interface carries reports, not raw
// bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers. Returns the total
// bytes written across all writers and stops on the first error.
func (m *MultiWriter) Write(report *model.OddsReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
