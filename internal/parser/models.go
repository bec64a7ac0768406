package parser

import (
	"fmt"
	"strings"
)

// CVSeries holds one file's resolved voltage/current data.
// Voltage and Current are always the same length and positionally aligned
// to the row order of the source file. Cells that failed numeric conversion
// are carried as NaN, with a note appended to Warnings.
type CVSeries struct {
	Voltage  []float64
	Current  []float64
	Headers  []string // original header labels, order and casing preserved
	Warnings []string // non-fatal issues collected during parsing
}

// Len returns the number of samples in the series.
func (s *CVSeries) Len() int {
	return len(s.Voltage)
}

// ColumnNotFoundError reports that no header matched the voltage or current
// role. It carries the original headers so the user can see what the file
// actually contained.
type ColumnNotFoundError struct {
	Path    string
	Headers []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("voltage/current columns not found in %s. Found: [%s]",
		e.Path, strings.Join(e.Headers, ", "))
}

// FileParseError wraps an underlying read or parse failure.
type FileParseError struct {
	Path string
	Err  error
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileParseError) Unwrap() error {
	return e.Err
}
