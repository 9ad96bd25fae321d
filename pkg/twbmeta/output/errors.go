// Package output serializes extracted workbook metadata as xlsx reports, JSON or YAML.
package output

import (
	"errors"
	"fmt"
)

// ErrEmptyReport indicates every collection is empty, so there is no sheet to write.
var ErrEmptyReport = errors.New("no metadata to report")

// ReportWriteError indicates the report destination could not be written.
type ReportWriteError struct {
	// Dest is the destination path, or "stream" for writer destinations.
	Dest string
	Err  error
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("write report to %s: %v", e.Dest, e.Err)
}

func (e *ReportWriteError) Unwrap() error {
	return e.Err
}
