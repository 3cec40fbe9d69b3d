package export

import "fmt"

// ErrExportInProgress indicates an export was triggered while another one
// was still running. Exports are single-flight: the caller must wait for
// the pending one to settle.
type ErrExportInProgress struct{}

func (e *ErrExportInProgress) Error() string {
	return "an export is already in progress"
}

// CaptureError indicates the raster capture step failed.
type CaptureError struct {
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("capture failed: %s", e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// ComposeError indicates the final document composition or serialization
// step failed.
type ComposeError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ComposeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to compose %s: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to compose %s: %s", e.Format, e.Message)
}

func (e *ComposeError) Unwrap() error {
	return e.Cause
}
