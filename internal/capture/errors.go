package capture

import "fmt"

// CaptureError reports a failed snapshot or encode for one pass of one
// frame. It aborts the run: skipping the frame silently would leave a gap
// in the metadata stream that downstream tooling cannot discover from the
// file listing alone.
type CaptureError struct {
	Frame int
	Pass  string // "rgb" or "mask"
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture: frame %d %s pass: %v", e.Frame, e.Pass, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
