package pngenc

import "fmt"

// EncodingError reports invalid raster parameters or a failed compression
// step. No output is produced when it is returned.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("pngenc: %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
