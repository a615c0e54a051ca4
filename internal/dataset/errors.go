package dataset

import (
	"fmt"
)

// ErrLoadFailure indicates the initial feature snapshot could not be
// loaded: the fetch failed, returned a non-200 status, or the body was not
// a JSON array of GeoJSON features.
//
// Load failures are not fatal: the store stays empty, the loading flag
// clears, and the error is surfaced for logging.
type ErrLoadFailure struct {
	Reason string
	Err    error
}

func (e *ErrLoadFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feature load failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("feature load failed: %s", e.Reason)
}

func (e *ErrLoadFailure) Unwrap() error { return e.Err }
