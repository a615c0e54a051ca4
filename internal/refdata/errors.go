package refdata

import (
	"fmt"
)

// ErrReferenceData indicates one reference layer failed to load. The layer
// simply does not render; no other layer is affected.
type ErrReferenceData struct {
	Source string
	Err    error
}

func (e *ErrReferenceData) Error() string {
	return fmt.Sprintf("reference data %q unavailable: %v", e.Source, e.Err)
}

func (e *ErrReferenceData) Unwrap() error { return e.Err }
