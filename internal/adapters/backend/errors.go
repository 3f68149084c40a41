package backend

import "errors"

// Sentinel kinds for probe errors. Connectivity and protocol failures are
// equivalent for required probes; the split exists for diagnostics only.
var (
	ErrProbeFailed      = errors.New("probe failed")
	ErrUnexpectedStatus = errors.New("unexpected http status")
	ErrBadPayload       = errors.New("unexpected probe payload")
)
