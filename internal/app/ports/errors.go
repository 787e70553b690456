package ports

import "errors"

// Sentinel errors every repository adapter maps its backend errors to.
// ErrConflict covers both stale-version saves and duplicate keys.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
