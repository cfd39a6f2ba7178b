package numbering

import (
	"errors"
	"fmt"
)

// ErrNotCommitted marks a failure to record an issued document number. The
// document exists but the next run may hand out the same number again.
var ErrNotCommitted = errors.New("document number was not committed")

// PersistenceError is a failed read or write of the metadata store.
type PersistenceError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("metadata %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("metadata %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
