package snapcheck

import (
	"errors"
	"fmt"
)

// Forced-fail and mismatch outcomes, matched with errors.Is. ErrCreated and ErrUpdated report that the snapshot file was (re)written and must be reviewed;
// ErrDifference reports a mismatch that left the file untouched.
var (
	ErrCreated    = errors.New("snapcheck: created new snapshot")
	ErrUpdated    = errors.New("snapcheck: updated snapshot")
	ErrDifference = errors.New("snapcheck: difference between actual and expected")
)

// Stages of a failed snapshot-file operation.
const (
	OpOpen  = "open"
	OpRead  = "read"
	OpWrite = "write"
)

// IOError reports a failed filesystem operation on a snapshot file. Op is one of OpOpen, OpRead, or OpWrite; Err is the underlying OS error. Matched with
// errors.As.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("snapcheck: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
