package files

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// TransientAccessError is a rename failure worth retrying: the source is
// momentarily missing or held open by another handle.
type TransientAccessError struct {
	Attempt int
	Err     error
}

func (e *TransientAccessError) Error() string {
	return fmt.Sprintf("attempt %d: transient access failure: %v", e.Attempt, e.Err)
}

func (e *TransientAccessError) Unwrap() error { return e.Err }

// RelocationError is returned when both the retry loop and the fallback copy failed.
type RelocationError struct {
	Source      string
	Destination string
	Err         error
}

func (e *RelocationError) Error() string {
	return fmt.Sprintf("failed to relocate %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *RelocationError) Unwrap() error { return e.Err }

// OrphanCleanupWarning reports a source left behind after a successful fallback copy.
// It is logged and never returned to callers.
type OrphanCleanupWarning struct {
	Source string
	Err    error
}

func (w *OrphanCleanupWarning) Error() string {
	return fmt.Sprintf("copied file but could not remove source %s: %v", w.Source, w.Err)
}

func (w *OrphanCleanupWarning) Unwrap() error { return w.Err }

// IsTransientAccess reports whether err is a lock or visibility failure the
// relocator retries: permission denied, file busy, sharing violation or not found.
func IsTransientAccess(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETXTBSY) {
		return true
	}
	return isSharingViolation(err)
}
