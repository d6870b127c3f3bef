//go:build windows

package files

import (
	"errors"
	"syscall"
)

// Windows error codes returned when another process holds the file open.
const (
	errorSharingViolation syscall.Errno = 32
	errorLockViolation    syscall.Errno = 33
)

func isSharingViolation(err error) bool {
	return errors.Is(err, errorSharingViolation) || errors.Is(err, errorLockViolation)
}
