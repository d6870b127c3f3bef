//go:build !windows

package files

func isSharingViolation(err error) bool {
	return false
}
