//go:build windows

package player

import (
	"errors"
	"os"
)

var errPauseUnsupported = errors.New("pausing the player is not supported on windows")

func suspend(*os.Process) error { return errPauseUnsupported }

func resume(*os.Process) error { return errPauseUnsupported }
