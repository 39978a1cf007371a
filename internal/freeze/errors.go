package freeze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLockfileMissing indicates the environment has never been frozen.
	ErrLockfileMissing = errors.New("lockfile not found")

	// ErrLockfileCorrupt indicates the lockfile exists but cannot be decoded.
	ErrLockfileCorrupt = errors.New("lockfile corrupt")

	// ErrInstallerUnavailable indicates the external installer failed to
	// enumerate packages or respond.
	ErrInstallerUnavailable = errors.New("installer unavailable")
)

// InstallError reports which packages failed to install during a thaw or
// add. The engine performs no rollback of already-installed packages; the
// prior lockfile is left in place.
type InstallError struct {
	Env       string
	Failed    []string // specifiers that failed to install
	Remaining []string // specifiers not attempted after the failure
	Err       error    // underlying installer error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("failed to install %s in environment %s", strings.Join(e.Failed, ", "), e.Env)
	if len(e.Remaining) > 0 {
		msg += fmt.Sprintf(" (%d packages not attempted)", len(e.Remaining))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
