package capture

import (
	"errors"
	"os/exec"
	"syscall"
)

// ExitCodeFromError extracts the child's exit code from an exec.Cmd.Wait
// error: 0 for nil, the exit status for a normal exit, 128+signum when the
// child was killed by a signal (POSIX convention), and 1 for anything else.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return ws.ExitStatus()
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return 1
}
