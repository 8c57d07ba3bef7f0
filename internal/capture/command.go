package capture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/buildscribe/buildscribe/internal/config"
)

// Command runs one supervised build. The build's own exit code is the
// command's result; only a failure to spawn is an error.
type Command struct {
	cfg        config.Capture
	build      []string
	shimTarget string
	session    string
	compilers  []string
}

// Session returns the run's unique session ID, recorded in every event.
func (c *Command) Session() string {
	return c.session
}

// Execute sets up interception, runs the build command with passthrough
// stdio, and returns its exit code.
func (c *Command) Execute() (int, error) {
	env := BuildChildEnv(c.cfg.OutputFile, c.session)

	if c.cfg.ForcePreload {
		// Preload mode: the library reports executions itself, no wrapper
		// directory is needed.
		env = setEnv(env, "LD_PRELOAD", c.cfg.Library)
	} else {
		wrapperDir, cleanup, err := c.setupWrapperDir()
		if err != nil {
			return 0, err
		}
		defer cleanup()
		env = prependPath(env, wrapperDir)
		env = setEnv(env, EnvWrapperDir, wrapperDir)
	}

	child := exec.Command(c.build[0], c.build[1:]...) //nolint:gosec // user-specified build command
	child.Env = env
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Start(); err != nil {
		return 0, fmt.Errorf("failed to start build command %q: %w", c.build[0], err)
	}
	return ExitCodeFromError(child.Wait()), nil
}

// setupWrapperDir creates the directory of compiler-named symlinks that is
// prepended to the child's PATH. A configured directory is reused as-is and
// never removed; a per-run temporary directory is cleaned up afterward.
func (c *Command) setupWrapperDir() (string, func(), error) {
	dir := c.cfg.WrapperDir
	cleanup := func() {}

	if dir == "" {
		tmp, err := os.MkdirTemp("", "buildscribe-wrap-")
		if err != nil {
			return "", nil, fmt.Errorf("failed to create wrapper directory: %w", err)
		}
		dir = tmp
		cleanup = func() { _ = os.RemoveAll(tmp) }
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create wrapper directory %s: %w", dir, err)
	}

	for _, name := range c.compilers {
		link := filepath.Join(dir, name)
		if _, err := os.Lstat(link); err == nil {
			continue // reused wrapper dir already has this shim
		}
		if err := os.Symlink(c.shimTarget, link); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to create wrapper for %q: %w", name, err)
		}
	}
	return dir, cleanup, nil
}
