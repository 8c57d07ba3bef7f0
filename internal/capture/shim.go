package capture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/buildscribe/buildscribe/internal/events"
)

// IsShim reports whether this process was started through a wrapper
// symlink: invoked under a compiler's name inside an active capture session.
func IsShim(argv0 string) bool {
	if os.Getenv(EnvEventFile) == "" {
		return false
	}
	return filepath.Base(argv0) != "buildscribe"
}

// RunShim records the compiler invocation to the session's event log, then
// delegates to the real compiler found on PATH outside the wrapper
// directory, propagating its exit code. A missing real compiler exits 127,
// one that cannot be started 126 (shell convention).
func RunShim(argv []string) int {
	eventFile := os.Getenv(EnvEventFile)
	session := os.Getenv(EnvSession)
	wrapperDir := os.Getenv(EnvWrapperDir)
	name := filepath.Base(argv[0])

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// Recording is best effort: a full event log must never break the build.
	ev := events.New(session, append([]string{name}, argv[1:]...), cwd)
	if err := events.Append(eventFile, ev); err != nil {
		fmt.Fprintf(os.Stderr, "buildscribe: warning: could not record %s invocation: %v\n", name, err)
	}

	real, err := resolveReal(name, wrapperDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildscribe: %v\n", err)
		return 127
	}

	child := exec.Command(real, argv[1:]...) //nolint:gosec // delegating to the shadowed compiler
	child.Env = os.Environ()
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "buildscribe: failed to start %s: %v\n", real, err)
		return 126
	}
	return ExitCodeFromError(child.Wait())
}

// resolveReal finds the real executable for name by walking PATH while
// skipping the wrapper directory, so the shim never resolves to itself.
func resolveReal(name, wrapperDir string) (string, error) {
	wrapperAbs, _ := filepath.Abs(wrapperDir)

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		dirAbs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if wrapperDir != "" && dirAbs == wrapperAbs {
			continue
		}

		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0111 == 0 {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%s not found on PATH outside the wrapper directory %s",
		name, strings.TrimSpace(wrapperDir))
}
