package capture

import (
	"os"
	"strings"
)

// Environment variables the capture stage hands to the supervised build, and
// through it to every wrapper shim.
const (
	EnvEventFile  = "BUILDSCRIBE_EVENT_FILE"
	EnvSession    = "BUILDSCRIBE_SESSION"
	EnvWrapperDir = "BUILDSCRIBE_WRAPPER_DIR"
)

// BuildChildEnv returns a copy of the current environment with the event
// file and session variables set, replacing any stale values from an outer
// buildscribe run.
func BuildChildEnv(eventFile, session string) []string {
	env := os.Environ()
	env = setEnv(env, EnvEventFile, eventFile)
	env = setEnv(env, EnvSession, session)
	return env
}

// setEnv replaces or appends KEY=value in env.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// prependPath puts dir in front of the environment's PATH so the wrapper
// shims shadow the real compilers.
func prependPath(env []string, dir string) []string {
	for i, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			env[i] = "PATH=" + dir + string(os.PathListSeparator) + kv[len("PATH="):]
			return env
		}
	}
	return append(env, "PATH="+dir)
}
