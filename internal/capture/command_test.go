package capture

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildscribe/buildscribe/internal/config"
)

func TestSetupWrapperDir_TemporaryDirIsPopulatedAndCleaned(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink-based wrappers are Unix-specific")
	}

	cmd := &Command{
		shimTarget: "/usr/local/bin/buildscribe",
		compilers:  []string{"cc", "g++"},
	}

	dir, cleanup, err := cmd.setupWrapperDir()
	require.NoError(t, err)

	for _, name := range cmd.compilers {
		link := filepath.Join(dir, name)
		target, err := os.Readlink(link)
		require.NoError(t, err, "wrapper %s must be a symlink", name)
		assert.Equal(t, "/usr/local/bin/buildscribe", target)
	}

	cleanup()
	assert.NoDirExists(t, dir)
}

func TestSetupWrapperDir_ConfiguredDirIsReusedNotRemoved(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink-based wrappers are Unix-specific")
	}

	configured := filepath.Join(t.TempDir(), "wrappers")
	cmd := &Command{
		cfg:        config.Capture{WrapperDir: configured},
		shimTarget: "/usr/local/bin/buildscribe",
		compilers:  []string{"cc"},
	}

	dir, cleanup, err := cmd.setupWrapperDir()
	require.NoError(t, err)
	assert.Equal(t, configured, dir)

	cleanup()
	assert.DirExists(t, configured, "a configured wrapper dir outlives the run")

	// Second run against the same dir tolerates the existing shims.
	_, cleanup, err = cmd.setupWrapperDir()
	require.NoError(t, err)
	cleanup()
}

func TestExecute_PropagatesBuildExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix-specific test")
	}

	cmd := &Command{
		cfg:        config.Capture{OutputFile: filepath.Join(t.TempDir(), "ev.json")},
		build:      []string{"sh", "-c", "exit 7"},
		shimTarget: "/usr/local/bin/buildscribe",
		session:    "test-session",
		compilers:  []string{"cc"},
	}

	code, err := cmd.Execute()
	require.NoError(t, err, "a failing build is a code, not an error")
	assert.Equal(t, 7, code)
}

func TestExecute_SuccessfulBuild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix-specific test")
	}

	cmd := &Command{
		cfg:        config.Capture{OutputFile: filepath.Join(t.TempDir(), "ev.json")},
		build:      []string{"true"},
		shimTarget: "/usr/local/bin/buildscribe",
		session:    "test-session",
		compilers:  []string{"cc"},
	}

	code, err := cmd.Execute()
	require.NoError(t, err)
	assert.Zero(t, code)
}

func TestExecute_SpawnFailureIsAnError(t *testing.T) {
	cmd := &Command{
		cfg:        config.Capture{OutputFile: filepath.Join(t.TempDir(), "ev.json")},
		build:      []string{"/no/such/binary/anywhere"},
		shimTarget: "/usr/local/bin/buildscribe",
		session:    "test-session",
		compilers:  []string{"cc"},
	}

	_, err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to start build command")
}

func TestExecute_PreloadModeSetsLibrary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix-specific test")
	}

	cmd := &Command{
		cfg: config.Capture{
			OutputFile:   filepath.Join(t.TempDir(), "ev.json"),
			ForcePreload: true,
			Library:      "/opt/buildscribe/libexec.so",
		},
		build:   []string{"sh", "-c", `test "$LD_PRELOAD" = /opt/buildscribe/libexec.so`},
		session: "test-session",
	}

	code, err := cmd.Execute()
	require.NoError(t, err)
	assert.Zero(t, code, "the child must see LD_PRELOAD")
}
