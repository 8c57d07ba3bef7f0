package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColor_EnvOverrides(t *testing.T) {
	t.Setenv("BUILDSCRIBE_COLOR", "on")
	assert.Equal(t, colorOn, resolveColor())

	t.Setenv("BUILDSCRIBE_COLOR", "0")
	assert.Equal(t, colorOff, resolveColor())
}

func TestResolveColor_NoColorWins(t *testing.T) {
	t.Setenv("BUILDSCRIBE_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, colorOff, resolveColor())
}

func TestFormatError_Plain(t *testing.T) {
	t.Setenv("BUILDSCRIBE_COLOR", "off")

	got := FormatError(errors.New("invalid subcommand: \"bogus\""))
	assert.Equal(t, `buildscribe: invalid subcommand: "bogus"`, got)
}

func TestFormatError_Colored(t *testing.T) {
	t.Setenv("BUILDSCRIBE_COLOR", "on")

	got := FormatError(errors.New("boom"))
	assert.Contains(t, got, "\033[31m")
	assert.Contains(t, got, "boom")
}
