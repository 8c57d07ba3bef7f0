// Package diag formats user-facing failure messages, with ANSI color when
// stderr is a terminal.
package diag

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// colorMode controls ANSI color output.
type colorMode int

const (
	colorAuto colorMode = iota
	colorOn
	colorOff
)

// resolveColor determines whether to emit ANSI color codes.
// Priority: BUILDSCRIBE_COLOR env > NO_COLOR env > stderr TTY detection.
func resolveColor() colorMode {
	if v := os.Getenv("BUILDSCRIBE_COLOR"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return colorOn
		case "0", "false", "no", "off":
			return colorOff
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return colorOff
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return colorOn
	}
	return colorOff
}

func red(s string, c colorMode) string {
	if c == colorOn {
		return "\033[31m" + s + "\033[0m"
	}
	return s
}

func bold(s string, c colorMode) string {
	if c == colorOn {
		return "\033[1m" + s + "\033[0m"
	}
	return s
}

// FormatError renders a top-level failure for stderr.
func FormatError(err error) string {
	color := resolveColor()
	return fmt.Sprintf("%s %s", bold("buildscribe:", color), red(err.Error(), color))
}
