// Package main is the buildscribe entry point. The same binary doubles as
// the compiler wrapper shim when invoked through a wrapper-directory
// symlink.
package main

import (
	"fmt"
	"os"

	"github.com/buildscribe/buildscribe/cmd"
	"github.com/buildscribe/buildscribe/internal/capture"
	"github.com/buildscribe/buildscribe/internal/diag"
)

func main() {
	if capture.IsShim(os.Args[0]) {
		os.Exit(capture.RunShim(os.Args))
	}

	code, err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.FormatError(err))
		os.Exit(1)
	}
	os.Exit(code)
}
