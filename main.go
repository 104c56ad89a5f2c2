package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/drift/cmd/cli"
	"github.com/temirov/drift/internal/audit"
)

const (
	exitErrorTemplateConstant = "drift: %v\n"
	driftExitCodeConstant     = 1
	failureExitCodeConstant   = 2
)

// main runs the drift audit: 0 when clean, 1 when drift was reported, 2 on failure.
func main() {
	executionError := cli.Execute()
	switch {
	case executionError == nil:
		return
	case errors.Is(executionError, audit.ErrDriftDetected):
		os.Exit(driftExitCodeConstant)
	default:
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(failureExitCodeConstant)
	}
}
