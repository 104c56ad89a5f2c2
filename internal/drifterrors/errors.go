// Package drifterrors defines the typed failures raised while auditing a
// repository. Only an IOError on the audited root is fatal; every other kind
// degrades to a skipped rule or an advisory finding.
package drifterrors

import (
	"errors"
	"fmt"
)

const (
	ioErrorTemplateConstant                = "unable to %s %s: %v"
	parseErrorTemplateConstant             = "unable to parse %s in %s: %v"
	parseErrorWithoutFieldTemplateConstant = "unable to parse %s: %v"
	subprocessExitTemplateConstant         = "%s exited with code %d"
	subprocessExitDetailTemplateConstant   = "%s exited with code %d: %v"
	subprocessFailureTemplateConstant      = "%s failed: %v"
	unknownCauseMessageConstant            = "unknown error"
)

// IOError reports a path that could not be inspected.
type IOError struct {
	Path      string
	Operation string
	Err       error
}

// Error describes the failed filesystem operation.
func (ioError IOError) Error() string {
	return fmt.Sprintf(ioErrorTemplateConstant, ioError.Operation, ioError.Path, describeCause(ioError.Err))
}

// Unwrap exposes the underlying filesystem error.
func (ioError IOError) Unwrap() error {
	return ioError.Err
}

// ParseError reports a manifest field that could not be interpreted.
type ParseError struct {
	Path  string
	Field string
	Err   error
}

// Error describes the malformed manifest.
func (parseError ParseError) Error() string {
	if len(parseError.Field) == 0 {
		return fmt.Sprintf(parseErrorWithoutFieldTemplateConstant, parseError.Path, describeCause(parseError.Err))
	}
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.Field, parseError.Path, describeCause(parseError.Err))
}

// Unwrap exposes the underlying decoder error.
func (parseError ParseError) Unwrap() error {
	return parseError.Err
}

// SubprocessError reports an external tool that was missing or failed.
type SubprocessError struct {
	Command  string
	ExitCode int
	Err      error
}

// Error describes the failed invocation.
func (subprocessError SubprocessError) Error() string {
	if subprocessError.ExitCode != 0 {
		if subprocessError.Err != nil {
			return fmt.Sprintf(subprocessExitDetailTemplateConstant, subprocessError.Command, subprocessError.ExitCode, subprocessError.Err)
		}
		return fmt.Sprintf(subprocessExitTemplateConstant, subprocessError.Command, subprocessError.ExitCode)
	}
	return fmt.Sprintf(subprocessFailureTemplateConstant, subprocessError.Command, describeCause(subprocessError.Err))
}

// Unwrap exposes the underlying execution error.
func (subprocessError SubprocessError) Unwrap() error {
	return subprocessError.Err
}

// IsIOError reports whether err carries an IOError.
func IsIOError(err error) bool {
	var ioError IOError
	return errors.As(err, &ioError)
}

func describeCause(cause error) string {
	if cause == nil {
		return unknownCauseMessageConstant
	}
	return cause.Error()
}
