// Package audit runs the drift pipeline against one repository directory.
//
// CommandBuilder wires the cobra command, Service walks the tree, executes
// every check in order and renders the resulting report. A report with at
// least one finding is signalled through ErrDriftDetected.
package audit
