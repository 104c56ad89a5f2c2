// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with lifecycle logging and typed errors,
// and OSCommandRunner supplies the default os/exec backed implementation used
// to run git against the audited repository.
package execshell
