// Package gitrepo interrogates Git working trees.
//
// RepositoryManager runs git through an execshell.GitExecutor and converts
// porcelain status output into a WorktreeStatus. Failures are reported as
// drifterrors.SubprocessError, and ErrNotRepository marks paths outside any
// work tree.
package gitrepo
