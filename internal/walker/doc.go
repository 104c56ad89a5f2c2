// Package walker enumerates the paths of a repository tree.
//
// Walker validates the audited root, then lazily yields relative entries while
// skipping version-control metadata directories. Unreadable subpaths are
// logged and skipped. FileSet freezes one walk for the checks to share.
package walker
