package walker

import (
	"iter"
	"path"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// FileSet is the materialized result of one walk. It is never mutated after
// construction and is shared read-only by every check.
type FileSet struct {
	fileSystem afero.Fs
	root       string
	entries    []Entry
	index      map[string]bool
}

func newFileSet(fileSystem afero.Fs, root string, sequence iter.Seq[Entry]) FileSet {
	entries := slices.Collect(sequence)
	index := make(map[string]bool, len(entries))
	for _, entry := range entries {
		index[entry.Path] = entry.IsDirectory
	}
	return FileSet{fileSystem: fileSystem, root: root, entries: entries, index: index}
}

// NewFileSet builds a FileSet from known entries; it is intended for tests and
// callers that already hold a listing.
func NewFileSet(fileSystem afero.Fs, root string, entries []Entry) FileSet {
	return newFileSet(fileSystem, root, slices.Values(entries))
}

// Root returns the directory the set was collected from.
func (fileSet FileSet) Root() string {
	return fileSet.root
}

// FileSystem returns the filesystem backing the set.
func (fileSet FileSet) FileSystem() afero.Fs {
	return fileSet.fileSystem
}

// Entries returns every entry in walk order.
func (fileSet FileSet) Entries() []Entry {
	return slices.Clone(fileSet.entries)
}

// Files returns the non-directory entries in walk order.
func (fileSet FileSet) Files() []Entry {
	files := make([]Entry, 0, len(fileSet.entries))
	for _, entry := range fileSet.entries {
		if !entry.IsDirectory {
			files = append(files, entry)
		}
	}
	return files
}

// Contains reports whether the relative path was seen during the walk.
func (fileSet FileSet) Contains(relativePath string) bool {
	_, exists := fileSet.index[path.Clean(relativePath)]
	return exists
}

// ContainsFile reports whether the relative path was seen and is not a directory.
func (fileSet FileSet) ContainsFile(relativePath string) bool {
	isDirectory, exists := fileSet.index[path.Clean(relativePath)]
	return exists && !isDirectory
}

// AbsolutePath resolves a relative slash path against the root.
func (fileSet FileSet) AbsolutePath(relativePath string) string {
	return filepath.Join(fileSet.root, filepath.FromSlash(relativePath))
}

// ReadFile reads a file addressed by its relative slash path.
func (fileSet FileSet) ReadFile(relativePath string) ([]byte, error) {
	return afero.ReadFile(fileSet.fileSystem, fileSet.AbsolutePath(relativePath))
}
