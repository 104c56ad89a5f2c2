package walker

import (
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/drift/internal/drifterrors"
)

const (
	gitMetadataDirectoryNameConstant        = ".git"
	mercurialMetadataDirectoryNameConstant  = ".hg"
	subversionMetadataDirectoryNameConstant = ".svn"
	rootRelativePathConstant                = "."
	accessOperationConstant                 = "access"
	readOperationConstant                   = "read"
	skippedPathMessageConstant              = "skipping unreadable path"
	logFieldPathConstant                    = "path"
	logFieldRootConstant                    = "root"
	walkStartedMessageConstant              = "walking repository tree"
)

var (
	// ErrNotDirectory indicates the requested root is a file.
	ErrNotDirectory = errors.New("not a directory")

	errWalkStopped = errors.New("walk stopped")
)

// Entry describes one path found beneath the walked root.
type Entry struct {
	// Path is slash-separated and relative to the root.
	Path        string
	IsDirectory bool
}

// Walker enumerates repository paths, skipping version-control metadata.
type Walker struct {
	fileSystem            afero.Fs
	logger                *zap.Logger
	skippedDirectoryNames map[string]struct{}
}

// NewWalker constructs a Walker over the provided filesystem.
func NewWalker(fileSystem afero.Fs, logger *zap.Logger) *Walker {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		fileSystem: fileSystem,
		logger:     logger,
		skippedDirectoryNames: map[string]struct{}{
			gitMetadataDirectoryNameConstant:        {},
			mercurialMetadataDirectoryNameConstant:  {},
			subversionMetadataDirectoryNameConstant: {},
		},
	}
}

// FileSystem returns the filesystem the walker reads from.
func (walker *Walker) FileSystem() afero.Fs {
	return walker.fileSystem
}

// Entries verifies that root is a readable directory and returns a lazy,
// single-use sequence of the entries beneath it in lexical order.
func (walker *Walker) Entries(root string) (iter.Seq[Entry], error) {
	if validationError := walker.validateRoot(root); validationError != nil {
		return nil, validationError
	}

	consumed := false
	sequence := func(yield func(Entry) bool) {
		if consumed {
			return
		}
		consumed = true

		walker.logger.Debug(walkStartedMessageConstant, zap.String(logFieldRootConstant, root))
		_ = afero.Walk(walker.fileSystem, root, func(path string, info os.FileInfo, walkError error) error {
			if walkError != nil {
				walker.logger.Warn(skippedPathMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(walkError))
				return nil
			}

			relativePath, relativeError := filepath.Rel(root, path)
			if relativeError != nil {
				return nil
			}
			if relativePath == rootRelativePathConstant {
				return nil
			}

			if info.IsDir() {
				if _, skipped := walker.skippedDirectoryNames[info.Name()]; skipped {
					return filepath.SkipDir
				}
			}

			entry := Entry{Path: filepath.ToSlash(relativePath), IsDirectory: info.IsDir()}
			if !yield(entry) {
				return errWalkStopped
			}
			return nil
		})
	}

	return sequence, nil
}

// Collect walks root once and returns the resulting read-only FileSet.
func (walker *Walker) Collect(root string) (FileSet, error) {
	sequence, entriesError := walker.Entries(root)
	if entriesError != nil {
		return FileSet{}, entriesError
	}
	return newFileSet(walker.fileSystem, root, sequence), nil
}

func (walker *Walker) validateRoot(root string) error {
	info, statError := walker.fileSystem.Stat(root)
	if statError != nil {
		return drifterrors.IOError{Path: root, Operation: accessOperationConstant, Err: statError}
	}
	if !info.IsDir() {
		return drifterrors.IOError{Path: root, Operation: accessOperationConstant, Err: ErrNotDirectory}
	}

	directory, openError := walker.fileSystem.Open(root)
	if openError != nil {
		return drifterrors.IOError{Path: root, Operation: readOperationConstant, Err: openError}
	}
	defer directory.Close()

	if _, readError := directory.Readdirnames(1); readError != nil && !errors.Is(readError, io.EOF) {
		return drifterrors.IOError{Path: root, Operation: readOperationConstant, Err: readError}
	}
	return nil
}
