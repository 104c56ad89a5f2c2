package audit

import (
	"context"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/drift/internal/checks"
	"github.com/temirov/drift/internal/execshell"
	"github.com/temirov/drift/internal/gitrepo"
	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

// FileSetCollector walks a repository root into a FileSet.
type FileSetCollector interface {
	Collect(root string) (walker.FileSet, error)
}

// CheckRunner executes every check against a FileSet.
type CheckRunner interface {
	RunAll(executionContext context.Context, fileSet walker.FileSet) ([]report.Finding, error)
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing afero.Fs) afero.Fs {
	if existing != nil {
		return existing
	}
	return afero.NewOsFs()
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing execshell.GitExecutor, logger *zap.Logger) (execshell.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveStatusReader returns the provided reader or constructs a repository manager from the executor.
func ResolveStatusReader(existing gitrepo.StatusReader, executor execshell.GitExecutor) (gitrepo.StatusReader, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveCheckRunner constructs the default runner over the status reader.
func ResolveCheckRunner(statusReader gitrepo.StatusReader, logger *zap.Logger) (CheckRunner, error) {
	return checks.NewRunner(statusReader, logger)
}
