package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/drift/internal/drifterrors"
	"github.com/temirov/drift/internal/execshell"
)

const (
	gitRevParseSubcommandConstant        = "rev-parse"
	gitInsideWorkTreeFlagConstant        = "--is-inside-work-tree"
	gitStatusSubcommandConstant          = "status"
	gitPorcelainVersionOneFlagConstant   = "--porcelain=v1"
	gitNullTerminatedFlagConstant        = "-z"
	gitUntrackedFilesAllFlagConstant     = "--untracked-files=all"
	gitPathspecSeparatorConstant         = "--"
	gitCurrentDirectoryPathspecConstant  = "."
	gitOptionalLocksVariableConstant     = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant     = "0"
	gitInsideWorkTreeTrueOutputConstant  = "true"
	gitNotRepositoryExitCodeConstant     = 128
	gitRevParseCommandLabelConstant      = "git rev-parse"
	gitStatusCommandLabelConstant        = "git status"
	porcelainMalformedRecordFieldMessage = "porcelain record"
)

var (
	// ErrGitExecutorNotConfigured indicates the manager was built without an executor.
	ErrGitExecutorNotConfigured = errors.New("git executor not configured")
	// ErrNotRepository indicates the inspected path is not inside a Git work tree.
	ErrNotRepository = errors.New("not a git repository")

	errMalformedPorcelainRecord = errors.New("malformed porcelain record")
)

// WorktreeStatus lists the uncommitted paths of a work tree, relative to the
// repository root, in the order git reported them.
type WorktreeStatus struct {
	Modified  []string
	Untracked []string
}

// Clean reports whether the work tree has no uncommitted changes.
func (status WorktreeStatus) Clean() bool {
	return len(status.Modified) == 0 && len(status.Untracked) == 0
}

// StatusReader reports the working tree status of a repository.
type StatusReader interface {
	ReadWorktreeStatus(executionContext context.Context, repositoryPath string) (WorktreeStatus, error)
}

// RepositoryManager runs git commands against local repositories.
type RepositoryManager struct {
	executor execshell.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor execshell.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsWorkTree reports whether repositoryPath lies inside a Git work tree.
func (manager *RepositoryManager) IsWorkTree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: readOnlyEnvironment(),
	})
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) && failedError.Result.ExitCode == gitNotRepositoryExitCodeConstant {
			return false, nil
		}
		return false, translateExecutionError(gitRevParseCommandLabelConstant, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitInsideWorkTreeTrueOutputConstant, nil
}

// ReadWorktreeStatus collects modified and untracked paths beneath repositoryPath.
// It returns ErrNotRepository when the path is outside a work tree.
func (manager *RepositoryManager) ReadWorktreeStatus(executionContext context.Context, repositoryPath string) (WorktreeStatus, error) {
	insideWorkTree, workTreeError := manager.IsWorkTree(executionContext, repositoryPath)
	if workTreeError != nil {
		return WorktreeStatus{}, workTreeError
	}
	if !insideWorkTree {
		return WorktreeStatus{}, ErrNotRepository
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitStatusSubcommandConstant,
			gitPorcelainVersionOneFlagConstant,
			gitNullTerminatedFlagConstant,
			gitUntrackedFilesAllFlagConstant,
			gitPathspecSeparatorConstant,
			gitCurrentDirectoryPathspecConstant,
		},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: readOnlyEnvironment(),
	})
	if executionError != nil {
		return WorktreeStatus{}, translateExecutionError(gitStatusCommandLabelConstant, executionError)
	}

	status, parseError := ParsePorcelainStatus(executionResult.StandardOutput)
	if parseError != nil {
		return WorktreeStatus{}, drifterrors.ParseError{Path: repositoryPath, Field: porcelainMalformedRecordFieldMessage, Err: parseError}
	}
	return status, nil
}

// CheckCleanWorktree reports whether the repository has no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	status, statusError := manager.ReadWorktreeStatus(executionContext, repositoryPath)
	if statusError != nil {
		return false, statusError
	}
	return status.Clean(), nil
}

func readOnlyEnvironment() map[string]string {
	return map[string]string{gitOptionalLocksVariableConstant: gitOptionalLocksDisabledConstant}
}

func translateExecutionError(commandLabel string, executionError error) error {
	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		var standardError error
		if trimmed := strings.TrimSpace(failedError.Result.StandardError); len(trimmed) > 0 {
			standardError = errors.New(trimmed)
		}
		return drifterrors.SubprocessError{Command: commandLabel, ExitCode: failedError.Result.ExitCode, Err: standardError}
	}

	var startError execshell.CommandExecutionError
	if errors.As(executionError, &startError) {
		return drifterrors.SubprocessError{Command: commandLabel, Err: startError.Cause}
	}
	return drifterrors.SubprocessError{Command: commandLabel, Err: executionError}
}
