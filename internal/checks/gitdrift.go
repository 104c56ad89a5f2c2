package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/drift/internal/gitrepo"
	"github.com/temirov/drift/internal/report"
)

const (
	modifiedFilesTemplateConstant  = "%d modified files not committed"
	untrackedFilesTemplateConstant = "%d untracked files"
	notRepositoryMessageConstant   = "not a git repository"
	gitUnavailableMessageConstant  = "Unable to query git status"
	gitStatusFailedMessageConstant = "git status unavailable"
	affectedPathsSeparatorConstant = ", "
	logFieldRepositoryPathConstant = "repository_path"
)

// FindGitDrift reports uncommitted and untracked paths as one aggregate
// finding per set. A missing repository yields an informational finding and a
// git failure yields a warning; neither stops the audit.
func FindGitDrift(executionContext context.Context, statusReader gitrepo.StatusReader, repositoryPath string, logger *zap.Logger) []report.Finding {
	if logger == nil {
		logger = zap.NewNop()
	}

	status, statusError := statusReader.ReadWorktreeStatus(executionContext, repositoryPath)
	if statusError != nil {
		if errors.Is(statusError, gitrepo.ErrNotRepository) {
			return []report.Finding{{
				Category: report.CategoryGitDrift,
				Severity: report.SeverityInfo,
				Message:  notRepositoryMessageConstant,
			}}
		}
		logger.Debug(gitStatusFailedMessageConstant, zap.String(logFieldRepositoryPathConstant, repositoryPath), zap.Error(statusError))
		return []report.Finding{{
			Category: report.CategoryGitDrift,
			Severity: report.SeverityWarning,
			Message:  gitUnavailableMessageConstant,
			Detail:   statusError.Error(),
		}}
	}

	var findings []report.Finding
	if len(status.Modified) > 0 {
		findings = append(findings, report.Finding{
			Category: report.CategoryGitDrift,
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf(modifiedFilesTemplateConstant, len(status.Modified)),
			Detail:   strings.Join(status.Modified, affectedPathsSeparatorConstant),
		})
	}
	if len(status.Untracked) > 0 {
		findings = append(findings, report.Finding{
			Category: report.CategoryGitDrift,
			Severity: report.SeverityInfo,
			Message:  fmt.Sprintf(untrackedFilesTemplateConstant, len(status.Untracked)),
			Detail:   strings.Join(status.Untracked, affectedPathsSeparatorConstant),
		})
	}
	return findings
}
