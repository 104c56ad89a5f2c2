package checks

import (
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/drift/internal/drifterrors"
	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

const (
	gitignoreFileNameConstant          = ".gitignore"
	currentDirectoryConstant           = "."
	deadIgnoreEntryMessageConstant     = "Gitignore entry matches no files"
	unreadableGitignoreMessageConstant = "Failed to read .gitignore"
)

type ignoreCandidate struct {
	segments    []string
	isDirectory bool
}

// FindGitignoreDrift reports every .gitignore entry that matches no path in
// the FileSet. Entries are evaluated relative to the directory holding the
// .gitignore that declares them.
func FindGitignoreDrift(fileSet walker.FileSet, logger *zap.Logger) []report.Finding {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := fileSet.Entries()
	var findings []report.Finding
	for _, entry := range fileSet.Files() {
		if path.Base(entry.Path) != gitignoreFileNameConstant || isDependencyOutputPath(entry.Path) {
			continue
		}

		content, readError := fileSet.ReadFile(entry.Path)
		if readError != nil {
			ioError := drifterrors.IOError{Path: entry.Path, Operation: readOperationConstant, Err: readError}
			logger.Warn(unreadableFileMessageConstant, zap.Error(ioError))
			findings = append(findings, report.Finding{
				Category: report.CategoryGitignoreDrift,
				Severity: report.SeverityWarning,
				Path:     entry.Path,
				Message:  unreadableGitignoreMessageConstant,
				Detail:   ioError.Error(),
			})
			continue
		}

		candidates := ignoreCandidatesBelow(entries, path.Dir(entry.Path))
		lineNumber := 0
		for line := range strings.Lines(string(content)) {
			lineNumber++
			pattern, isPattern := parseIgnorePattern(line)
			if !isPattern || pattern.matchesAny(candidates) {
				continue
			}
			findings = append(findings, report.Finding{
				Category: report.CategoryGitignoreDrift,
				Severity: report.SeverityInfo,
				Path:     entry.Path,
				Line:     lineNumber,
				Message:  deadIgnoreEntryMessageConstant,
				Detail:   strings.TrimSpace(line),
			})
		}
	}
	return findings
}

func ignoreCandidatesBelow(entries []walker.Entry, directory string) []ignoreCandidate {
	prefix := ""
	if directory != currentDirectoryConstant {
		prefix = directory + pathSeparatorConstant
	}

	candidates := make([]ignoreCandidate, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Path, prefix) {
			continue
		}
		relativePath := strings.TrimPrefix(entry.Path, prefix)
		candidates = append(candidates, ignoreCandidate{
			segments:    strings.Split(relativePath, pathSeparatorConstant),
			isDirectory: entry.IsDirectory,
		})
	}
	return candidates
}

func (pattern ignorePattern) matchesAny(candidates []ignoreCandidate) bool {
	for _, candidate := range candidates {
		if pattern.matches(candidate.segments, candidate.isDirectory) {
			return true
		}
	}
	return false
}
