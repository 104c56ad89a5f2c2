package checks

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/drift/internal/gitrepo"
	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

const (
	checkStartedMessageConstant   = "running check"
	checkCompletedMessageConstant = "check completed"
	logFieldCheckConstant         = "check"
	logFieldFindingCountConstant  = "findings"
)

var (
	// ErrUnknownKind indicates a Kind outside the closed enumeration.
	ErrUnknownKind = errors.New("unknown check kind")
	// ErrStatusReaderNotConfigured indicates the runner was built without git access.
	ErrStatusReaderNotConfigured = errors.New("status reader not configured")
)

// Runner executes checks against a FileSet.
type Runner struct {
	statusReader gitrepo.StatusReader
	logger       *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(statusReader gitrepo.StatusReader, logger *zap.Logger) (*Runner, error) {
	if statusReader == nil {
		return nil, ErrStatusReaderNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{statusReader: statusReader, logger: logger}, nil
}

// Run executes a single check.
func (runner *Runner) Run(executionContext context.Context, kind Kind, fileSet walker.FileSet) ([]report.Finding, error) {
	runner.logger.Debug(checkStartedMessageConstant, zap.Stringer(logFieldCheckConstant, kind))

	var findings []report.Finding
	switch kind {
	case KindStaleConfig:
		findings = FindStaleConfigurations(fileSet)
	case KindVersionMismatch:
		findings = FindVersionMismatches(fileSet, runner.logger)
	case KindDeadCodeMarker:
		findings = FindDeadCodeMarkers(fileSet, runner.logger)
	case KindGitDrift:
		findings = FindGitDrift(executionContext, runner.statusReader, fileSet.Root(), runner.logger)
	case KindGitignoreDrift:
		findings = FindGitignoreDrift(fileSet, runner.logger)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	runner.logger.Debug(checkCompletedMessageConstant, zap.Stringer(logFieldCheckConstant, kind), zap.Int(logFieldFindingCountConstant, len(findings)))
	return findings, nil
}

// RunAll executes every check in order and concatenates their findings.
func (runner *Runner) RunAll(executionContext context.Context, fileSet walker.FileSet) ([]report.Finding, error) {
	var findings []report.Finding
	for _, kind := range Kinds() {
		kindFindings, runError := runner.Run(executionContext, kind, fileSet)
		if runError != nil {
			return nil, runError
		}
		findings = append(findings, kindFindings...)
	}
	return findings, nil
}
