package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/drift/internal/report"
)

const (
	defaultRootPathConstant             = "."
	auditStartedMessageConstant         = "auditing repository"
	auditCompletedMessageConstant       = "audit completed"
	logFieldRootConstant                = "root"
	logFieldTotalConstant               = "total"
	checkExecutionErrorTemplateConstant = "checks failed: %w"
	reportAssemblyErrorTemplateConstant = "report assembly failed: %w"
	reportRenderErrorTemplateConstant   = "report rendering failed: %w"
)

// ErrDriftDetected reports that the audit produced at least one finding.
var ErrDriftDetected = errors.New("drift detected")

// Service coordinates walking, checking and reporting.
type Service struct {
	collector    FileSetCollector
	runner       CheckRunner
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(collector FileSetCollector, runner CheckRunner, outputWriter io.Writer, logger *zap.Logger) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		collector:    collector,
		runner:       runner,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run audits options.Root, writes the rendered report and returns the report.
// The error is ErrDriftDetected when the report is non-empty, or the setup
// failure that prevented the audit.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (report.Report, error) {
	root := options.Root
	if len(root) == 0 {
		root = defaultRootPathConstant
	}
	format := options.Format
	if len(format) == 0 {
		format = report.FormatText
	}

	service.logger.Info(auditStartedMessageConstant, zap.String(logFieldRootConstant, root))

	fileSet, collectError := service.collector.Collect(root)
	if collectError != nil {
		return report.Report{}, collectError
	}

	findings, runError := service.runner.RunAll(executionContext, fileSet)
	if runError != nil {
		return report.Report{}, fmt.Errorf(checkExecutionErrorTemplateConstant, runError)
	}

	auditReport, reportError := report.New(findings)
	if reportError != nil {
		return report.Report{}, fmt.Errorf(reportAssemblyErrorTemplateConstant, reportError)
	}

	if renderError := report.Render(service.outputWriter, auditReport, format); renderError != nil {
		return auditReport, fmt.Errorf(reportRenderErrorTemplateConstant, renderError)
	}

	service.logger.Info(auditCompletedMessageConstant, zap.String(logFieldRootConstant, root), zap.Int(logFieldTotalConstant, auditReport.Total()))
	if !auditReport.Empty() {
		return auditReport, ErrDriftDetected
	}
	return auditReport, nil
}
