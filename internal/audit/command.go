package audit

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/drift/internal/execshell"
	"github.com/temirov/drift/internal/gitrepo"
	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

const (
	commandUseConstant           = "drift [path]"
	commandShortDescription      = "Report drift in a repository"
	commandLongDescription       = "drift scans a repository for stale backup files, toolchain version mismatches, dead-code markers, uncommitted git state, and gitignore entries that match nothing. It exits 0 when no drift is found and 1 otherwise."
	flagJSONName                 = "json"
	flagJSONShorthand            = "j"
	flagJSONDescription          = "Render the report as JSON"
	maximumPathArgumentsConstant = 1
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the drift cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	FileSystem     afero.Fs
	GitExecutor    execshell.GitExecutor
	StatusReader   gitrepo.StatusReader
}

// Build constructs the cobra command that audits a repository.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescription,
		Long:          commandLongDescription,
		Args:          cobra.MaximumNArgs(maximumPathArgumentsConstant),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	command.Flags().BoolP(flagJSONName, flagJSONShorthand, false, flagJSONDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command, arguments)

	logger := builder.resolveLogger()
	gitExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, logger)
	if executorError != nil {
		return executorError
	}

	statusReader, readerError := ResolveStatusReader(builder.StatusReader, gitExecutor)
	if readerError != nil {
		return readerError
	}

	checkRunner, runnerError := ResolveCheckRunner(statusReader, logger)
	if runnerError != nil {
		return runnerError
	}

	collector := walker.NewWalker(ResolveFileSystem(builder.FileSystem), logger)
	service := NewService(collector, checkRunner, command.OutOrStdout(), logger)
	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) CommandOptions {
	options := CommandOptions{Root: defaultRootPathConstant, Format: report.FormatText}
	if len(arguments) > 0 {
		options.Root = arguments[0]
	}
	if jsonRequested, _ := command.Flags().GetBool(flagJSONName); jsonRequested {
		options.Format = report.FormatJSON
	}
	return options
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
