package checks

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/mod/modfile"

	"github.com/temirov/drift/internal/drifterrors"
	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

const (
	rustToolchainManifestConstant = "rust-toolchain.toml"
	rustToolchainLegacyConstant   = "rust-toolchain"
	cargoManifestConstant         = "Cargo.toml"
	nvmrcFileConstant             = ".nvmrc"
	nodeVersionFileConstant       = ".node-version"
	packageManifestConstant       = "package.json"
	goVersionFileConstant         = ".go-version"
	goModuleManifestConstant      = "go.mod"

	rustEcosystemLabelConstant = "Rust"
	nodeEcosystemLabelConstant = "Node"
	goEcosystemLabelConstant   = "Go"

	versionMismatchTemplateConstant     = "%s version mismatch"
	nightlyMismatchTemplateConstant     = "%s uses a nightly toolchain but %s declares rust-version"
	versionPairDetailTemplateConstant   = "%s=%s %s=%s"
	toolchainChannelFieldConstant       = "toolchain.channel"
	rustVersionFieldConstant            = "rust-version"
	enginesNodeFieldConstant            = "engines.node"
	goDirectiveFieldConstant            = "go"
	goToolchainPrefixConstant           = "go"
	legacyToolchainTableMarkerConstant  = "[toolchain]"
	unparseableManifestMessageConstant  = "ignoring unparseable manifest"
	unreadableManifestMessageConstant   = "ignoring unreadable manifest"
	incomparableVersionsMessageConstant = "versions are not comparable"
	logFieldLeftVersionConstant         = "left"
	logFieldRightVersionConstant        = "right"
	nonStringRustVersionMessageConstant = "rust-version is not a string"
	emptyLegacyToolchainMessageConstant = "no channel declared"
	goModuleParseFileNameConstant       = "go.mod"
	readManifestOperationConstant       = "read"
)

var (
	errNonStringRustVersion = errors.New(nonStringRustVersionMessageConstant)
	errEmptyLegacyToolchain = errors.New(emptyLegacyToolchainMessageConstant)
)

// declaredVersion is a version value together with the file declaring it.
type declaredVersion struct {
	Source string
	Value  string
}

func (version declaredVersion) present() bool {
	return len(version.Source) > 0 && len(strings.TrimSpace(version.Value)) > 0
}

type rustToolchainDocument struct {
	Toolchain struct {
		Channel string `toml:"channel"`
	} `toml:"toolchain"`
}

type cargoManifestDocument struct {
	Package struct {
		RustVersion any `toml:"rust-version"`
	} `toml:"package"`
	Workspace struct {
		Package struct {
			RustVersion any `toml:"rust-version"`
		} `toml:"package"`
	} `toml:"workspace"`
}

type packageManifestDocument struct {
	Engines struct {
		Node string `json:"node"`
	} `json:"engines"`
}

// versionInspector reads manifests at the root of a FileSet.
type versionInspector struct {
	fileSet walker.FileSet
	logger  *zap.Logger
}

// FindVersionMismatches compares toolchain pins against manifest declarations
// for Rust, Node and Go, then compares CI workflow setup steps against the
// local pins. Absent or unparseable files produce no findings.
func FindVersionMismatches(fileSet walker.FileSet, logger *zap.Logger) []report.Finding {
	if logger == nil {
		logger = zap.NewNop()
	}
	inspector := versionInspector{fileSet: fileSet, logger: logger}

	var findings []report.Finding
	findings = append(findings, inspector.rustMismatches()...)
	findings = append(findings, inspector.nodeMismatches()...)
	findings = append(findings, inspector.goMismatches()...)
	findings = append(findings, inspector.workflowMismatches()...)
	return findings
}

func (inspector versionInspector) rustMismatches() []report.Finding {
	toolchain := inspector.rustToolchainPin()
	declared := inspector.cargoRustVersion()
	if !toolchain.present() || !declared.present() {
		return nil
	}

	if isNightlyChannel(toolchain.Value) {
		return []report.Finding{{
			Category: report.CategoryVersionMismatch,
			Severity: report.SeverityWarning,
			Path:     toolchain.Source,
			Message:  fmt.Sprintf(nightlyMismatchTemplateConstant, toolchain.Source, declared.Source),
			Detail:   pairDetail(toolchain, declared),
		}}
	}
	return inspector.comparePair(rustEcosystemLabelConstant, toolchain, declared)
}

func (inspector versionInspector) nodeMismatches() []report.Finding {
	declared := inspector.packageEnginesNode()
	if !declared.present() {
		return nil
	}
	var findings []report.Finding
	for _, pin := range inspector.nodePins() {
		findings = append(findings, inspector.comparePair(nodeEcosystemLabelConstant, pin, declared)...)
	}
	return findings
}

func (inspector versionInspector) goMismatches() []report.Finding {
	pin := inspector.plainPin(goVersionFileConstant)
	declared := inspector.goModuleVersion()
	if !pin.present() || !declared.present() {
		return nil
	}
	return inspector.comparePair(goEcosystemLabelConstant, pin, declared)
}

func (inspector versionInspector) comparePair(ecosystemLabel string, pin declaredVersion, declared declaredVersion) []report.Finding {
	versionsComparable, equal := compareVersions(pin.Value, declared.Value)
	if !versionsComparable {
		inspector.logger.Debug(incomparableVersionsMessageConstant,
			zap.String(logFieldLeftVersionConstant, pin.Value),
			zap.String(logFieldRightVersionConstant, declared.Value))
		return nil
	}
	if equal {
		return nil
	}
	return []report.Finding{{
		Category: report.CategoryVersionMismatch,
		Severity: report.SeverityWarning,
		Path:     pin.Source,
		Message:  fmt.Sprintf(versionMismatchTemplateConstant, ecosystemLabel),
		Detail:   pairDetail(pin, declared),
	}}
}

func pairDetail(left declaredVersion, right declaredVersion) string {
	return fmt.Sprintf(versionPairDetailTemplateConstant, left.Source, strings.TrimSpace(left.Value), right.Source, strings.TrimSpace(right.Value))
}

func (inspector versionInspector) rustToolchainPin() declaredVersion {
	if content, exists := inspector.readManifest(rustToolchainManifestConstant); exists {
		var document rustToolchainDocument
		if decodeError := toml.Unmarshal(content, &document); decodeError != nil {
			inspector.logParseError(drifterrors.ParseError{Path: rustToolchainManifestConstant, Err: decodeError})
			return declaredVersion{}
		}
		return declaredVersion{Source: rustToolchainManifestConstant, Value: document.Toolchain.Channel}
	}

	content, exists := inspector.readManifest(rustToolchainLegacyConstant)
	if !exists {
		return declaredVersion{}
	}
	if strings.Contains(string(content), legacyToolchainTableMarkerConstant) {
		var document rustToolchainDocument
		if decodeError := toml.Unmarshal(content, &document); decodeError != nil {
			inspector.logParseError(drifterrors.ParseError{Path: rustToolchainLegacyConstant, Err: decodeError})
			return declaredVersion{}
		}
		return declaredVersion{Source: rustToolchainLegacyConstant, Value: document.Toolchain.Channel}
	}

	channel := firstMeaningfulLine(string(content))
	if len(channel) == 0 {
		inspector.logParseError(drifterrors.ParseError{Path: rustToolchainLegacyConstant, Field: toolchainChannelFieldConstant, Err: errEmptyLegacyToolchain})
		return declaredVersion{}
	}
	return declaredVersion{Source: rustToolchainLegacyConstant, Value: channel}
}

func (inspector versionInspector) cargoRustVersion() declaredVersion {
	content, exists := inspector.readManifest(cargoManifestConstant)
	if !exists {
		return declaredVersion{}
	}
	var document cargoManifestDocument
	if decodeError := toml.Unmarshal(content, &document); decodeError != nil {
		inspector.logParseError(drifterrors.ParseError{Path: cargoManifestConstant, Err: decodeError})
		return declaredVersion{}
	}

	for _, candidate := range []any{document.Package.RustVersion, document.Workspace.Package.RustVersion} {
		switch value := candidate.(type) {
		case nil:
			continue
		case string:
			return declaredVersion{Source: cargoManifestConstant, Value: value}
		default:
			inspector.logParseError(drifterrors.ParseError{Path: cargoManifestConstant, Field: rustVersionFieldConstant, Err: errNonStringRustVersion})
			return declaredVersion{}
		}
	}
	return declaredVersion{}
}

func (inspector versionInspector) nodePins() []declaredVersion {
	var pins []declaredVersion
	for _, pinFile := range []string{nvmrcFileConstant, nodeVersionFileConstant} {
		if pin := inspector.plainPin(pinFile); pin.present() {
			pins = append(pins, pin)
		}
	}
	return pins
}

func (inspector versionInspector) packageEnginesNode() declaredVersion {
	content, exists := inspector.readManifest(packageManifestConstant)
	if !exists {
		return declaredVersion{}
	}
	var document packageManifestDocument
	if decodeError := json.Unmarshal(content, &document); decodeError != nil {
		inspector.logParseError(drifterrors.ParseError{Path: packageManifestConstant, Field: enginesNodeFieldConstant, Err: decodeError})
		return declaredVersion{}
	}
	return declaredVersion{Source: packageManifestConstant, Value: document.Engines.Node}
}

func (inspector versionInspector) goModuleVersion() declaredVersion {
	content, exists := inspector.readManifest(goModuleManifestConstant)
	if !exists {
		return declaredVersion{}
	}
	moduleFile, parseError := modfile.Parse(goModuleParseFileNameConstant, content, nil)
	if parseError != nil {
		inspector.logParseError(drifterrors.ParseError{Path: goModuleManifestConstant, Field: goDirectiveFieldConstant, Err: parseError})
		return declaredVersion{}
	}
	if moduleFile.Toolchain != nil && len(moduleFile.Toolchain.Name) > 0 {
		return declaredVersion{Source: goModuleManifestConstant, Value: strings.TrimPrefix(moduleFile.Toolchain.Name, goToolchainPrefixConstant)}
	}
	if moduleFile.Go != nil {
		return declaredVersion{Source: goModuleManifestConstant, Value: moduleFile.Go.Version}
	}
	return declaredVersion{}
}

// localPin returns the version pin of an ecosystem used to judge CI workflows.
func (inspector versionInspector) localPin(ecosystemLabel string) declaredVersion {
	switch ecosystemLabel {
	case rustEcosystemLabelConstant:
		return inspector.rustToolchainPin()
	case nodeEcosystemLabelConstant:
		if pins := inspector.nodePins(); len(pins) > 0 {
			return pins[0]
		}
		return declaredVersion{}
	case goEcosystemLabelConstant:
		if pin := inspector.plainPin(goVersionFileConstant); pin.present() {
			return pin
		}
		return inspector.goModuleVersion()
	default:
		return declaredVersion{}
	}
}

func (inspector versionInspector) plainPin(relativePath string) declaredVersion {
	content, exists := inspector.readManifest(relativePath)
	if !exists {
		return declaredVersion{}
	}
	return declaredVersion{Source: relativePath, Value: firstMeaningfulLine(string(content))}
}

func (inspector versionInspector) readManifest(relativePath string) ([]byte, bool) {
	if !inspector.fileSet.ContainsFile(relativePath) {
		return nil, false
	}
	content, readError := inspector.fileSet.ReadFile(relativePath)
	if readError != nil {
		inspector.logger.Debug(unreadableManifestMessageConstant, zap.Error(drifterrors.IOError{Path: relativePath, Operation: readManifestOperationConstant, Err: readError}))
		return nil, false
	}
	return content, true
}

func (inspector versionInspector) logParseError(parseError drifterrors.ParseError) {
	inspector.logger.Debug(unparseableManifestMessageConstant, zap.Error(parseError))
}

func firstMeaningfulLine(content string) string {
	for line := range strings.Lines(content) {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, hashCommentIntroducerConstant) {
			continue
		}
		return trimmed
	}
	return ""
}
