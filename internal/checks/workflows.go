package checks

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/drift/internal/drifterrors"
	"github.com/temirov/drift/internal/report"
)

const (
	workflowDirectoryConstant          = ".github/workflows"
	workflowYAMLExtensionConstant      = ".yml"
	workflowYAMLLongExtensionConstant  = ".yaml"
	actionReferenceSeparatorConstant   = "@"
	expressionMarkerConstant           = "${{"
	setupNodeActionConstant            = "actions/setup-node"
	setupGoActionConstant              = "actions/setup-go"
	dtolnayRustToolchainActionConstant = "dtolnay/rust-toolchain"
	actionsRsToolchainActionConstant   = "actions-rs/toolchain"
	nodeVersionInputConstant           = "node-version"
	goVersionInputConstant             = "go-version"
	toolchainInputConstant             = "toolchain"
	workflowMismatchTemplateConstant   = "%s version in CI workflow differs from %s"
	workflowStepsFieldConstant         = "jobs.steps"
)

type workflowDocument struct {
	Jobs map[string]workflowJob `yaml:"jobs"`
}

type workflowJob struct {
	Steps []workflowStep `yaml:"steps"`
}

type workflowStep struct {
	Uses string               `yaml:"uses"`
	With map[string]yaml.Node `yaml:"with"`
}

// workflowToolchainRequest is a toolchain version requested by a CI step.
type workflowToolchainRequest struct {
	ecosystemLabel string
	version        string
}

func (inspector versionInspector) workflowMismatches() []report.Finding {
	var findings []report.Finding
	for _, entry := range inspector.fileSet.Files() {
		if !isWorkflowFile(entry.Path) {
			continue
		}
		content, exists := inspector.readManifest(entry.Path)
		if !exists {
			continue
		}

		var document workflowDocument
		if decodeError := yaml.Unmarshal(content, &document); decodeError != nil {
			inspector.logParseError(drifterrors.ParseError{Path: entry.Path, Field: workflowStepsFieldConstant, Err: decodeError})
			continue
		}

		for _, request := range workflowToolchainRequests(document) {
			pin := inspector.localPin(request.ecosystemLabel)
			if !pin.present() {
				continue
			}
			versionsComparable, equal := compareVersions(request.version, pin.Value)
			if !versionsComparable || equal {
				continue
			}
			findings = append(findings, report.Finding{
				Category: report.CategoryVersionMismatch,
				Severity: report.SeverityWarning,
				Path:     entry.Path,
				Message:  fmt.Sprintf(workflowMismatchTemplateConstant, request.ecosystemLabel, pin.Source),
				Detail:   pairDetail(declaredVersion{Source: entry.Path, Value: request.version}, pin),
			})
		}
	}
	return findings
}

func isWorkflowFile(relativePath string) bool {
	if path.Dir(relativePath) != workflowDirectoryConstant {
		return false
	}
	extension := path.Ext(relativePath)
	return extension == workflowYAMLExtensionConstant || extension == workflowYAMLLongExtensionConstant
}

// workflowToolchainRequests lists the literal toolchain versions requested by
// setup steps, skipping expressions and matrix references.
func workflowToolchainRequests(document workflowDocument) []workflowToolchainRequest {
	var requests []workflowToolchainRequest
	for _, jobName := range sortedKeys(document.Jobs) {
		for _, step := range document.Jobs[jobName].Steps {
			actionName, actionReference, _ := strings.Cut(strings.TrimSpace(step.Uses), actionReferenceSeparatorConstant)

			var request workflowToolchainRequest
			switch actionName {
			case setupNodeActionConstant:
				request = workflowToolchainRequest{ecosystemLabel: nodeEcosystemLabelConstant, version: scalarInput(step, nodeVersionInputConstant)}
			case setupGoActionConstant:
				request = workflowToolchainRequest{ecosystemLabel: goEcosystemLabelConstant, version: scalarInput(step, goVersionInputConstant)}
			case dtolnayRustToolchainActionConstant:
				requested := scalarInput(step, toolchainInputConstant)
				if len(requested) == 0 {
					requested = actionReference
				}
				request = workflowToolchainRequest{ecosystemLabel: rustEcosystemLabelConstant, version: requested}
			case actionsRsToolchainActionConstant:
				request = workflowToolchainRequest{ecosystemLabel: rustEcosystemLabelConstant, version: scalarInput(step, toolchainInputConstant)}
			default:
				continue
			}

			if len(request.version) == 0 || strings.Contains(request.version, expressionMarkerConstant) {
				continue
			}
			requests = append(requests, request)
		}
	}
	return requests
}

func scalarInput(step workflowStep, inputName string) string {
	node, exists := step.With[inputName]
	if !exists || node.Kind != yaml.ScalarNode {
		return ""
	}
	return strings.TrimSpace(node.Value)
}
