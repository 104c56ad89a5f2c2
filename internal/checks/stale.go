package checks

import (
	"path"
	"strings"

	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

const staleConfigurationMessageConstant = "Stale configuration or backup file"

var staleFileSuffixes = []string{".old", ".bak", ".tmp", ".swp", ".orig"}

// FindStaleConfigurations flags files whose names end in a backup suffix.
// Matching is case-sensitive.
func FindStaleConfigurations(fileSet walker.FileSet) []report.Finding {
	var findings []report.Finding
	for _, entry := range fileSet.Files() {
		if isDependencyOutputPath(entry.Path) || !hasStaleSuffix(path.Base(entry.Path)) {
			continue
		}
		findings = append(findings, report.Finding{
			Category: report.CategoryStaleConfig,
			Severity: report.SeverityWarning,
			Path:     entry.Path,
			Message:  staleConfigurationMessageConstant,
		})
	}
	return findings
}

func hasStaleSuffix(fileName string) bool {
	for _, suffix := range staleFileSuffixes {
		if strings.HasSuffix(fileName, suffix) {
			return true
		}
	}
	return false
}
