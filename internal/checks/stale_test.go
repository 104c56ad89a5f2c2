package checks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/drift/internal/checks"
	"github.com/temirov/drift/internal/report"
)

func TestFindStaleConfigurations(testInstance *testing.T) {
	testCases := []struct {
		name          string
		files         map[string]string
		expectedPaths []string
	}{
		{name: "backup_suffix", files: map[string]string{"x.bak": ""}, expectedPaths: []string{"x.bak"}},
		{name: "suffix_prefix_only", files: map[string]string{"x.bake": ""}},
		{name: "case_sensitive", files: map[string]string{"x.BAK": ""}},
		{
			name: "every_suffix_in_walk_order",
			files: map[string]string{
				"config.old":        "",
				"nested/.main.swp":  "",
				"nested/patch.orig": "",
				"scratch.tmp":       "",
				"settings.yaml":     "",
			},
			expectedPaths: []string{"config.old", "nested/.main.swp", "nested/patch.orig", "scratch.tmp"},
		},
		{
			name: "dependency_directories_skipped",
			files: map[string]string{
				"node_modules/pkg/index.js.bak": "",
				"target/debug/build.old":        "",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			findings := checks.FindStaleConfigurations(buildFileSet(testInstance, testCase.files))

			paths := make([]string, 0, len(findings))
			for _, finding := range findings {
				require.Equal(testInstance, report.CategoryStaleConfig, finding.Category)
				require.Equal(testInstance, report.SeverityWarning, finding.Severity)
				require.Equal(testInstance, "Stale configuration or backup file", finding.Message)
				paths = append(paths, finding.Path)
			}
			require.ElementsMatch(testInstance, testCase.expectedPaths, paths)
		})
	}
}
