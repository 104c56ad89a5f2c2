package checks_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/drift/internal/checks"
	"github.com/temirov/drift/internal/report"
)

type expectedMismatch struct {
	path    string
	message string
	detail  string
}

func TestFindVersionMismatches(testInstance *testing.T) {
	testCases := []struct {
		name     string
		files    map[string]string
		expected []expectedMismatch
	}{
		{
			name: "rust_identical_versions",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"1.75\"\n",
				"Cargo.toml":          "[package]\nrust-version = \"1.75\"\n",
			},
		},
		{
			name: "rust_differing_versions",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"1.70\"\n",
				"Cargo.toml":          "[package]\nrust-version = \"1.75\"\n",
			},
			expected: []expectedMismatch{{
				path:    "rust-toolchain.toml",
				message: "Rust version mismatch",
				detail:  "rust-toolchain.toml=1.70 Cargo.toml=1.75",
			}},
		},
		{
			name: "rust_precision_of_less_specific_side",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"1.75.0\"\n",
				"Cargo.toml":          "[package]\nrust-version = \"1.75\"\n",
			},
		},
		{
			name: "rust_nightly_with_rust_version",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"nightly-2024-01-01\"\n",
				"Cargo.toml":          "[package]\nrust-version = \"1.75\"\n",
			},
			expected: []expectedMismatch{{
				path:    "rust-toolchain.toml",
				message: "rust-toolchain.toml uses a nightly toolchain but Cargo.toml declares rust-version",
				detail:  "rust-toolchain.toml=nightly-2024-01-01 Cargo.toml=1.75",
			}},
		},
		{
			name: "rust_stable_channel_not_comparable",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"stable\"\n",
				"Cargo.toml":          "[package]\nrust-version = \"1.75\"\n",
			},
		},
		{
			name: "rust_legacy_file_and_workspace_version",
			files: map[string]string{
				"rust-toolchain": "1.68.2\n",
				"Cargo.toml":     "[workspace]\nmembers = [\"a\"]\n\n[workspace.package]\nrust-version = \"1.70\"\n",
			},
			expected: []expectedMismatch{{
				path:    "rust-toolchain",
				message: "Rust version mismatch",
				detail:  "rust-toolchain=1.68.2 Cargo.toml=1.70",
			}},
		},
		{
			name: "rust_missing_field_is_not_a_mismatch",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"1.70\"\n",
				"Cargo.toml":          "[package]\nname = \"demo\"\n",
			},
		},
		{
			name: "rust_malformed_manifest",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"1.70\"\n",
				"Cargo.toml":          "[package\nrust-version = ",
			},
		},
		{
			name: "node_differing_versions",
			files: map[string]string{
				".nvmrc":       "v18.17.0\n",
				"package.json": `{"name":"demo","engines":{"node":">=20"}}`,
			},
			expected: []expectedMismatch{{
				path:    ".nvmrc",
				message: "Node version mismatch",
				detail:  ".nvmrc=v18.17.0 package.json=>=20",
			}},
		},
		{
			name: "node_matching_major",
			files: map[string]string{
				".node-version": "18.17.0\n",
				"package.json":  `{"engines":{"node":"^18"}}`,
			},
		},
		{
			name: "node_alias_not_comparable",
			files: map[string]string{
				".nvmrc":       "lts/*\n",
				"package.json": `{"engines":{"node":"18.x"}}`,
			},
		},
		{
			name: "node_malformed_package_json",
			files: map[string]string{
				".nvmrc":       "18\n",
				"package.json": `{"engines":`,
			},
		},
		{
			name: "go_toolchain_directive_preferred",
			files: map[string]string{
				".go-version": "1.22.1\n",
				"go.mod":      "module example.com/demo\n\ngo 1.22\n\ntoolchain go1.22.3\n",
			},
			expected: []expectedMismatch{{
				path:    ".go-version",
				message: "Go version mismatch",
				detail:  ".go-version=1.22.1 go.mod=1.22.3",
			}},
		},
		{
			name: "go_directive_fallback",
			files: map[string]string{
				".go-version": "1.21.5\n",
				"go.mod":      "module example.com/demo\n\ngo 1.21\n",
			},
		},
		{
			name: "workflow_versions_compared_with_local_pins",
			files: map[string]string{
				".nvmrc": "20\n",
				"go.mod": "module example.com/demo\n\ngo 1.22\n",
				".github/workflows/ci.yml": `on: push
jobs:
  test:
    runs-on: ubuntu-latest
    strategy:
      matrix:
        node: [18, 20]
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-node@v4
        with:
          node-version: 18
      - uses: actions/setup-node@v4
        with:
          node-version: ${{ matrix.node }}
      - uses: actions/setup-go@v5
        with:
          go-version: 1.20
`,
			},
			expected: []expectedMismatch{
				{
					path:    ".github/workflows/ci.yml",
					message: "Node version in CI workflow differs from .nvmrc",
					detail:  ".github/workflows/ci.yml=18 .nvmrc=20",
				},
				{
					path:    ".github/workflows/ci.yml",
					message: "Go version in CI workflow differs from go.mod",
					detail:  ".github/workflows/ci.yml=1.20 go.mod=1.22",
				},
			},
		},
		{
			name: "workflow_rust_action_reference",
			files: map[string]string{
				"rust-toolchain.toml": "[toolchain]\nchannel = \"1.75\"\n",
				".github/workflows/release.yaml": `jobs:
  build:
    steps:
      - uses: dtolnay/rust-toolchain@1.75
      - uses: dtolnay/rust-toolchain@master
        with:
          toolchain: 1.74.0
`,
			},
			expected: []expectedMismatch{{
				path:    ".github/workflows/release.yaml",
				message: "Rust version in CI workflow differs from rust-toolchain.toml",
				detail:  ".github/workflows/release.yaml=1.74.0 rust-toolchain.toml=1.75",
			}},
		},
		{
			name: "workflow_outside_workflow_directory_ignored",
			files: map[string]string{
				".nvmrc":          "20\n",
				"ci/pipeline.yml": "jobs:\n  a:\n    steps:\n      - uses: actions/setup-node@v4\n        with:\n          node-version: 16\n",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			findings := checks.FindVersionMismatches(buildFileSet(testInstance, testCase.files), zap.NewNop())

			actual := make([]expectedMismatch, 0, len(findings))
			for _, finding := range findings {
				require.Equal(testInstance, report.CategoryVersionMismatch, finding.Category)
				require.Equal(testInstance, report.SeverityWarning, finding.Severity)
				actual = append(actual, expectedMismatch{path: finding.Path, message: finding.Message, detail: finding.Detail})
			}
			require.Equal(testInstance, len(testCase.expected), len(actual))
			if len(testCase.expected) > 0 {
				require.Equal(testInstance, testCase.expected, actual)
			}
		})
	}
}

func TestFindVersionMismatchesLogsParseErrorsAtDebug(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	fileSet := buildFileSet(testInstance, map[string]string{
		"rust-toolchain.toml": "[toolchain]\nchannel = \"1.70\"\n",
		"Cargo.toml":          "[package\n",
	})

	findings := checks.FindVersionMismatches(fileSet, zap.New(observerCore))
	require.Empty(testInstance, findings)

	parseLogs := observedLogs.FilterMessage("ignoring unparseable manifest").All()
	require.Len(testInstance, parseLogs, 1)
	require.Equal(testInstance, zap.DebugLevel, parseLogs[0].Level)
}
