package checks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIgnorePattern(testInstance *testing.T) {
	testCases := []struct {
		name              string
		line              string
		expectPattern     bool
		expectedSegments  []string
		expectedDirectory bool
	}{
		{name: "blank", line: "   "},
		{name: "comment", line: "# comment"},
		{name: "negation", line: "!important.log"},
		{name: "root_only", line: "/"},
		{name: "unanchored", line: "*.log", expectPattern: true, expectedSegments: []string{"**", "*.log"}},
		{name: "anchored", line: "/build", expectPattern: true, expectedSegments: []string{"build"}},
		{name: "inner_slash_anchors", line: "docs/*.pdf", expectPattern: true, expectedSegments: []string{"docs", "*.pdf"}},
		{name: "directory_only", line: "dist/", expectPattern: true, expectedSegments: []string{"**", "dist"}, expectedDirectory: true},
		{name: "escaped_hash", line: `\#notes`, expectPattern: true, expectedSegments: []string{"**", "#notes"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			pattern, isPattern := parseIgnorePattern(testCase.line)
			require.Equal(testInstance, testCase.expectPattern, isPattern)
			if !testCase.expectPattern {
				return
			}
			require.Equal(testInstance, testCase.expectedSegments, pattern.segments)
			require.Equal(testInstance, testCase.expectedDirectory, pattern.directoryOnly)
		})
	}
}

func TestIgnorePatternMatches(testInstance *testing.T) {
	testCases := []struct {
		name        string
		line        string
		path        string
		isDirectory bool
		expected    bool
	}{
		{name: "basename_at_depth", line: "*.log", path: "a/b/c.log", expected: true},
		{name: "ancestor_directory", line: "vendor", path: "vendor/pkg/file.go", expected: true},
		{name: "directory_only_rejects_file", line: "vendor/", path: "vendor", expected: false},
		{name: "directory_only_accepts_directory", line: "vendor/", path: "vendor", isDirectory: true, expected: true},
		{name: "anchored_rejects_nested", line: "/vendor", path: "lib/vendor/x.go", expected: false},
		{name: "double_star_zero_segments", line: "a/**/b", path: "a/b", expected: true},
		{name: "trailing_double_star_rejects_directory_itself", line: "foo/**", path: "foo", isDirectory: true, expected: false},
		{name: "trailing_double_star_accepts_contents", line: "foo/**", path: "foo/bar.txt", expected: true},
		{name: "lone_double_star_accepts_file", line: "**", path: "notes.txt", expected: true},
		{name: "character_class", line: "file[0-9].txt", path: "file7.txt", expected: true},
		{name: "malformed_class", line: "file[.txt", path: "file[.txt", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			pattern, isPattern := parseIgnorePattern(testCase.line)
			require.True(testInstance, isPattern)
			require.Equal(testInstance, testCase.expected, pattern.matches(strings.Split(testCase.path, "/"), testCase.isDirectory))
		})
	}
}
