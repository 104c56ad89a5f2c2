package checks

import (
	"path"
	"strings"
)

const (
	ignoreCommentPrefixConstant  = "#"
	ignoreNegationPrefixConstant = "!"
	ignoreEscapePrefixConstant   = `\`
	ignoreAnyDepthSegment        = "**"
)

// ignorePattern is a parsed gitignore entry. Unanchored entries carry a
// leading "**" segment so that they match at any depth.
type ignorePattern struct {
	segments      []string
	directoryOnly bool
}

// parseIgnorePattern converts one gitignore line into a pattern. It reports
// false for blank lines, comments and negations.
func parseIgnorePattern(line string) (ignorePattern, bool) {
	entry := strings.TrimSpace(line)
	if len(entry) == 0 || strings.HasPrefix(entry, ignoreCommentPrefixConstant) || strings.HasPrefix(entry, ignoreNegationPrefixConstant) {
		return ignorePattern{}, false
	}
	entry = strings.TrimPrefix(entry, ignoreEscapePrefixConstant)

	directoryOnly := strings.HasSuffix(entry, pathSeparatorConstant)
	entry = strings.TrimRight(entry, pathSeparatorConstant)
	anchored := strings.Contains(entry, pathSeparatorConstant)
	entry = strings.TrimLeft(entry, pathSeparatorConstant)
	if len(entry) == 0 {
		return ignorePattern{}, false
	}

	var segments []string
	if !anchored {
		segments = append(segments, ignoreAnyDepthSegment)
	}
	for _, segment := range strings.Split(entry, pathSeparatorConstant) {
		if len(segment) > 0 {
			segments = append(segments, segment)
		}
	}
	return ignorePattern{segments: segments, directoryOnly: directoryOnly}, true
}

// matches reports whether the pattern ignores the path or one of its ancestor
// directories. Directory-only patterns never match a file directly.
func (pattern ignorePattern) matches(pathSegments []string, isDirectory bool) bool {
	for prefixLength := 1; prefixLength <= len(pathSegments); prefixLength++ {
		prefixIsDirectory := prefixLength < len(pathSegments) || isDirectory
		if pattern.directoryOnly && !prefixIsDirectory {
			continue
		}
		if matchIgnoreSegments(pattern.segments, pathSegments[:prefixLength]) {
			return true
		}
	}
	return false
}

func matchIgnoreSegments(patternSegments []string, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == ignoreAnyDepthSegment {
		// A trailing "**" matches contents only, never the directory itself.
		minimumOffset := 0
		if len(patternSegments) == 1 {
			minimumOffset = 1
		}
		for offset := minimumOffset; offset <= len(pathSegments); offset++ {
			if matchIgnoreSegments(patternSegments[1:], pathSegments[offset:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	matched, matchError := path.Match(patternSegments[0], pathSegments[0])
	if matchError != nil || !matched {
		return false
	}
	return matchIgnoreSegments(patternSegments[1:], pathSegments[1:])
}
