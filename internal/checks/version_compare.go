package checks

import (
	"strings"

	"golang.org/x/mod/semver"
)

const (
	semverPrefixConstant         = "v"
	versionComponentSeparator    = "."
	wildcardComponentConstant    = "x"
	starComponentConstant        = "*"
	maximumVersionPrecision      = 3
	nightlyChannelPrefixConstant = "nightly"
)

var versionOperatorPrefixes = []string{">=", "<=", "==", "^", "~", "=", ">", "<", "v", "V"}

// normalizedVersion is a numeric version with the precision it was declared at.
type normalizedVersion struct {
	components []string
	prerelease string
}

// normalizeVersion strips range operators and wildcard components. It reports
// false for values that are not numeric versions, such as channel names or
// aliases.
func normalizeVersion(raw string) (normalizedVersion, bool) {
	value := strings.TrimSpace(raw)
	if fields := strings.Fields(value); len(fields) > 0 {
		value = fields[0]
	}
	for trimmed := true; trimmed; {
		trimmed = false
		for _, prefix := range versionOperatorPrefixes {
			if strings.HasPrefix(value, prefix) {
				value = strings.TrimSpace(strings.TrimPrefix(value, prefix))
				trimmed = true
			}
		}
	}

	components := strings.Split(value, versionComponentSeparator)
	for len(components) > 1 {
		last := components[len(components)-1]
		if last != wildcardComponentConstant && last != starComponentConstant {
			break
		}
		components = components[:len(components)-1]
	}
	if len(components) > maximumVersionPrecision {
		return normalizedVersion{}, false
	}

	canonicalCandidate := semverPrefixConstant + strings.Join(components, versionComponentSeparator)
	if !semver.IsValid(canonicalCandidate) {
		return normalizedVersion{}, false
	}
	return normalizedVersion{components: components, prerelease: semver.Prerelease(canonicalCandidate)}, true
}

func (version normalizedVersion) truncated(precision int) string {
	components := version.components
	if precision < len(components) {
		components = components[:precision]
	}
	canonical := semver.Canonical(semverPrefixConstant + strings.Join(components, versionComponentSeparator))
	if precision >= len(version.components) {
		return canonical
	}
	return strings.TrimSuffix(canonical, semver.Prerelease(canonical))
}

// compareVersions reports whether two declared versions can be compared and,
// if so, whether they agree at the precision of the less specific one.
func compareVersions(left string, right string) (versionsComparable bool, equal bool) {
	leftVersion, leftValid := normalizeVersion(left)
	rightVersion, rightValid := normalizeVersion(right)
	if !leftValid || !rightValid {
		return false, false
	}
	precision := min(len(leftVersion.components), len(rightVersion.components))
	return true, semver.Compare(leftVersion.truncated(precision), rightVersion.truncated(precision)) == 0
}

func isNightlyChannel(channel string) bool {
	return strings.HasPrefix(strings.TrimSpace(channel), nightlyChannelPrefixConstant)
}
