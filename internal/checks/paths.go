package checks

import (
	"maps"
	"path"
	"slices"
	"strings"
)

const (
	nodeModulesDirectoryNameConstant = "node_modules"
	cargoTargetDirectoryNameConstant = "target"
	pathSeparatorConstant            = "/"
)

// isDependencyOutputPath reports whether a relative path lies inside a vendored
// dependency tree or a build output directory.
func isDependencyOutputPath(relativePath string) bool {
	for _, segment := range strings.Split(path.Dir(relativePath), pathSeparatorConstant) {
		if segment == nodeModulesDirectoryNameConstant || segment == cargoTargetDirectoryNameConstant {
			return true
		}
	}
	return false
}

func sortedKeys[Value any](values map[string]Value) []string {
	return slices.Sorted(maps.Keys(values))
}
