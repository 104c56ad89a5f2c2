package checks

import (
	"fmt"

	"github.com/temirov/drift/internal/report"
)

// Kind identifies one of the drift checks.
type Kind int

// Supported check kinds, in execution order.
const (
	KindStaleConfig Kind = iota
	KindVersionMismatch
	KindDeadCodeMarker
	KindGitDrift
	KindGitignoreDrift
)

const unknownKindTemplateConstant = "unknown check kind %d"

// Kinds returns every check kind in execution order.
func Kinds() []Kind {
	return []Kind{
		KindStaleConfig,
		KindVersionMismatch,
		KindDeadCodeMarker,
		KindGitDrift,
		KindGitignoreDrift,
	}
}

// Category returns the report category produced by the kind.
func (kind Kind) Category() report.Category {
	switch kind {
	case KindStaleConfig:
		return report.CategoryStaleConfig
	case KindVersionMismatch:
		return report.CategoryVersionMismatch
	case KindDeadCodeMarker:
		return report.CategoryDeadCode
	case KindGitDrift:
		return report.CategoryGitDrift
	case KindGitignoreDrift:
		return report.CategoryGitignoreDrift
	default:
		return report.Category("")
	}
}

// String returns the category name of the kind.
func (kind Kind) String() string {
	category := kind.Category()
	if len(category) == 0 {
		return fmt.Sprintf(unknownKindTemplateConstant, int(kind))
	}
	return string(category)
}
