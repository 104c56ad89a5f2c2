package report

// Category identifies the check family that produced a finding.
type Category string

// The closed set of finding categories, listed in report order.
const (
	CategoryStaleConfig     Category = "stale_config"
	CategoryVersionMismatch Category = "version_mismatch"
	CategoryDeadCode        Category = "dead_code"
	CategoryGitDrift        Category = "git_drift"
	CategoryGitignoreDrift  Category = "gitignore_drift"
)

// Severity grades a finding. Every severity is advisory.
type Severity string

// Supported severities.
const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Categories returns the categories in report order.
func Categories() []Category {
	return []Category{
		CategoryStaleConfig,
		CategoryVersionMismatch,
		CategoryDeadCode,
		CategoryGitDrift,
		CategoryGitignoreDrift,
	}
}

// Valid reports whether the category belongs to the closed set.
func (category Category) Valid() bool {
	return category.rank() >= 0
}

func (category Category) rank() int {
	for index, candidate := range Categories() {
		if candidate == category {
			return index
		}
	}
	return -1
}

// Finding describes a single instance of drift.
type Finding struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Detail   string   `json:"detail,omitempty"`
}
