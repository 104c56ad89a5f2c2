package audit

import "github.com/temirov/drift/internal/report"

// CommandOptions captures the parameters of one audit run.
type CommandOptions struct {
	Root   string
	Format report.Format
}
