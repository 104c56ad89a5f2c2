package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

const (
	unknownCategoryTemplateConstant = "finding %q has unknown category %q"
	summaryKeyTemplateConstant      = "%q:"
	summaryOpenBraceConstant        = '{'
	summaryCloseBraceConstant       = '}'
	summarySeparatorConstant        = ','
)

// Report is the immutable aggregate of one audit run.
type Report struct {
	findings []Finding
	summary  Summary
}

// New orders findings by category, keeping each category's internal order,
// and computes the per-category summary. Findings outside the closed category
// set are rejected.
func New(findings []Finding) (Report, error) {
	ordered := slices.Clone(findings)
	for _, finding := range ordered {
		if !finding.Category.Valid() {
			return Report{}, fmt.Errorf(unknownCategoryTemplateConstant, finding.Message, finding.Category)
		}
	}

	slices.SortStableFunc(ordered, func(first Finding, second Finding) int {
		return first.Category.rank() - second.Category.rank()
	})

	counts := make([]int, len(Categories()))
	for _, finding := range ordered {
		counts[finding.Category.rank()]++
	}

	return Report{findings: ordered, summary: Summary{counts: counts}}, nil
}

// Findings returns a copy of the ordered findings.
func (report Report) Findings() []Finding {
	return slices.Clone(report.findings)
}

// Summary returns the per-category counts.
func (report Report) Summary() Summary {
	return report.summary
}

// Total returns the number of findings.
func (report Report) Total() int {
	return len(report.findings)
}

// Empty reports whether no drift was found.
func (report Report) Empty() bool {
	return len(report.findings) == 0
}

// Summary holds finding counts for every category.
type Summary struct {
	counts []int
}

// Count returns the number of findings recorded for the category.
func (summary Summary) Count(category Category) int {
	rank := category.rank()
	if rank < 0 || rank >= len(summary.counts) {
		return 0
	}
	return summary.counts[rank]
}

// MarshalJSON encodes the summary as an object whose keys follow report order.
func (summary Summary) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte(summaryOpenBraceConstant)
	for index, category := range Categories() {
		if index > 0 {
			buffer.WriteByte(summarySeparatorConstant)
		}
		fmt.Fprintf(&buffer, summaryKeyTemplateConstant, string(category))
		countBytes, encodeError := json.Marshal(summary.Count(category))
		if encodeError != nil {
			return nil, encodeError
		}
		buffer.Write(countBytes)
	}
	buffer.WriteByte(summaryCloseBraceConstant)
	return buffer.Bytes(), nil
}
