package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	textHeaderConstant                = "Drift Audit Results"
	textHeaderUnderlineConstant       = "==================="
	textNoDriftMessageConstant        = "✓ No drift detected"
	textCategoryHeadingTemplate       = "%s (%d)\n"
	textFindingTemplate               = "  %s %s%s\n"
	textDetailTemplate                = "      %s\n"
	textPathSuffixTemplate            = " (%s)"
	textPathWithLineSuffixTemplate    = " (%s:%d)"
	textSummaryPrefixConstant         = "Summary:"
	textSummaryEntryTemplate          = " %s=%d"
	textSummaryTotalTemplate          = " total=%d\n"
	textWarningIconConstant           = "⚠"
	textInfoIconConstant              = "○"
	jsonIndentPrefixConstant          = ""
	jsonIndentConstant                = "  "
	unsupportedFormatTemplateConstant = "unsupported output format: %s"
	renderWriteErrorTemplateConstant  = "unable to write report: %w"
	renderEncodeErrorTemplateConstant = "unable to encode report: %w"
	textFormatStringConstant          = "text"
	jsonFormatStringConstant          = "json"
	newlineConstant                   = "\n"
	emptyStringConstant               = ""
	textSectionSeparatorConstant      = "\n"
	textHeaderTemplate                = "%s\n%s\n\n"
	textNoDriftTemplate               = "%s\n\n"
)

// Format selects how a report is rendered.
type Format string

// Supported output formats.
const (
	FormatText Format = Format(textFormatStringConstant)
	FormatJSON Format = Format(jsonFormatStringConstant)
)

// Render writes the report to the writer in the requested format.
func Render(writer io.Writer, report Report, format Format) error {
	switch format {
	case FormatText:
		return RenderText(writer, report)
	case FormatJSON:
		return RenderJSON(writer, report)
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}

// RenderText writes a grouped human-readable listing followed by a summary line.
func RenderText(writer io.Writer, report Report) error {
	var builder strings.Builder

	if report.Empty() {
		fmt.Fprintf(&builder, textNoDriftTemplate, textNoDriftMessageConstant)
	} else {
		fmt.Fprintf(&builder, textHeaderTemplate, textHeaderConstant, textHeaderUnderlineConstant)
		for _, category := range Categories() {
			categoryFindings := report.findingsFor(category)
			if len(categoryFindings) == 0 {
				continue
			}
			fmt.Fprintf(&builder, textCategoryHeadingTemplate, category, len(categoryFindings))
			for _, finding := range categoryFindings {
				fmt.Fprintf(&builder, textFindingTemplate, severityIcon(finding.Severity), finding.Message, locationSuffix(finding))
				if len(finding.Detail) > 0 {
					fmt.Fprintf(&builder, textDetailTemplate, finding.Detail)
				}
			}
			builder.WriteString(textSectionSeparatorConstant)
		}
	}

	builder.WriteString(textSummaryPrefixConstant)
	for _, category := range Categories() {
		fmt.Fprintf(&builder, textSummaryEntryTemplate, category, report.summary.Count(category))
	}
	fmt.Fprintf(&builder, textSummaryTotalTemplate, report.Total())

	if _, writeError := io.WriteString(writer, builder.String()); writeError != nil {
		return fmt.Errorf(renderWriteErrorTemplateConstant, writeError)
	}
	return nil
}

type jsonDocument struct {
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
	Total    int       `json:"total"`
}

// RenderJSON writes the report as an indented JSON object with findings,
// summary, and total keys.
func RenderJSON(writer io.Writer, report Report) error {
	findings := report.Findings()
	if findings == nil {
		findings = []Finding{}
	}

	document := jsonDocument{
		Findings: findings,
		Summary:  report.summary,
		Total:    report.Total(),
	}

	encoded, encodeError := json.MarshalIndent(document, jsonIndentPrefixConstant, jsonIndentConstant)
	if encodeError != nil {
		return fmt.Errorf(renderEncodeErrorTemplateConstant, encodeError)
	}

	if _, writeError := writer.Write(append(encoded, newlineConstant...)); writeError != nil {
		return fmt.Errorf(renderWriteErrorTemplateConstant, writeError)
	}
	return nil
}

func (report Report) findingsFor(category Category) []Finding {
	var matching []Finding
	for _, finding := range report.findings {
		if finding.Category == category {
			matching = append(matching, finding)
		}
	}
	return matching
}

func severityIcon(severity Severity) string {
	if severity == SeverityWarning {
		return textWarningIconConstant
	}
	return textInfoIconConstant
}

func locationSuffix(finding Finding) string {
	if len(finding.Path) == 0 {
		return emptyStringConstant
	}
	if finding.Line > 0 {
		return fmt.Sprintf(textPathWithLineSuffixTemplate, finding.Path, finding.Line)
	}
	return fmt.Sprintf(textPathSuffixTemplate, finding.Path)
}
