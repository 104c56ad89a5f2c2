package checks

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/drift/internal/drifterrors"
	"github.com/temirov/drift/internal/report"
	"github.com/temirov/drift/internal/walker"
)

const (
	markerFoundTemplateConstant        = "%s marker found"
	markersFoundTemplateConstant       = "%s markers found"
	markerListSeparatorConstant        = ", "
	binaryProbeLengthConstant          = 8000
	maximumScannedFileSizeConstant     = 2 << 20
	maximumDetailLengthConstant        = 120
	detailTruncationSuffixConstant     = "..."
	readOperationConstant              = "read"
	unreadableFileMessageConstant      = "skipping unreadable file"
	oversizedFileMessageConstant       = "skipping oversized file"
	logFieldSizeConstant               = "size"
	logFieldPathConstant               = "path"
	blockCommentContinuationConstant   = "*"
	carriageReturnConstant             = "\r"
	slashCommentIntroducerConstant     = "//"
	blockCommentIntroducerConstant     = "/*"
	hashCommentIntroducerConstant      = "#"
	dashCommentIntroducerConstant      = "--"
	semicolonCommentIntroducerConstant = ";"
	markupCommentIntroducerConstant    = "<!--"
	percentCommentIntroducerConstant   = "%"
	doubleQuoteConstant                = '"'
	backquoteConstant                  = '`'
	backslashConstant                  = '\\'
)

var markerTokenPattern = regexp.MustCompile(`\b(TODO|FIXME|XXX|HACK)\b`)

type commentSyntax struct {
	introducers       []string
	blockContinuation bool
	// quotedStrings hides introducers inside "..." and `...` on the same line.
	quotedStrings bool
}

var (
	cStyleCommentSyntax    = commentSyntax{introducers: []string{slashCommentIntroducerConstant, blockCommentIntroducerConstant}, blockContinuation: true, quotedStrings: true}
	hashCommentSyntax      = commentSyntax{introducers: []string{hashCommentIntroducerConstant}, quotedStrings: true}
	dashCommentSyntax      = commentSyntax{introducers: []string{dashCommentIntroducerConstant}, quotedStrings: true}
	semicolonCommentSyntax = commentSyntax{introducers: []string{semicolonCommentIntroducerConstant}, quotedStrings: true}
	markupCommentSyntax    = commentSyntax{introducers: []string{markupCommentIntroducerConstant}}
	percentCommentSyntax   = commentSyntax{introducers: []string{percentCommentIntroducerConstant}}
	iniCommentSyntax       = commentSyntax{introducers: []string{semicolonCommentIntroducerConstant, hashCommentIntroducerConstant}, quotedStrings: true}
	cssCommentSyntax       = commentSyntax{introducers: []string{blockCommentIntroducerConstant}, blockContinuation: true, quotedStrings: true}
	sqlCommentSyntax       = commentSyntax{introducers: []string{dashCommentIntroducerConstant, blockCommentIntroducerConstant}, blockContinuation: true, quotedStrings: true}
)

var commentSyntaxByExtension = map[string]commentSyntax{
	".go": cStyleCommentSyntax, ".rs": cStyleCommentSyntax, ".c": cStyleCommentSyntax, ".h": cStyleCommentSyntax,
	".cc": cStyleCommentSyntax, ".cpp": cStyleCommentSyntax, ".hpp": cStyleCommentSyntax, ".java": cStyleCommentSyntax,
	".kt": cStyleCommentSyntax, ".swift": cStyleCommentSyntax, ".cs": cStyleCommentSyntax, ".scala": cStyleCommentSyntax,
	".js": cStyleCommentSyntax, ".jsx": cStyleCommentSyntax, ".mjs": cStyleCommentSyntax, ".cjs": cStyleCommentSyntax,
	".ts": cStyleCommentSyntax, ".tsx": cStyleCommentSyntax, ".dart": cStyleCommentSyntax, ".proto": cStyleCommentSyntax,
	".php": cStyleCommentSyntax, ".scss": cStyleCommentSyntax, ".less": cStyleCommentSyntax, ".zig": cStyleCommentSyntax,
	".css": cssCommentSyntax,
	".py":  hashCommentSyntax, ".rb": hashCommentSyntax, ".sh": hashCommentSyntax, ".bash": hashCommentSyntax,
	".zsh": hashCommentSyntax, ".fish": hashCommentSyntax, ".pl": hashCommentSyntax, ".r": hashCommentSyntax,
	".yaml": hashCommentSyntax, ".yml": hashCommentSyntax, ".toml": hashCommentSyntax, ".tf": hashCommentSyntax,
	".mk": hashCommentSyntax, ".cmake": hashCommentSyntax, ".nix": hashCommentSyntax, ".ps1": hashCommentSyntax,
	".sql": sqlCommentSyntax, ".lua": dashCommentSyntax, ".hs": dashCommentSyntax, ".elm": dashCommentSyntax,
	".ini": iniCommentSyntax, ".cfg": iniCommentSyntax, ".conf": iniCommentSyntax,
	".lisp": semicolonCommentSyntax, ".clj": semicolonCommentSyntax, ".el": semicolonCommentSyntax, ".asm": semicolonCommentSyntax,
	".html": markupCommentSyntax, ".htm": markupCommentSyntax, ".xml": markupCommentSyntax, ".md": markupCommentSyntax,
	".vue": markupCommentSyntax, ".svg": markupCommentSyntax,
	".tex": percentCommentSyntax, ".erl": percentCommentSyntax, ".m": percentCommentSyntax,
}

var commentSyntaxByFileName = map[string]commentSyntax{
	"Makefile":   hashCommentSyntax,
	"Dockerfile": hashCommentSyntax,
	"Gemfile":    hashCommentSyntax,
	"Rakefile":   hashCommentSyntax,
}

// FindDeadCodeMarkers reports each line carrying TODO, FIXME, XXX or HACK in a
// comment. For files of unknown language the whole line is searched.
//
// Comment detection is line based: introducers inside double-quoted or
// backquoted strings on the same line are ignored, but single-quoted strings
// and strings spanning several lines are not tracked.
func FindDeadCodeMarkers(fileSet walker.FileSet, logger *zap.Logger) []report.Finding {
	if logger == nil {
		logger = zap.NewNop()
	}

	var findings []report.Finding
	for _, entry := range fileSet.Files() {
		if isDependencyOutputPath(entry.Path) {
			continue
		}

		fileInfo, statError := fileSet.FileSystem().Stat(fileSet.AbsolutePath(entry.Path))
		if statError != nil {
			logger.Warn(unreadableFileMessageConstant, zap.Error(drifterrors.IOError{Path: entry.Path, Operation: readOperationConstant, Err: statError}))
			continue
		}
		if fileInfo.Size() > maximumScannedFileSizeConstant {
			logger.Debug(oversizedFileMessageConstant, zap.String(logFieldPathConstant, entry.Path), zap.Int64(logFieldSizeConstant, fileInfo.Size()))
			continue
		}

		content, readError := fileSet.ReadFile(entry.Path)
		if readError != nil {
			logger.Warn(unreadableFileMessageConstant, zap.Error(drifterrors.IOError{Path: entry.Path, Operation: readOperationConstant, Err: readError}))
			continue
		}
		if isBinaryContent(content) {
			continue
		}

		syntax, knownLanguage := resolveCommentSyntax(entry.Path)
		findings = append(findings, scanMarkers(entry.Path, string(content), syntax, knownLanguage)...)
	}
	return findings
}

func scanMarkers(relativePath string, content string, syntax commentSyntax, knownLanguage bool) []report.Finding {
	var findings []report.Finding
	lineNumber := 0
	for line := range strings.Lines(content) {
		lineNumber++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), carriageReturnConstant)

		searchFrom := 0
		if knownLanguage {
			commentStart, hasComment := syntax.commentStart(line)
			if !hasComment {
				continue
			}
			searchFrom = commentStart
		}

		tokens := distinctMarkerTokens(line[searchFrom:])
		if len(tokens) == 0 {
			continue
		}

		template := markerFoundTemplateConstant
		if len(tokens) > 1 {
			template = markersFoundTemplateConstant
		}
		findings = append(findings, report.Finding{
			Category: report.CategoryDeadCode,
			Severity: report.SeverityInfo,
			Path:     relativePath,
			Line:     lineNumber,
			Message:  fmt.Sprintf(template, strings.Join(tokens, markerListSeparatorConstant)),
			Detail:   summarizeLine(line),
		})
	}
	return findings
}

func (syntax commentSyntax) commentStart(line string) (int, bool) {
	if syntax.blockContinuation && strings.HasPrefix(strings.TrimSpace(line), blockCommentContinuationConstant) {
		return 0, true
	}

	var openQuote byte
	for index := 0; index < len(line); index++ {
		character := line[index]
		if openQuote != 0 {
			switch {
			case character == backslashConstant && openQuote == doubleQuoteConstant:
				index++
			case character == openQuote:
				openQuote = 0
			}
			continue
		}
		if syntax.quotedStrings && (character == doubleQuoteConstant || character == backquoteConstant) {
			openQuote = character
			continue
		}
		for _, introducer := range syntax.introducers {
			if strings.HasPrefix(line[index:], introducer) {
				return index, true
			}
		}
	}
	return -1, false
}

func distinctMarkerTokens(text string) []string {
	var tokens []string
	for _, token := range markerTokenPattern.FindAllString(text, -1) {
		if !slices.Contains(tokens, token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func resolveCommentSyntax(relativePath string) (commentSyntax, bool) {
	fileName := path.Base(relativePath)
	if syntax, exists := commentSyntaxByFileName[fileName]; exists {
		return syntax, true
	}
	syntax, exists := commentSyntaxByExtension[strings.ToLower(path.Ext(fileName))]
	return syntax, exists
}

func isBinaryContent(content []byte) bool {
	probe := content
	if len(probe) > binaryProbeLengthConstant {
		probe = probe[:binaryProbeLengthConstant]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

func summarizeLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if utf8.RuneCountInString(trimmed) <= maximumDetailLengthConstant {
		return trimmed
	}
	runes := []rune(trimmed)
	return string(runes[:maximumDetailLengthConstant]) + detailTruncationSuffixConstant
}
