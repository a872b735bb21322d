package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// DiagramLanguage is the fence label reserved for diagram definitions,
// matched case-sensitively.
const DiagramLanguage = "mermaid"

var diagramFencePattern = regexp.MustCompile("(?s)```" + DiagramLanguage + "[ \t]*\\n(.*?)\\n?```")

// DiagramBlock is an extracted diagram definition awaiting resolution.
// Ordinals are 0-based in document order.
type DiagramBlock struct {
	Ordinal int
	Source  string
}

// DiagramPlaceholder returns the positional placeholder for ordinal n. The
// HTML-comment form survives the block and inline passes unmodified because
// comments are passed through unparsed.
func DiagramPlaceholder(n int) string {
	return fmt.Sprintf("<!-- diagram_%d -->", n)
}

// ExtractDiagrams replaces every diagram fence with a positional placeholder
// and collects the extracted sources in document order. Bodies are trimmed
// of leading and trailing blank lines and stored verbatim otherwise.
func ExtractDiagrams(text string) (string, []DiagramBlock) {
	var blocks []DiagramBlock
	out := diagramFencePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := diagramFencePattern.FindStringSubmatch(match)
		ordinal := len(blocks)
		blocks = append(blocks, DiagramBlock{Ordinal: ordinal, Source: trimBlankLines(m[1])})
		return DiagramPlaceholder(ordinal)
	})
	return out, blocks
}

// trimBlankLines strips leading and trailing blank lines, preserving inner
// blank lines and indentation.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
