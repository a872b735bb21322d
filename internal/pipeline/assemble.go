package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Precompiled line-level patterns for the block pass.
var (
	// ATX heading; the greedy anchored quantifier guarantees longest-match-
	// first, so a level-1 marker never matches inside a level-3 marker.
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

	// Horizontal-rule line. Requires no trailing text, so list items and
	// emphasis markers never collide with it.
	horizontalRulePattern = regexp.MustCompile(`^(\*{3,}|-{3,}|_{3,})\s*$`)

	// HTML comment occupying a whole line, passed through unparsed. Diagram
	// placeholders rely on this.
	commentLinePattern = regexp.MustCompile(`^\s*<!--.*-->\s*$`)
)

// Assemble composes the block and inline passes into a single well-formed
// document fragment.
//
// The block pass walks the document line by line, feeding the list stack and
// the table recognizer; everything else accumulates into paragraphs joined
// by line breaks. Inline formatting is applied to heading text, list items,
// table cells, and paragraph lines. A final normalization pass guarantees
// the strict dialect's self-closing forms regardless of which rule produced
// a tag.
func Assemble(text string) string {
	a := &assembler{}
	a.run(text)
	return Normalize(strings.Join(a.out, "\n"))
}

// assembler holds the per-run state of the block pass.
type assembler struct {
	out     []string
	para    []string
	lists   ListStack
	inTable bool

	// pipeRun marks a run of pipe lines that failed header detection; the
	// rest of the run is opaque text, not a new detection attempt per line.
	pipeRun bool
}

func (a *assembler) run(text string) {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if a.inTable {
			if IsTableRow(line) {
				a.emitBodyRow(line)
				continue
			}
			a.emit("</tbody></table>")
			a.inTable = false
		}
		if !IsTableRow(line) {
			a.pipeRun = false
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			a.flushPara()
			a.lists.CloseAll(a.emit)

		case commentLinePattern.MatchString(line):
			a.flushPara()
			a.lists.CloseAll(a.emit)
			a.emit(trimmed)

		case blockPlaceholderPattern.MatchString(trimmed):
			a.flushPara()
			a.lists.CloseAll(a.emit)
			a.emit(trimmed)

		case IsTableRow(line) && !a.pipeRun:
			if i+1 < len(lines) && IsTableSeparator(lines[i+1]) {
				a.flushPara()
				a.lists.CloseAll(a.emit)
				a.emitHeaderRow(line)
				a.inTable = true
				i++ // the separator line is consumed, not emitted
			} else {
				a.pipeRun = true
				a.lists.CloseAll(a.emit)
				a.para = append(a.para, FormatInline(line))
			}

		case IsTableRow(line):
			a.lists.CloseAll(a.emit)
			a.para = append(a.para, FormatInline(line))

		case headingPattern.MatchString(line):
			a.flushPara()
			a.lists.CloseAll(a.emit)
			m := headingPattern.FindStringSubmatch(line)
			level := len(m[1])
			a.emit(fmt.Sprintf("<h%d>%s</h%d>", level, FormatInline(m[2]), level))

		case horizontalRulePattern.MatchString(trimmed):
			a.flushPara()
			a.lists.CloseAll(a.emit)
			a.emit("<hr />")

		default:
			if indent, kind, text, ok := MatchListItem(line); ok {
				a.flushPara()
				a.lists.Item(indent, kind, FormatInline(text), a.emit)
				continue
			}
			a.lists.CloseAll(a.emit)
			a.para = append(a.para, FormatInline(line))
		}
	}

	a.flushPara()
	a.lists.CloseAll(a.emit)
	if a.inTable {
		a.emit("</tbody></table>")
	}
}

func (a *assembler) emit(s string) {
	a.out = append(a.out, s)
}

// flushPara closes the pending paragraph, joining its lines with line
// breaks. Paragraphs with no visible content are dropped.
func (a *assembler) flushPara() {
	if len(a.para) == 0 {
		return
	}
	content := strings.Join(a.para, "<br />")
	a.para = a.para[:0]
	if strings.TrimSpace(content) == "" {
		return
	}
	a.out = append(a.out, "<p>"+content+"</p>")
}

func (a *assembler) emitHeaderRow(line string) {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, cell := range SplitTableRow(line) {
		b.WriteString("<th>" + FormatInline(cell) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	a.emit(b.String())
}

func (a *assembler) emitBodyRow(line string) {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range SplitTableRow(line) {
		b.WriteString("<td>" + FormatInline(cell) + "</td>")
	}
	b.WriteString("</tr>")
	a.emit(b.String())
}
