package pipeline

import (
	"regexp"
	"strings"
)

var (
	tableRowPattern      = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	separatorCellPattern = regexp.MustCompile(`^:?-+:?$`)
)

// IsTableRow reports whether line is a candidate table row: boundary pipes
// around at least one cell.
func IsTableRow(line string) bool {
	return tableRowPattern.MatchString(line)
}

// IsTableSeparator reports whether line is a header separator: every cell
// contains only dashes with optional alignment colons.
func IsTableSeparator(line string) bool {
	if !IsTableRow(line) {
		return false
	}
	cells := SplitTableRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !separatorCellPattern.MatchString(cell) {
			return false
		}
	}
	return true
}

// SplitTableRow splits a row on the pipe character, discarding the empty
// leading and trailing segments produced by the boundary pipes and trimming
// surrounding whitespace from each cell.
func SplitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
