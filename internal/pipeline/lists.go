package pipeline

import "regexp"

// ListKind distinguishes ordered from unordered lists.
type ListKind int

const (
	ListUnordered ListKind = iota
	ListOrdered
)

func (k ListKind) tag() string {
	if k == ListOrdered {
		return "ol"
	}
	return "ul"
}

// ListFrame is one element of the open-list stack. Stack order reflects
// nesting depth; indentation values are strictly increasing from bottom to
// top.
type ListFrame struct {
	Kind   ListKind
	Indent int
}

// ListStack tracks open lists while the block pass walks the document. The
// stack is empty outside of list runs.
type ListStack struct {
	frames []ListFrame
}

var listItemPattern = regexp.MustCompile(`^(\s*)([-*+]|\d+\.)\s+(.*)$`)

// MatchListItem reports whether line is a list item, returning its leading
// whitespace count, kind, and remaining text.
func MatchListItem(line string) (indent int, kind ListKind, text string, ok bool) {
	m := listItemPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, "", false
	}
	kind = ListOrdered
	switch m[2] {
	case "-", "*", "+":
		kind = ListUnordered
	}
	return len(m[1]), kind, m[3], true
}

// Item feeds one list-item line through the stack, emitting closing tags for
// dedents, an opening tag for a new depth or a list-type switch at the same
// depth, and the list-item element wrapping content.
func (s *ListStack) Item(indent int, kind ListKind, content string, emit func(string)) {
	for len(s.frames) > 0 && s.top().Indent > indent {
		emit("</" + s.pop().Kind.tag() + ">")
	}
	switch {
	case len(s.frames) == 0 || s.top().Indent < indent:
		s.push(ListFrame{Kind: kind, Indent: indent})
		emit("<" + kind.tag() + ">")
	case s.top().Kind != kind:
		// A list-type switch at the same depth starts a new list.
		emit("</" + s.pop().Kind.tag() + ">")
		s.push(ListFrame{Kind: kind, Indent: indent})
		emit("<" + kind.tag() + ">")
	}
	emit("<li>" + content + "</li>")
}

// CloseAll pops and closes every remaining frame. A non-list line always
// terminates all open lists, as does end of input.
func (s *ListStack) CloseAll(emit func(string)) {
	for len(s.frames) > 0 {
		emit("</" + s.pop().Kind.tag() + ">")
	}
}

// Open reports whether any list frame is currently open.
func (s *ListStack) Open() bool {
	return len(s.frames) > 0
}

func (s *ListStack) push(f ListFrame) {
	s.frames = append(s.frames, f)
}

func (s *ListStack) top() ListFrame {
	return s.frames[len(s.frames)-1]
}

func (s *ListStack) pop() ListFrame {
	f := s.top()
	s.frames = s.frames[:len(s.frames)-1]
	return f
}
