package pipeline

import (
	"regexp"
	"strings"
)

// Empty-element spellings the strict dialect forbids. Applied once at the
// very end, independent of which rule produced the tag.
var (
	emptyElementPattern      = regexp.MustCompile(`<(hr|br)\s*/?\s*>`)
	emptyElementClosePattern = regexp.MustCompile(`</(?:hr|br)\s*>`)
	resourcePattern          = regexp.MustCompile(`<(ri:url|ri:attachment)((?:\s[^<>]*?)?)\s*/?\s*>`)
	resourceClosePattern     = regexp.MustCompile(`</(?:ri:url|ri:attachment)\s*>`)
	emptyParagraphPattern    = regexp.MustCompile(`<p>(?:\s|<br />)*</p>`)
)

// Normalize collapses any spelling of an empty-element tag into the
// dialect-mandated self-closing form, strips erroneous closing tags for
// those elements (they have no closing form), wraps a bare result in a
// paragraph element, and removes resulting empty paragraphs.
func Normalize(text string) string {
	text = emptyElementPattern.ReplaceAllString(text, "<$1 />")
	text = emptyElementClosePattern.ReplaceAllString(text, "")
	text = resourcePattern.ReplaceAllString(text, "<$1$2 />")
	text = resourceClosePattern.ReplaceAllString(text, "")
	text = emptyParagraphPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	// A leading code placeholder is block content awaiting restoration, not
	// bare text, so it must not be paragraph-wrapped.
	if text != "" && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, placeholderStart) {
		text = "<p>" + text + "</p>"
	}
	return text
}
