package pipeline

import (
	"regexp"
	"strings"
)

// inlineRule is one entry of the inline formatter's ordered rule table.
// Rules that place captures inside attribute values use render instead of a
// plain replacement string, so quotes can be escaped in attribute position.
type inlineRule struct {
	name    string
	pattern *regexp.Regexp
	replace string
	render  func(m []string) string
}

// inlineRules are applied in order; earlier rules win ambiguous matches.
// The combined strong-em marker runs before strong, which runs before em,
// so a triple marker is never half-consumed. The image rule runs before the
// anchor rule so the anchor rule never consumes the tail of an image.
var inlineRules = []inlineRule{
	{name: "strong-em", pattern: regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), replace: "<strong><em>$1</em></strong>"},
	{name: "strong-em-underscore", pattern: regexp.MustCompile(`___(.+?)___`), replace: "<strong><em>$1</em></strong>"},
	{name: "strong", pattern: regexp.MustCompile(`\*\*(.+?)\*\*`), replace: "<strong>$1</strong>"},
	{name: "strong-underscore", pattern: regexp.MustCompile(`__(.+?)__`), replace: "<strong>$1</strong>"},
	{name: "em", pattern: regexp.MustCompile(`\*(.+?)\*`), replace: "<em>$1</em>"},
	{name: "em-underscore", pattern: regexp.MustCompile(`\b_(.+?)_\b`), replace: "<em>$1</em>"},
	{name: "del", pattern: regexp.MustCompile(`~~(.+?)~~`), replace: "<del>$1</del>"},
	{name: "image", pattern: regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`), render: func(m []string) string {
		return `<ac:image ac:alt="` + quoteAttr(m[1]) + `"><ri:url ri:value="` + quoteAttr(m[2]) + `" /></ac:image>`
	}},
	{name: "anchor", pattern: regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`), render: func(m []string) string {
		return `<a href="` + quoteAttr(m[2]) + `">` + m[1] + `</a>`
	}},
}

// quoteAttr escapes double quotes in text that already went through
// EscapeText, completing the escaping required in attribute position.
func quoteAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}

// FormatInline rewrites inline markdown constructs into target markup. Text
// is XML-escaped first so the emitted tags are the only markup in the
// result; placeholder sentinels are unaffected by escaping. Target URLs are
// not validated, so malformed URLs pass through verbatim.
func FormatInline(text string) string {
	text = EscapeText(text)
	for _, rule := range inlineRules {
		if rule.render != nil {
			text = rule.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return rule.render(rule.pattern.FindStringSubmatch(match))
			})
			continue
		}
		text = rule.pattern.ReplaceAllString(text, rule.replace)
	}
	return text
}
