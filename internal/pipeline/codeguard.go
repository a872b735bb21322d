package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Placeholder sentinels use Unicode Private Use Area characters.
// These are guaranteed to not conflict with any standard characters
// and pass through every formatting rule unchanged.
const (
	placeholderStart = "\uE000" // U+E000: Private Use Area start
	placeholderEnd   = "\uE001" // U+E001: Private Use Area end
)

// Precompiled regex patterns for performance.
var (
	// Fenced code block with an optional language label. Non-greedy body so
	// adjacent fences never merge.
	fencedCodePattern = regexp.MustCompile("(?s)```([^\\n`]*)\\n(.*?)\\n?```")

	// Inline code span. No embedded newline by definition.
	inlineCodePattern = regexp.MustCompile("`([^`\\n]+)`")

	// A line consisting solely of a fenced-block placeholder. The assembler
	// emits such lines as block-level content instead of paragraph text.
	blockPlaceholderPattern = regexp.MustCompile("^" + placeholderStart + "CODE_[0-9]+" + placeholderEnd + "$")
)

// CodeFragment holds the exact, unmodified content of a protected code span.
type CodeFragment struct {
	Language string
	Text     string
	Inline   bool
}

// CodeGuard extracts fenced and inline code before any other transformation
// runs, substitutes opaque placeholders, and restores the rendered code
// markup afterward. This prevents formatting rules from corrupting code
// content. The guard is total over any input string; worst case is zero
// matches.
type CodeGuard struct {
	skip       map[string]bool
	fragments  map[string]CodeFragment
	nextBlock  int
	nextInline int
}

// NewCodeGuard returns a guard for one conversion run. Fences whose language
// label equals one of skipLabels (matched case-sensitively) are left
// untouched so a downstream stage can claim them.
func NewCodeGuard(skipLabels ...string) *CodeGuard {
	skip := make(map[string]bool, len(skipLabels))
	for _, l := range skipLabels {
		skip[l] = true
	}
	return &CodeGuard{skip: skip, fragments: make(map[string]CodeFragment)}
}

// Protect replaces fenced code blocks, then inline code spans, with freshly
// minted placeholders. Callers with a stage that claims skipped fences must
// run that stage between the two phases; otherwise the inline pass would
// reach into the bodies of fences the fenced pass left in place.
func (g *CodeGuard) Protect(text string) string {
	return g.ProtectInline(g.ProtectFenced(text))
}

// ProtectFenced replaces fenced code blocks with freshly minted placeholders.
// Fenced blocks go first so their content can never be reinterpreted as
// inline spans. Ordinals increase monotonically within the run.
func (g *CodeGuard) ProtectFenced(text string) string {
	return fencedCodePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := fencedCodePattern.FindStringSubmatch(match)
		label := strings.TrimSpace(m[1])
		if g.skip[label] {
			return match
		}
		token := mintPlaceholder("CODE", g.nextBlock)
		g.nextBlock++
		g.fragments[token] = CodeFragment{Language: CanonicalLanguage(label), Text: m[2]}
		return token
	})
}

// ProtectInline replaces inline code spans with freshly minted placeholders.
// Must run after ProtectFenced and after any stage that claims skipped
// fences, so backticks inside those fences stay untouched.
func (g *CodeGuard) ProtectInline(text string) string {
	return inlineCodePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := inlineCodePattern.FindStringSubmatch(match)
		token := mintPlaceholder("INLINE", g.nextInline)
		g.nextInline++
		g.fragments[token] = CodeFragment{Text: m[1], Inline: true}
		return token
	})
}

// Restore substitutes rendered code markup for every placeholder, in any
// order: placeholders are unique and no fragment contains another
// placeholder. Run last, after all structural passes, so code content is
// never reinterpreted as markup.
func (g *CodeGuard) Restore(text string) string {
	for token, frag := range g.fragments {
		text = strings.Replace(text, token, renderFragment(frag), 1)
	}
	return text
}

// Fragments exposes the placeholder to fragment mapping of this run.
func (g *CodeGuard) Fragments() map[string]CodeFragment {
	return g.fragments
}

func mintPlaceholder(kind string, ordinal int) string {
	return fmt.Sprintf("%s%s_%d%s", placeholderStart, kind, ordinal, placeholderEnd)
}

func renderFragment(frag CodeFragment) string {
	if frag.Inline {
		return "<code>" + EscapeText(frag.Text) + "</code>"
	}
	return CodeMacro(frag.Language, frag.Text)
}

// languageAliases maps common fence labels to the canonical names the target
// renderer recognizes. Labels not listed here are resolved through the
// chroma lexer registry; labels unknown there pass through unchanged.
var languageAliases = map[string]string{
	"js":         "javascript",
	"jsx":        "javascript",
	"ts":         "typescript",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"yml":        "yaml",
	"golang":     "go",
	"py":         "python",
	"rb":         "ruby",
	"c++":        "cpp",
	"cs":         "csharp",
	"dockerfile": "docker",
}

// CanonicalLanguage maps a fence language label to a canonical name. An
// absent label maps to the generic "text" category.
func CanonicalLanguage(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "text"
	}
	if canonical, ok := languageAliases[label]; ok {
		return canonical
	}
	if lexer := lexers.Get(label); lexer != nil {
		if aliases := lexer.Config().Aliases; len(aliases) > 0 {
			return strings.ToLower(aliases[0])
		}
	}
	return label
}
