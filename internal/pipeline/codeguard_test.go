package pipeline_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2conf/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestCodeGuard_FencedBlock - Fenced code survives verbatim
// ---------------------------------------------------------------------------

func TestCodeGuard_FencedBlock(t *testing.T) {
	t.Parallel()

	input := "before\n```go\nif a < b && c > d {\n\treturn \"x\"\n}\n```\nafter"

	guard := pipeline.NewCodeGuard()
	protected := guard.Protect(input)

	if strings.Contains(protected, "```") {
		t.Errorf("Protect() left a fence in %q", protected)
	}
	if strings.Contains(protected, "a < b") {
		t.Error("Protect() left code content in the protected text")
	}

	restored := guard.Restore(protected)

	if !strings.Contains(restored, `<ac:structured-macro ac:name="code">`) {
		t.Errorf("Restore() missing code macro: %q", restored)
	}
	if !strings.Contains(restored, `<ac:parameter ac:name="language">go</ac:parameter>`) {
		t.Errorf("Restore() missing language parameter: %q", restored)
	}
	// Reserved markup characters inside the block stay untouched.
	if !strings.Contains(restored, "<![CDATA[if a < b && c > d {\n\treturn \"x\"\n}]]>") {
		t.Errorf("Restore() corrupted code content: %q", restored)
	}
}

// ---------------------------------------------------------------------------
// TestCodeGuard_InlineSpan - Inline code is escaped, not interpreted
// ---------------------------------------------------------------------------

func TestCodeGuard_InlineSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "reserved characters escaped",
			input: "compare `a < b` here",
			want:  "compare <code>a &lt; b</code> here",
		},
		{
			name:  "emphasis markers stay literal",
			input: "use `**not bold**` inline",
			want:  "use <code>**not bold**</code> inline",
		},
		{
			name:  "ampersand escaped",
			input: "`x && y`",
			want:  "<code>x &amp;&amp; y</code>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			guard := pipeline.NewCodeGuard()
			got := guard.Restore(guard.Protect(tt.input))
			if got != tt.want {
				t.Errorf("round trip = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCodeGuard_SkipLabels - Reserved fences pass through untouched
// ---------------------------------------------------------------------------

func TestCodeGuard_SkipLabels(t *testing.T) {
	t.Parallel()

	input := "```mermaid\ngraph TD;\nA-->B;\n```\n\n```go\nfmt.Println()\n```"

	guard := pipeline.NewCodeGuard("mermaid")
	protected := guard.Protect(input)

	if !strings.Contains(protected, "```mermaid\ngraph TD;\nA-->B;\n```") {
		t.Errorf("Protect() consumed the skipped fence: %q", protected)
	}
	if strings.Contains(protected, "fmt.Println") {
		t.Error("Protect() left non-skipped code content in place")
	}
	if len(guard.Fragments()) != 1 {
		t.Errorf("Fragments() = %d entries, want 1", len(guard.Fragments()))
	}

	// Case-sensitive: an uppercase label is an ordinary code block.
	guard = pipeline.NewCodeGuard("mermaid")
	protected = guard.Protect("```Mermaid\ngraph TD;\n```")
	if strings.Contains(protected, "```") {
		t.Errorf("Protect() skipped a fence with mismatched case: %q", protected)
	}
}

// ---------------------------------------------------------------------------
// TestCodeGuard_MultipleBlocks - Adjacent fences never merge
// ---------------------------------------------------------------------------

func TestCodeGuard_MultipleBlocks(t *testing.T) {
	t.Parallel()

	input := "```go\nfirst\n```\nmiddle text\n```python\nsecond\n```"

	guard := pipeline.NewCodeGuard()
	protected := guard.Protect(input)

	if !strings.Contains(protected, "middle text") {
		t.Errorf("Protect() consumed text between fences: %q", protected)
	}
	if len(guard.Fragments()) != 2 {
		t.Fatalf("Fragments() = %d entries, want 2", len(guard.Fragments()))
	}

	restored := guard.Restore(protected)
	if !strings.Contains(restored, "<![CDATA[first]]>") || !strings.Contains(restored, "<![CDATA[second]]>") {
		t.Errorf("Restore() lost a block: %q", restored)
	}
}

// ---------------------------------------------------------------------------
// TestCodeMacro_CDATATermination - "]]>" in code cannot end the section
// ---------------------------------------------------------------------------

func TestCodeMacro_CDATATermination(t *testing.T) {
	t.Parallel()

	got := pipeline.CodeMacro("text", "a ]]> b")
	if !strings.Contains(got, "a ]]]]><![CDATA[> b") {
		t.Errorf("CodeMacro() did not split the CDATA terminator: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestCanonicalLanguage - Fence label canonicalization
// ---------------------------------------------------------------------------

func TestCanonicalLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{"", "text"},
		{"   ", "text"},
		{"js", "javascript"},
		{"ts", "typescript"},
		{"sh", "bash"},
		{"yml", "yaml"},
		{"golang", "go"},
		{"py", "python"},
		{"c++", "cpp"},
		{"dockerfile", "docker"},
		{"GO", "go"},
		{"rust", "rust"},
		{"no-such-language", "no-such-language"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("label "+tt.label, func(t *testing.T) {
			t.Parallel()

			got := pipeline.CanonicalLanguage(tt.label)
			if got != tt.want {
				t.Errorf("CanonicalLanguage(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEscapeText / TestEscapeAttr - XML escaping
// ---------------------------------------------------------------------------

func TestEscapeText(t *testing.T) {
	t.Parallel()

	got := pipeline.EscapeText(`a < b > c & "d"`)
	want := `a &lt; b &gt; c &amp; "d"`
	if got != want {
		t.Errorf("EscapeText() = %q, want %q", got, want)
	}
}

func TestEscapeAttr(t *testing.T) {
	t.Parallel()

	got := pipeline.EscapeAttr(`say "hi" & <go>`)
	want := "say &quot;hi&quot; &amp; &lt;go&gt;"
	if got != want {
		t.Errorf("EscapeAttr() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestAttachmentImage - Attachment reference markup
// ---------------------------------------------------------------------------

func TestAttachmentImage(t *testing.T) {
	t.Parallel()

	got := pipeline.AttachmentImage("diagram-0.png")
	want := `<ac:image><ri:attachment ri:filename="diagram-0.png" /></ac:image>`
	if got != want {
		t.Errorf("AttachmentImage() = %q, want %q", got, want)
	}
}
