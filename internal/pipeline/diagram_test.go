package pipeline_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2conf/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestExtractDiagrams - Diagram fence extraction
// ---------------------------------------------------------------------------

func TestExtractDiagrams(t *testing.T) {
	t.Parallel()

	t.Run("ordinals follow document order", func(t *testing.T) {
		t.Parallel()

		input := "intro\n\n```mermaid\ngraph TD;\nA-->B;\n```\n\nmiddle\n\n```mermaid\nsequenceDiagram\nA->>B: hi\n```\n"
		out, blocks := pipeline.ExtractDiagrams(input)

		if len(blocks) != 2 {
			t.Fatalf("got %d blocks, want 2", len(blocks))
		}
		if blocks[0].Ordinal != 0 || blocks[1].Ordinal != 1 {
			t.Errorf("ordinals = %d, %d, want 0, 1", blocks[0].Ordinal, blocks[1].Ordinal)
		}
		if blocks[0].Source != "graph TD;\nA-->B;" {
			t.Errorf("first source = %q", blocks[0].Source)
		}
		if blocks[1].Source != "sequenceDiagram\nA->>B: hi" {
			t.Errorf("second source = %q", blocks[1].Source)
		}

		first := strings.Index(out, pipeline.DiagramPlaceholder(0))
		second := strings.Index(out, pipeline.DiagramPlaceholder(1))
		if first < 0 || second < 0 || first > second {
			t.Errorf("placeholders missing or out of order in %q", out)
		}
		if strings.Contains(out, "```") {
			t.Errorf("fence left in output: %q", out)
		}
	})

	t.Run("surrounding blank lines trimmed, inner preserved", func(t *testing.T) {
		t.Parallel()

		input := "```mermaid\n\n\ngraph TD;\n\nA-->B;\n\n```"
		_, blocks := pipeline.ExtractDiagrams(input)

		if len(blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(blocks))
		}
		if blocks[0].Source != "graph TD;\n\nA-->B;" {
			t.Errorf("source = %q", blocks[0].Source)
		}
	})

	t.Run("other fences untouched", func(t *testing.T) {
		t.Parallel()

		input := "```go\nfmt.Println()\n```"
		out, blocks := pipeline.ExtractDiagrams(input)

		if len(blocks) != 0 {
			t.Fatalf("got %d blocks, want 0", len(blocks))
		}
		if out != input {
			t.Errorf("output = %q, want input unchanged", out)
		}
	})

	t.Run("label match is case-sensitive", func(t *testing.T) {
		t.Parallel()

		input := "```Mermaid\ngraph TD;\n```"
		_, blocks := pipeline.ExtractDiagrams(input)
		if len(blocks) != 0 {
			t.Errorf("got %d blocks, want 0", len(blocks))
		}
	})

	t.Run("no diagrams", func(t *testing.T) {
		t.Parallel()

		out, blocks := pipeline.ExtractDiagrams("just text")
		if out != "just text" || len(blocks) != 0 {
			t.Errorf("ExtractDiagrams() = %q, %v", out, blocks)
		}
	})

	t.Run("backtick span inside source stays verbatim", func(t *testing.T) {
		t.Parallel()

		guard := pipeline.NewCodeGuard(pipeline.DiagramLanguage)
		input := "```mermaid\ngraph TD;\nA[\"uses `foo` here\"]-->B;\n```\n\ntext with `span`\n"

		text := guard.ProtectFenced(input)
		text, blocks := pipeline.ExtractDiagrams(text)
		text = guard.ProtectInline(text)

		if len(blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(blocks))
		}
		if want := "graph TD;\nA[\"uses `foo` here\"]-->B;"; blocks[0].Source != want {
			t.Errorf("source = %q, want %q", blocks[0].Source, want)
		}
		if strings.ContainsRune(blocks[0].Source, '\uE000') {
			t.Errorf("source carries a guard placeholder: %q", blocks[0].Source)
		}
		if strings.Contains(text, "`span`") {
			t.Errorf("inline span outside the fence not guarded: %q", text)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDiagramPlaceholder_SurvivesAssemble - Comments pass through unparsed
// ---------------------------------------------------------------------------

func TestDiagramPlaceholder_SurvivesAssemble(t *testing.T) {
	t.Parallel()

	input := "before\n\n" + pipeline.DiagramPlaceholder(0) + "\n\nafter"
	got := pipeline.Assemble(input)

	if !strings.Contains(got, pipeline.DiagramPlaceholder(0)) {
		t.Errorf("Assemble() lost the placeholder: %q", got)
	}
	if strings.Contains(got, "<p>"+pipeline.DiagramPlaceholder(0)) {
		t.Errorf("Assemble() wrapped the placeholder in a paragraph: %q", got)
	}
}
