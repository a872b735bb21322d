package md2conf

import (
	"context"

	"github.com/alnah/go-md2conf/internal/pipeline"
)

// Converter runs the markdown to storage-format conversion pipeline.
// Conversion is pure string transformation; a single Converter is safe for
// concurrent use because all per-run state lives in the run itself.
type Converter struct{}

// NewConverter creates a Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert transforms markdown into a storage-format body, extracting
// embedded diagram definitions. When diagrams are present the body carries
// one positional placeholder per diagram; these must be resolved before the
// document is considered final. Code spans survive verbatim, including
// reserved markup characters.
func (c *Converter) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := pipeline.NormalizeLineEndings(input.Markdown)

	// Fenced code is protected first, diagram fences are extracted, and only
	// then are inline spans protected. Extraction must come between the two
	// guard phases so a backtick inside a diagram definition is never minted
	// into a placeholder that would leak into the extracted source.
	guard := pipeline.NewCodeGuard(pipeline.DiagramLanguage)
	text = guard.ProtectFenced(text)
	text, blocks := pipeline.ExtractDiagrams(text)
	text = guard.ProtectInline(text)

	body := pipeline.Assemble(text)
	body = guard.Restore(body)

	diagrams := make([]DiagramBlock, len(blocks))
	for i, b := range blocks {
		diagrams[i] = DiagramBlock(b)
	}
	return &ConvertResult{Body: body, Diagrams: diagrams}, nil
}
