package md2conf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2conf/internal/pipeline"
)

// Publisher drives the two-phase publish cycle: an initial publish carrying
// diagram placeholders, sequential per-diagram resolution with local
// fallback, and a final publish of the fully resolved document. A document
// without diagrams is published in a single call.
type Publisher struct {
	store    Store
	renderer DiagramRenderer
	conv     *Converter
	log      zerolog.Logger
}

// NewPublisher creates a Publisher for the given store. Use options to
// customize behavior (e.g., WithLogger, WithRenderer).
func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store: store,
		conv:  NewConverter(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create the mermaid renderer if not injected (e.g., by tests).
	if p.renderer == nil {
		p.renderer = NewMermaidRenderer(defaultRenderTimeout)
	}
	return p
}

// Publish converts and publishes one document. Remote-store failures during
// a publish phase abort the whole action and are surfaced verbatim, never
// retried. Diagram-level failures are contained per diagram: the failing
// diagram is kept as a code block and the batch continues.
func (p *Publisher) Publish(ctx context.Context, input PublishInput) (*PublishResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	res, err := p.conv.Convert(ctx, Input{Markdown: input.Markdown})
	if err != nil {
		p.stage("convert", err)
		return nil, err
	}
	p.stage("convert", nil)

	body := res.Body
	pageID := input.PageID
	title := input.Title

	// The initial publish commits the document so the target contains
	// committed content even if diagram resolution is interrupted. With no
	// diagrams it is also the terminal publish.
	if pageID != "" {
		title, err = p.update(ctx, pageID, title, body)
	} else {
		pageID, err = p.store.Create(ctx, input.SpaceKey, title, body, input.ParentID)
	}
	if err != nil {
		p.stage("initial-publish", err)
		return nil, fmt.Errorf("initial publish: %w", err)
	}
	p.stage("initial-publish", nil)

	result := &PublishResult{PageID: pageID, Diagrams: len(res.Diagrams)}
	if len(res.Diagrams) == 0 {
		return result, nil
	}

	// Diagrams resolve strictly in ascending ordinal order. Rendering is
	// stateful and shares one browser, so resolution is sequential.
	for _, d := range res.Diagrams {
		replacement, ok := p.resolveDiagram(ctx, pageID, d)
		if !ok {
			result.Fallbacks++
		}
		body = strings.Replace(body, pipeline.DiagramPlaceholder(d.Ordinal), replacement, 1)
	}

	if _, err := p.update(ctx, pageID, title, body); err != nil {
		p.stage("final-publish", err)
		return nil, fmt.Errorf("final publish: %w", err)
	}
	p.stage("final-publish", nil)

	return result, nil
}

// Close releases renderer resources (the headless browser).
func (p *Publisher) Close() error {
	if c, ok := p.renderer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// update re-reads the page before writing so the version sent is always the
// store's current one plus one. A stale write therefore only happens when
// another client updates concurrently, and the resulting version conflict
// is surfaced, not retried. Returns the title actually written.
func (p *Publisher) update(ctx context.Context, id, title, body string) (string, error) {
	page, err := p.store.Fetch(ctx, id)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = page.Title
	}
	if err := p.store.Update(ctx, id, page.Version+1, title, body); err != nil {
		return "", err
	}
	return title, nil
}

// resolveDiagram renders and uploads one diagram, returning the markup that
// replaces its placeholder. Render and upload failures both yield the
// diagram source as a code block; the two reasons are deliberately not
// distinguished in the rendered output.
func (p *Publisher) resolveDiagram(ctx context.Context, pageID string, d DiagramBlock) (markup string, resolved bool) {
	img, err := p.renderer.Render(ctx, d.Source)
	if err != nil {
		p.log.Warn().Str("stage", "render").Int("diagram", d.Ordinal).Err(err).
			Msg("falling back to code block")
		return pipeline.CodeMacro(pipeline.DiagramLanguage, d.Source), false
	}

	name := fmt.Sprintf("diagram-%d.png", d.Ordinal)
	if _, err := p.store.UploadAttachment(ctx, pageID, name, img, "image/png"); err != nil {
		p.log.Warn().Str("stage", "upload").Int("diagram", d.Ordinal).Err(err).
			Msg("falling back to code block")
		return pipeline.CodeMacro(pipeline.DiagramLanguage, d.Source), false
	}

	p.log.Debug().Str("stage", "resolve").Int("diagram", d.Ordinal).Str("attachment", name).
		Msg("diagram attached")
	return pipeline.AttachmentImage(name), true
}

// stage records one publish-stage event on the observability hook.
func (p *Publisher) stage(name string, err error) {
	if err != nil {
		p.log.Error().Str("stage", name).Str("outcome", "error").Err(err).Msg("publish stage failed")
		return
	}
	p.log.Debug().Str("stage", name).Str("outcome", "ok").Msg("publish stage complete")
}
