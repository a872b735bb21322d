package md2conf

import "github.com/rs/zerolog"

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
}

// DiagramBlock is one extracted diagram definition. Ordinals are 0-based in
// document order.
type DiagramBlock struct {
	Ordinal int
	Source  string
}

// ConvertResult holds the storage-format body and the diagrams extracted
// from it. When Diagrams is non-empty the body still carries their
// positional placeholders; the publisher resolves them.
type ConvertResult struct {
	Body     string
	Diagrams []DiagramBlock
}

// PublishInput describes one publish action. Set PageID to update an
// existing page, or SpaceKey (plus Title) to create a new one.
type PublishInput struct {
	Markdown string // Markdown content (required)
	PageID   string // id of the page to update
	SpaceKey string // space to create the page in
	Title    string // page title; on update, empty keeps the current title
	ParentID string // optional parent page for creation
}

// Validate checks that required fields are present. Runs locally, before
// any network call.
func (in PublishInput) Validate() error {
	if in.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if in.PageID == "" && in.SpaceKey == "" {
		return ErrNoTarget
	}
	if in.PageID == "" && in.Title == "" {
		return ErrMissingTitle
	}
	return nil
}

// PublishResult reports where the document landed.
type PublishResult struct {
	PageID    string
	Diagrams  int // diagrams extracted from the document
	Fallbacks int // diagrams kept as code blocks after a render or upload failure
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithLogger sets the structured observability hook. Every publish stage
// emits one event carrying the stage name, outcome, and error detail. The
// default logger discards everything.
func WithLogger(log zerolog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.log = log
	}
}

// WithRenderer overrides the diagram renderer (e.g., by tests).
func WithRenderer(r DiagramRenderer) PublisherOption {
	return func(p *Publisher) {
		p.renderer = r
	}
}

// WithConverter overrides the converter used for the conversion phase.
func WithConverter(c *Converter) PublisherOption {
	return func(p *Publisher) {
		p.conv = c
	}
}
