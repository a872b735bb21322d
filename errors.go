package md2conf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Publish target validation errors.
	ErrNoTarget     = errors.New("either a page id or a space key is required")
	ErrMissingTitle = errors.New("a title is required to create a page")

	// Diagram rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRenderFailed   = errors.New("diagram rendering failed")
)
