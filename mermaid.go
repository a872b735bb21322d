package md2conf

import (
	"context"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2conf/internal/fileutil"
)

// DiagramRenderer produces a rendered image from diagram source text. A
// failed render returns no partial output.
type DiagramRenderer interface {
	Render(ctx context.Context, source string) ([]byte, error)
}

// Compile-time interface implementation check.
var _ DiagramRenderer = (*MermaidRenderer)(nil)

// defaultRenderTimeout bounds a single diagram render.
const defaultRenderTimeout = 30 * time.Second

// defaultMermaidJS is loaded into the render page unless MERMAID_JS_URL
// overrides it (e.g., with a file:// URL for offline use).
const defaultMermaidJS = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// mermaidTemplate hosts one diagram definition for headless Chrome. The
// strict securityLevel keeps diagram text from running scripts.
const mermaidTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script src="%s"></script>
</head>
<body style="background: white; margin: 0;">
<pre id="diagram" class="mermaid">%s</pre>
<script>mermaid.initialize({ startOnLoad: true, securityLevel: "strict" });</script>
</body>
</html>`

// MermaidRenderer renders mermaid diagram definitions to PNG images using
// headless Chrome via go-rod. Rod automatically downloads Chromium on first
// run if not found. The browser is reused across renders within one process
// lifetime; each render gets a fresh page, so no state leaks between calls.
type MermaidRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewMermaidRenderer creates a MermaidRenderer with the given per-render
// timeout; a non-positive timeout selects the default.
func NewMermaidRenderer(timeout time.Duration) *MermaidRenderer {
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	return &MermaidRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *MermaidRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized
	// environments).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *MermaidRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// Render renders one diagram definition to PNG bytes. Invalid diagram
// syntax or an internal mermaid error fails the render with ErrRenderFailed.
func (r *MermaidRenderer) Render(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	js := os.Getenv("MERMAID_JS_URL")
	if js == "" {
		js = defaultMermaidJS
	}
	content := fmt.Sprintf(mermaidTemplate, js, html.EscapeString(source))

	tmpPath, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	svg, err := page.Element("#diagram svg")
	if err != nil {
		return nil, fmt.Errorf("%w: no svg produced: %v", ErrRenderFailed, err)
	}

	// Mermaid replaces the diagram with an error graphic for invalid
	// definitions; its aria-roledescription attribute identifies it.
	if desc, err := svg.Attribute("aria-roledescription"); err == nil && desc != nil && *desc == "error" {
		return nil, fmt.Errorf("%w: invalid diagram definition", ErrRenderFailed)
	}

	img, err := svg.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return img, nil
}
