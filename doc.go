// Package md2conf converts Markdown documents to Confluence storage format
// and publishes them, rendering embedded mermaid diagrams to images uploaded
// as page attachments.
//
// # Quick Start
//
// Convert without publishing:
//
//	conv := md2conf.NewConverter()
//	res, err := conv.Convert(ctx, md2conf.Input{Markdown: "# Hello\n\nWorld"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Body)
//
// Publish to a Confluence instance, rendering diagrams along the way:
//
//	store := md2conf.NewConfluenceStore(baseURL, email, token)
//	pub := md2conf.NewPublisher(store)
//	defer pub.Close()
//
//	result, err := pub.Publish(ctx, md2conf.PublishInput{
//	    Markdown: content,
//	    PageID:   "123456", // or SpaceKey+Title to create
//	})
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Code-span protection (fenced blocks and inline spans become opaque
//     placeholders so formatting rules never corrupt code content)
//  2. Diagram extraction (mermaid fences become positional placeholders)
//  3. Block pass (headings, nested lists, tables) and inline pass
//     (emphasis, strong, strikethrough, links, images)
//  4. Strict-dialect normalization (self-closing empty elements) and
//     code-span restoration
//
// # Publishing
//
// With no diagrams a document is published in a single call. With diagrams
// the publisher first commits the placeholder-bearing document, then
// resolves diagrams strictly in document order: render with headless
// Chrome, upload the image as an attachment, and substitute an image
// reference. A diagram whose render or upload fails is kept as a code
// block; a single diagram's failure never aborts the batch. Once every
// placeholder is resolved the final document is published as an update.
//
// The publisher always re-reads the page version before an update and never
// retries a version conflict.
//
// # Browser Requirements
//
// Diagram rendering requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use a custom Chrome
// binary, and MERMAID_JS_URL to override where mermaid.js is loaded from.
package md2conf
