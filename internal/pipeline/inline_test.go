package pipeline_test

import (
	"testing"

	"github.com/alnah/go-md2conf/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestFormatInline - Inline rule application and precedence
// ---------------------------------------------------------------------------

func TestFormatInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "nothing special here",
			want:  "nothing special here",
		},
		{
			name:  "strong",
			input: "**bold**",
			want:  "<strong>bold</strong>",
		},
		{
			name:  "strong underscore",
			input: "__bold__",
			want:  "<strong>bold</strong>",
		},
		{
			name:  "em",
			input: "*italic*",
			want:  "<em>italic</em>",
		},
		{
			name:  "em underscore needs word boundaries",
			input: "an _italic_ word",
			want:  "an <em>italic</em> word",
		},
		{
			name:  "snake_case identifiers survive",
			input: "call do_the_thing now",
			want:  "call do_the_thing now",
		},
		{
			name:  "strong-em runs before strong",
			input: "***both***",
			want:  "<strong><em>both</em></strong>",
		},
		{
			name:  "strong-em underscore",
			input: "___both___",
			want:  "<strong><em>both</em></strong>",
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			want:  "<del>gone</del>",
		},
		{
			name:  "anchor",
			input: "[docs](https://example.com/docs)",
			want:  `<a href="https://example.com/docs">docs</a>`,
		},
		{
			name:  "image runs before anchor",
			input: "![logo](https://example.com/logo.png)",
			want:  `<ac:image ac:alt="logo"><ri:url ri:value="https://example.com/logo.png" /></ac:image>`,
		},
		{
			name:  "quote in image alt escaped for attribute position",
			input: `![say "hi"](http://example.com/x.png)`,
			want:  `<ac:image ac:alt="say &quot;hi&quot;"><ri:url ri:value="http://example.com/x.png" /></ac:image>`,
		},
		{
			name:  "quote in anchor target escaped for attribute position",
			input: `[x](http://example.com/?q="a")`,
			want:  `<a href="http://example.com/?q=&quot;a&quot;">x</a>`,
		},
		{
			name:  "image with empty alt",
			input: "![](https://example.com/x.png)",
			want:  `<ac:image ac:alt=""><ri:url ri:value="https://example.com/x.png" /></ac:image>`,
		},
		{
			name:  "malformed URL passes through verbatim",
			input: "[broken](not a url at all)",
			want:  `<a href="not a url at all">broken</a>`,
		},
		{
			name:  "text is XML-escaped before rules run",
			input: "a < b **and** c & d",
			want:  "a &lt; b <strong>and</strong> c &amp; d",
		},
		{
			name:  "mixed emphasis in one line",
			input: "**bold** then *em* then ~~del~~",
			want:  "<strong>bold</strong> then <em>em</em> then <del>del</del>",
		},
		{
			name:  "nested emphasis inside strong",
			input: "**outer *inner* outer**",
			want:  "<strong>outer <em>inner</em> outer</strong>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pipeline.FormatInline(tt.input)
			if got != tt.want {
				t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
