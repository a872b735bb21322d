package pipeline

import "strings"

// EscapeText escapes the XML-reserved characters in plain text.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes text for use inside a double-quoted attribute value.
func EscapeAttr(s string) string {
	return strings.ReplaceAll(EscapeText(s), `"`, "&quot;")
}

// CodeMacro renders a code macro in the target dialect with line numbering
// enabled. The body is wrapped in CDATA so reserved markup characters and
// generic-type syntax survive verbatim; any "]]>" inside the body is split
// across CDATA sections.
func CodeMacro(language, body string) string {
	var b strings.Builder
	b.WriteString(`<ac:structured-macro ac:name="code">`)
	b.WriteString(`<ac:parameter ac:name="language">` + EscapeText(language) + `</ac:parameter>`)
	b.WriteString(`<ac:parameter ac:name="linenumbers">true</ac:parameter>`)
	b.WriteString(`<ac:plain-text-body><![CDATA[` + escapeCDATA(body) + `]]></ac:plain-text-body>`)
	b.WriteString(`</ac:structured-macro>`)
	return b.String()
}

func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

// AttachmentImage renders an image element referencing an uploaded
// attachment by filename.
func AttachmentImage(filename string) string {
	return `<ac:image><ri:attachment ri:filename="` + EscapeAttr(filename) + `" /></ac:image>`
}
