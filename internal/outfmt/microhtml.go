package outfmt

import (
	"html"
	"strings"
)

// MicroHTML is the reference HTML output format (§4.10): a small, fixed
// subset of tags (<b> and <i> for bold/italic, plus the <div> wrapper that
// Output adds), nothing else; display attributes are not rendered. Escaping of literal text
// uses the standard library's html.EscapeString: CSL's HTML surface is this
// narrow fixed tag set, not arbitrary markup, so a general-purpose HTML
// templating library would bring machinery (context-aware escaping, DOM
// parsing) this format has no use for.
type MicroHTML struct{}

func (MicroHTML) Plain(s string) string { return s }

func (MicroHTML) TextNode(s string) string {
	return html.EscapeString(s)
}

func (MicroHTML) Group(parts []string, delimiter string) string {
	return joinNonEmpty(parts, html.EscapeString(delimiter))
}

func (MicroHTML) Affixed(content, prefix, suffix string) string {
	if content == "" {
		return ""
	}
	return html.EscapeString(prefix) + content + html.EscapeString(suffix)
}

func (MicroHTML) WithFormat(content string, bold, italic bool) string {
	if content == "" {
		return content
	}
	if bold {
		content = "<b>" + content + "</b>"
	}
	if italic {
		content = "<i>" + content + "</i>"
	}
	return content
}

func (MicroHTML) Quoted(content string, punctuationInQuote bool) string {
	if content == "" {
		return ""
	}
	return "&#8220;" + content + "&#8221;"
}

func (MicroHTML) TextCase(content, textCase, lang string) string {
	return applyTextCase(content, textCase, lang)
}

func (MicroHTML) Output(content string) string {
	return `<div class="csl-entry">` + strings.TrimSpace(content) + `</div>`
}

// Ingest passes raw through unescaped: it is host-supplied markup
// (cite.Prefix/Suffix and similar), not literal text this format needs to
// protect against injection of its own tag set.
func (MicroHTML) Ingest(raw string) string { return raw }

func (MicroHTML) EndsWithFullStop(content string) bool {
	return endsWithFullStop(stripTags(content))
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
