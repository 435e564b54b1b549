package outfmt

import "strings"

// Plain is the reference plain-text output format (§4.10): no markup at
// all, formatting attributes are silently dropped.
type Plain struct{}

func (Plain) Plain(s string) string    { return s }
func (Plain) TextNode(s string) string { return s }

func (Plain) Group(parts []string, delimiter string) string {
	return joinNonEmpty(parts, delimiter)
}

func (Plain) Affixed(content, prefix, suffix string) string {
	if content == "" {
		return ""
	}
	return prefix + content + suffix
}

func (Plain) WithFormat(content string, bold, italic bool) string {
	return content // plain text carries no emphasis markup
}

func (Plain) Quoted(content string, punctuationInQuote bool) string {
	if content == "" {
		return ""
	}
	return "“" + content + "”"
}

func (Plain) TextCase(content, textCase, lang string) string {
	return applyTextCase(content, textCase, lang)
}

func (Plain) Output(content string) string { return strings.TrimSpace(content) }
func (Plain) Ingest(raw string) string     { return raw }

func (Plain) EndsWithFullStop(content string) bool { return endsWithFullStop(content) }

func joinNonEmpty(parts []string, delimiter string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, delimiter)
}
