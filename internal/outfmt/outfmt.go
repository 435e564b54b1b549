// Package outfmt is the output-format abstraction (§4.10): everything the
// rendering pipeline needs to turn an already-decided piece of content into
// a concrete markup fragment, kept behind an interface so the core never
// hard-codes HTML, RTF, or plain text. The core ships two reference
// implementations (Plain, MicroHTML); a host embedding this module can
// supply its own.
package outfmt

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is the pluggable output-format interface (§4.10): plain, text_node,
// group, seq, affixed, with_format, quoted, output, ingest,
// ends_with_full_stop.
type Format interface {
	// Plain wraps a bare, unformatted run of text (the "plain" node kind).
	Plain(s string) string

	// TextNode wraps a leaf piece of rendered content before any affixes or
	// formatting are applied (the "text_node" node kind).
	TextNode(s string) string

	// Group joins already-built fragments with delimiter, skipping empty
	// fragments (the "group"/"seq" node kinds). Mirrors ir's own delimiter
	// folding in EdgeSequence, but at the format layer so a host format can
	// intercept the join (e.g. to avoid two delimiters either side of a
	// format change).
	Group(parts []string, delimiter string) string

	// Affixed wraps content with a literal prefix/suffix (the "affixed" node
	// kind). Empty content yields "" regardless of prefix/suffix (§4.3:
	// affixes never surround nothing).
	Affixed(content, prefix, suffix string) string

	// WithFormat applies bold/italic emphasis (the "with_format" node kind).
	WithFormat(content string, bold, italic bool) string

	// Quoted wraps content in the format's quotation marks (the "quoted"
	// node kind). punctuationInQuote carries the locale's setting; Plain and
	// MicroHTML accept it but do not move any punctuation.
	Quoted(content string, punctuationInQuote bool) string

	// TextCase applies one of CSL's text-case transforms, language-aware via
	// lang (a BCP 47 tag; "" means no locale-specific casing rules apply).
	TextCase(content, textCase, lang string) string

	// Output finalizes a top-level rendered tree into the format's public
	// representation (the "output" node kind) — e.g. trimming, or wrapping
	// in a top-level container tag.
	Output(content string) string

	// Ingest absorbs raw host-supplied markup (a cite's Prefix/Suffix, or a
	// reference's rich-text fields) into the format's representation without
	// re-escaping content the host already intended as markup.
	Ingest(raw string) string

	// EndsWithFullStop reports whether content already ends in a sentence
	// terminator, so callers can skip adding a redundant one (§4.3 "Suffix
	// doesn't duplicate an existing full stop").
	EndsWithFullStop(content string) bool
}

// langTag parses a BCP 47 tag, falling back to English for "" or anything
// unparseable; CSL styles always carry a default-locale so this only matters
// for malformed locale data.
func langTag(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	t, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return t
}

// applyTextCase implements the shared case-transform logic both reference
// formats use; golang.org/x/text/cases does the locale-aware folding so
// title-casing and uppercasing respect language-specific casing rules
// (Turkish dotless i, etc.) instead of a naive byte-wise ToUpper. Title
// casing capitalizes every word; no small-word list is applied.
func applyTextCase(content, textCase, lang string) string {
	if content == "" || textCase == "" {
		return content
	}
	tag := langTag(lang)
	switch textCase {
	case "lowercase":
		return cases.Lower(tag).String(content)
	case "uppercase":
		return cases.Upper(tag).String(content)
	case "capitalize-all":
		return cases.Title(tag).String(content)
	case "title":
		return cases.Title(tag, cases.NoLower).String(content)
	case "capitalize-first":
		return capitalizeFirstRune(content)
	case "sentence":
		return capitalizeFirstRune(cases.Lower(tag).String(content))
	default:
		return content
	}
}

func capitalizeFirstRune(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

var fullStopRunes = map[rune]bool{'.': true, '!': true, '?': true}

func endsWithFullStop(s string) bool {
	s = strings.TrimRight(s, "\"”’'")
	if s == "" {
		return false
	}
	r := []rune(s)
	return fullStopRunes[r[len(r)-1]]
}
