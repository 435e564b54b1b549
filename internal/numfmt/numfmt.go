// Package numfmt formats a value.NumericValue according to a requested
// numeric form (§4.3): Numeric, Roman, Ordinal, LongOrdinal, with
// locale-appropriate hyphen joining and optional page-range compression.
package numfmt

import (
	"strconv"
	"strings"

	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/value"
)

// Form enumerates the four numeric forms a <number> element can request
// (§4.3).
type Form int

const (
	Numeric Form = iota
	Roman
	Ordinal
	LongOrdinal
)

// PageRangeFormat enumerates the style's page-range-format attribute (§4.3,
// §8 scenario).
type PageRangeFormat int

const (
	PageRangeNone PageRangeFormat = iota
	PageRangeExpanded
	PageRangeMinimal
	PageRangeMinimalTwo
	PageRangeChicago
)

// hyphenVariables lists the number-variables whose token separators use an
// en-dash rather than a hyphen-minus (§4.3).
var hyphenVariables = map[string]bool{
	"page": true, "locator": true, "issue": true, "volume": true,
	"edition": true, "number": true,
}

// Format renders n per form, joining multi-token numerics with the correct
// hyphen character for variable, and applying page-range compression when
// variable == "page" and prf != PageRangeNone (§4.3, §8 scenario).
func Format(n value.NumericValue, form Form, variable string, prf PageRangeFormat, loc *locale.Set) string {
	if !n.IsNumeric() {
		return n.Raw
	}

	tokens := n.Tokens
	if variable == "page" && prf != PageRangeNone {
		tokens = compressPageTokens(tokens, prf)
	}

	hyphen := "-"
	if hyphenVariables[variable] {
		hyphen = "–" // en-dash
	}

	var b strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case value.TokHyphen:
			b.WriteString(hyphen)
		case value.TokComma:
			b.WriteString(", ")
		case value.TokAmpersand:
			b.WriteString(" & ")
		case value.TokAnd:
			b.WriteString(" and ")
		case value.TokCommaAnd:
			b.WriteString(", and ")
		case value.TokStr:
			b.WriteString(t.Str)
		default:
			b.WriteString(formatOne(t, form, loc))
		}
	}
	return b.String()
}

func formatOne(t value.Token, form Form, loc *locale.Set) string {
	num := t.Num
	switch form {
	case Roman:
		s := toRomanLower(num)
		if t.Kind == value.TokRoman && t.Upper {
			return strings.ToUpper(s)
		}
		return s
	case Ordinal:
		suf, ok := loc.Ordinal(int(num))
		if !ok {
			suf = defaultOrdinalSuffix(num)
		}
		return strconv.FormatUint(uint64(num), 10) + suf
	case LongOrdinal:
		if w, ok := longOrdinalWord(num); ok {
			return w
		}
		suf, ok := loc.Ordinal(int(num))
		if !ok {
			suf = defaultOrdinalSuffix(num)
		}
		return strconv.FormatUint(uint64(num), 10) + suf
	default:
		switch t.Kind {
		case value.TokAffixed:
			return t.Prefix + strconv.FormatUint(uint64(num), 10) + t.Suffix
		default:
			return strconv.FormatUint(uint64(num), 10)
		}
	}
}

func defaultOrdinalSuffix(n uint32) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

var longOrdinalWords = []string{
	"", "first", "second", "third", "fourth", "fifth", "sixth", "seventh",
	"eighth", "ninth", "tenth",
}

func longOrdinalWord(n uint32) (string, bool) {
	if int(n) < len(longOrdinalWords) && n > 0 {
		return longOrdinalWords[n], true
	}
	return "", false
}

var romanValues = []struct {
	sym string
	val uint32
}{
	{"m", 1000}, {"cm", 900}, {"d", 500}, {"cd", 400},
	{"c", 100}, {"xc", 90}, {"l", 50}, {"xl", 40},
	{"x", 10}, {"ix", 9}, {"v", 5}, {"iv", 4}, {"i", 1},
}

func toRomanLower(n uint32) string {
	if n == 0 || n > 3999 {
		return strconv.FormatUint(uint64(n), 10)
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.val {
			b.WriteString(rv.sym)
			n -= rv.val
		}
	}
	return b.String()
}
