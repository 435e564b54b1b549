package value

import (
	"strconv"
	"strings"
)

// TokenKind discriminates the elements of a parsed numeric token stream.
type TokenKind int

const (
	TokNum TokenKind = iota
	TokAffixed
	TokRoman
	TokStr
	TokHyphen
	TokComma
	TokAmpersand
	TokAnd
	TokCommaAnd
)

// Token is one element of a parsed NumericValue token stream (§3).
type Token struct {
	Kind   TokenKind
	Num    uint32
	Prefix string // Affixed only
	Suffix string // Affixed only
	Upper  bool   // Roman only
	Str    string // Str only
}

// NumericValue is either a parsed token sequence or an unparsed opaque
// string (§3). is-numeric (§4.2 variable-is-numeric) is true iff Tokens is
// non-nil.
type NumericValue struct {
	Tokens []Token
	Raw    string
}

// IsNumeric reports whether the value parsed into a token stream.
func (n NumericValue) IsNumeric() bool { return n.Tokens != nil }

// Verbatim reconstructs the original string form. Used by the round-trip
// testable property (§8 item 3).
func (n NumericValue) Verbatim() string {
	if !n.IsNumeric() {
		return n.Raw
	}
	var b strings.Builder
	for _, t := range n.Tokens {
		switch t.Kind {
		case TokNum:
			b.WriteString(strconv.FormatUint(uint64(t.Num), 10))
		case TokAffixed:
			b.WriteString(t.Prefix)
			b.WriteString(strconv.FormatUint(uint64(t.Num), 10))
			b.WriteString(t.Suffix)
		case TokRoman:
			if t.Upper {
				b.WriteString(toRoman(t.Num))
			} else {
				b.WriteString(strings.ToLower(toRoman(t.Num)))
			}
		case TokStr:
			b.WriteString(t.Str)
		case TokHyphen:
			b.WriteString("-")
		case TokComma:
			b.WriteString(", ")
		case TokAmpersand:
			b.WriteString(" & ")
		case TokAnd:
			b.WriteString(" and ")
		case TokCommaAnd:
			b.WriteString(", and ")
		}
	}
	return b.String()
}

// NumTokenCount returns the count of Num/Affixed/Roman tokens, used by
// contextual label pluralization (§4.3: "more than one numeric token").
func (n NumericValue) NumTokenCount() int {
	c := 0
	for _, t := range n.Tokens {
		if t.Kind == TokNum || t.Kind == TokAffixed || t.Kind == TokRoman {
			c++
		}
	}
	return c
}

var affixedSuffixes = []string{"st", "nd", "rd", "th"}

// ParseNumeric parses a CSL numeric-variable string into a token stream.
// Accepts forms like "2, 4", "2-4, 5", "2nd", "L2", "2nd-4th"; anything else
// is left as an opaque string with Tokens == nil (§3, §7: numeric parsing
// never fails, it just may not recognize the shape).
func ParseNumeric(raw string) NumericValue {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NumericValue{Raw: raw}
	}

	fields := tokenizeNumeric(raw)
	if fields == nil {
		return NumericValue{Raw: raw}
	}
	return NumericValue{Tokens: fields, Raw: raw}
}

// tokenizeNumeric performs a single left-to-right scan, splitting on
// separators (",", "-", "&", " and ") and classifying each piece as a number,
// an affixed ordinal ("2nd"), a leading-letter form ("L2"), or a bare roman
// numeral. Returns nil if any piece is unrecognizable, signalling the caller
// to fall back to an opaque string.
func tokenizeNumeric(raw string) []Token {
	var tokens []Token
	pos := 0
	n := len(raw)

	for pos < n {
		for pos < n && raw[pos] == ' ' {
			pos++
		}
		if pos >= n {
			break
		}

		switch {
		case raw[pos] == ',':
			pos++
			if pos < n && raw[pos] == ' ' {
				pos++
			}
			if strings.HasPrefix(raw[pos:], "and ") {
				tokens = append(tokens, Token{Kind: TokCommaAnd})
				pos += 4
			} else {
				tokens = append(tokens, Token{Kind: TokComma})
			}
			continue
		case raw[pos] == '-':
			tokens = append(tokens, Token{Kind: TokHyphen})
			pos++
			continue
		case raw[pos] == '&':
			tokens = append(tokens, Token{Kind: TokAmpersand})
			pos++
			continue
		case strings.HasPrefix(raw[pos:], "and "):
			tokens = append(tokens, Token{Kind: TokAnd})
			pos += 4
			continue
		}

		start := pos
		for pos < n && raw[pos] != ',' && raw[pos] != '-' && raw[pos] != '&' {
			if strings.HasPrefix(raw[pos:], " and ") {
				break
			}
			pos++
		}
		piece := strings.TrimSpace(raw[start:pos])
		if piece == "" {
			return nil
		}
		tok, ok := classifyPiece(piece)
		if !ok {
			return nil
		}
		tokens = append(tokens, tok)
	}

	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// classifyPiece recognizes a single numeric-or-roman-or-letter-prefixed
// piece such as "2", "2nd", "L2", "iv".
func classifyPiece(piece string) (Token, bool) {
	if v, err := strconv.ParseUint(piece, 10, 32); err == nil {
		return Token{Kind: TokNum, Num: uint32(v)}, true
	}

	// Ordinal suffix: "2nd", "3rd"
	for _, suf := range affixedSuffixes {
		if strings.HasSuffix(strings.ToLower(piece), suf) {
			numPart := piece[:len(piece)-len(suf)]
			if v, err := strconv.ParseUint(numPart, 10, 32); err == nil {
				return Token{Kind: TokAffixed, Num: uint32(v), Suffix: piece[len(numPart):]}, true
			}
		}
	}

	// Leading letter prefix: "L2", "A1"
	i := 0
	for i < len(piece) && !(piece[i] >= '0' && piece[i] <= '9') {
		i++
	}
	if i > 0 && i < len(piece) {
		prefix := piece[:i]
		if v, err := strconv.ParseUint(piece[i:], 10, 32); err == nil {
			return Token{Kind: TokAffixed, Num: uint32(v), Prefix: prefix}, true
		}
	}

	if v, ok := fromRoman(piece); ok {
		return Token{Kind: TokRoman, Num: v, Upper: piece == strings.ToUpper(piece)}, true
	}

	return Token{}, false
}

var romanValues = []struct {
	sym string
	val uint32
}{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// toRoman converts n to upper-case Roman numerals, for n in [1, 3999].
func toRoman(n uint32) string {
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

// fromRoman parses a Roman numeral string (case-insensitive). Returns false
// if s is empty or contains characters outside IVXLCDM.
func fromRoman(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	up := strings.ToUpper(s)
	for _, r := range up {
		if strings.IndexRune("IVXLCDM", r) < 0 {
			return 0, false
		}
	}
	vals := map[byte]uint32{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}
	var total uint32
	for i := 0; i < len(up); i++ {
		v := vals[up[i]]
		if i+1 < len(up) && v < vals[up[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	if total == 0 {
		return 0, false
	}
	// Round-trip check: reject strings that aren't canonical Roman numerals
	// (e.g. "IIII"), since those should be treated as opaque text instead.
	if toRoman(total) != up {
		return 0, false
	}
	return total, true
}
