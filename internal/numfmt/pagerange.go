package numfmt

import "github.com/csl-go/citeproc/internal/value"

// compressPageTokens rewrites the Num of the second endpoint in each
// TokNum-TokHyphen-TokNum run according to prf (§4.3, §8 scenario: "321-328"
// compresses to "321–28" under Chicago rules). Tokens outside Num/Hyphen runs
// (commas, strings) are left untouched and runs of more than two numbers
// joined by hyphens are left uncompressed since page-range-format only
// applies to a single range.
func compressPageTokens(tokens []value.Token, prf PageRangeFormat) []value.Token {
	out := make([]value.Token, len(tokens))
	copy(out, tokens)

	for i := 0; i+2 < len(out); i++ {
		if out[i].Kind != value.TokNum || out[i+1].Kind != value.TokHyphen || out[i+2].Kind != value.TokNum {
			continue
		}
		if (i > 0 && out[i-1].Kind == value.TokHyphen) || (i+3 < len(out) && out[i+3].Kind == value.TokHyphen) {
			continue // part of a longer hyphen-joined run
		}
		first, second := out[i].Num, out[i+2].Num
		if second <= first {
			continue
		}
		out[i+2].Num = compressSecond(first, second, prf)
	}
	return out
}

// compressSecond returns the digit-compressed form of second relative to
// first, per the range-format rules at
// https://docs.citationstyles.org/en/stable/specification.html#locators
// (§4.3, §8 scenario).
func compressSecond(first, second uint32, prf PageRangeFormat) uint32 {
	fd := digits(first)
	sd := digits(second)
	if len(fd) != len(sd) || len(fd) < 2 {
		return second // different digit counts: nothing to compress
	}

	switch prf {
	case PageRangeExpanded:
		return second // always render both endpoints in full
	case PageRangeChicago:
		return chicagoCompress(fd, sd)
	case PageRangeMinimal:
		return minimalCompress(fd, sd, 1)
	case PageRangeMinimalTwo:
		return minimalCompress(fd, sd, 2)
	default:
		return second
	}
}

// digits returns n's decimal digits, most significant first.
func digits(n uint32) []byte {
	if n == 0 {
		return []byte{0}
	}
	var rev []byte
	for n > 0 {
		rev = append(rev, byte(n%10))
		n /= 10
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

func fromDigits(d []byte) uint32 {
	var n uint32
	for _, c := range d {
		n = n*10 + uint32(c)
	}
	return n
}

// chicagoCompress implements the Chicago Manual of Style page-range rules:
// two-digit ranges are shown in full; otherwise second keeps its digits from
// the first one that differs from first, but at least two, with a leading
// zero of the kept digits dropped; when first ends in "00", second is shown
// in full ("321-328" -> "321-28", "100-104" -> "100-104",
// "1100-1113" -> "1100-1113", "107-108" -> "107-8").
func chicagoCompress(fd, sd []byte) uint32 {
	n := len(fd)
	if n <= 2 {
		return fromDigits(sd)
	}
	// Number of trailing digits from second that differ from first's
	// corresponding digits, with the Chicago "at least two digits, and keep
	// the tens digit if it changed" special case.
	diffFrom := n
	for i := 0; i < n; i++ {
		if fd[i] != sd[i] {
			diffFrom = i
			break
		}
	}
	keep := n - diffFrom
	if keep < 2 {
		keep = 2
	}
	// "00" boundary: if the tens-and-below of first are "00", show full second.
	if n >= 3 && fd[n-2] == 0 && fd[n-1] == 0 {
		keep = n
	}
	return fromDigits(sd[n-keep:])
}

// minimalCompress shows the minimum digits of second that still disambiguate
// it from first, with a floor of minDigits (CSL's minimal vs. minimal-two).
func minimalCompress(fd, sd []byte, minDigits int) uint32 {
	n := len(fd)
	diffFrom := n
	for i := 0; i < n; i++ {
		if fd[i] != sd[i] {
			diffFrom = i
			break
		}
	}
	keep := n - diffFrom
	if keep < minDigits {
		keep = minDigits
	}
	return fromDigits(sd[n-keep:])
}
