package cluster

import (
	"strings"

	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// Assemble flattens every cite in a cluster and joins them per the
// citation layout's delimiter and the cluster's mode (§3, §4.9). Collapse
// must already have been applied to cites (via Collapse) before calling
// this, since collapsing mutates the IR trees Flatten reads from.
// collapse == style.CollapseCitationNumber takes a different path
// entirely: instead of joining each cite's flattened text, it compresses
// the cites' CitationNumber fields into Vancouver-style runs (§4.9 bullet
// 2, §8: "[ref3, ref4, ref5, ref9] renders '3–5, 9'").
func Assemble(cites []CiteTree, mode *value.ClusterModeSpec, collapse style.CollapseMode, delimiter, prefix, suffix string, format outfmt.Format, lang string) string {
	if collapse == style.CollapseCitationNumber {
		if joined, ok := collapseCitationNumberText(cites); ok {
			return format.Output(format.Affixed(joined, prefix, suffix))
		}
	}

	rendered := make([]string, 0, len(cites))
	for _, c := range cites {
		rendered = append(rendered, Flatten(c.Tree.Arena, c.Tree.Root, format, lang))
	}

	var joined string
	if mode != nil && mode.Kind == value.ClusterComposite && len(rendered) == 2 && mode.CompositeInfix != "" {
		joined = rendered[0] + mode.CompositeInfix + rendered[1]
	} else {
		joined = format.Group(rendered, delimiter)
	}

	return format.Output(format.Affixed(joined, prefix, suffix))
}

// collapseCitationNumberText extracts every cite's citation number in cite
// order and compresses them via CollapseCitationNumbers. It reports false
// (falling back to the normal join) if any cite lacks a citation number,
// since a partial compression would be worse than none.
func collapseCitationNumberText(cites []CiteTree) (string, bool) {
	nums := make([]int, 0, len(cites))
	for _, c := range cites {
		if !c.HasCiteNumber {
			return "", false
		}
		nums = append(nums, c.CitationNumber)
	}
	return CollapseCitationNumbers(nums), true
}

// JoinWithPunctuationFix is a delimiter join that avoids a doubled
// terminator when a fragment already ends in the format's sentence-ending
// punctuation and the next fragment's prefix would add another (§4.10-ish
// ends_with_full_stop use, §4.3 "Suffix doesn't duplicate an existing full
// stop").
func JoinWithPunctuationFix(parts []string, delimiter string, format outfmt.Format) string {
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			if format.EndsWithFullStop(b.String()) && strings.HasPrefix(delimiter, ".") {
				b.WriteString(delimiter[1:])
			} else {
				b.WriteString(delimiter)
			}
		}
		b.WriteString(p)
	}
	return b.String()
}
