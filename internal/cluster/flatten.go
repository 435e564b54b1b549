// Package cluster assembles rendered cites into clusters (footnotes or
// in-text parentheticals): joining cites with the style's delimiter,
// collapsing repeated authors/years, applying the Composite cluster mode
// (only to a two-cite cluster with a non-empty infix; the SuppressAuthor and
// AuthorOnly cluster modes and per-cite modes are not applied), and
// flattening each cite's
// finalized IR tree into the output format's concrete representation
// (§4.9, §4.10).
package cluster

import (
	"strings"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/outfmt"
)

// Flatten walks a fully-resolved (ir.HasUnresolved == false) IR tree and
// builds the output format's concrete string, applying each Seq node's
// inherited prefix/suffix/quotes/bold/italic/text-case through format
// (§4.10). Unlike ir.EdgeSequence, which only cares about the DFA's
// ambiguity alphabet, Flatten is this module's one true string-building
// pass (§4.10 note on ir.EdgeSequence).
func Flatten(a *ir.Arena, root ir.NodeIndex, format outfmt.Format, lang string) string {
	return flattenNode(a, root, format, lang)
}

func flattenNode(a *ir.Arena, idx ir.NodeIndex, format outfmt.Format, lang string) string {
	n := a.Get(idx)
	switch n.Kind {
	case ir.KindRendered:
		if n.Edge == nil {
			return ""
		}
		return n.Edge.Output

	case ir.KindYearSuffix:
		if n.YearSuffix == nil {
			return ""
		}
		return n.YearSuffix.Resolved

	case ir.KindNameCounter:
		return ""

	case ir.KindName:
		if n.Name == nil || n.Name.Suppressed {
			return ""
		}
		var parts []string
		for _, e := range n.Name.RenderedEdgesCache {
			parts = append(parts, e.Output)
		}
		return strings.Join(parts, "")

	case ir.KindConditionalDisamb:
		if n.Cond == nil {
			return ""
		}
		return flattenNode(a, n.Cond.Content, format, lang)

	case ir.KindSeq:
		return flattenSeq(a, n, format, lang)

	case ir.KindSubstitute:
		return ""

	default:
		return ""
	}
}

func flattenSeq(a *ir.Arena, n *ir.Node, format outfmt.Format, lang string) string {
	if n.Seq == nil {
		return ""
	}
	if n.Seq.IsGroup && n.Vars.ShouldSuppress() {
		return ""
	}

	parts := make([]string, 0, len(n.Seq.Children))
	for _, c := range n.Seq.Children {
		parts = append(parts, flattenNode(a, c, format, lang))
	}
	content := format.Group(parts, n.Seq.Delimiter)
	content = format.TextCase(content, n.Seq.TextCase, lang)
	content = format.WithFormat(content, n.Seq.Bold, n.Seq.Italic)
	if n.Seq.Quotes {
		content = format.Quoted(content, false)
	}
	content = format.Affixed(content, n.Seq.Prefix, n.Seq.Suffix)
	return content
}
