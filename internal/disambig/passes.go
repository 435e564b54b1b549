package disambig

import (
	"strconv"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/render"
	"github.com/csl-go/citeproc/internal/value"
)

// nameNodes collects every KindName node under a cite's root, in document
// order, for the name-widening passes.
func nameNodes(a *ir.Arena, root ir.NodeIndex) []*ir.Node {
	var out []*ir.Node
	ir.Collect(a, root, func(_ ir.NodeIndex, n *ir.Node) {
		if n.Kind == ir.KindName && n.Name != nil {
			out = append(out, n)
		}
	})
	return out
}

// addNames is pass 1 (§4.8): widen the first names-block beyond
// et-al-min, up to the full list, for every still-ambiguous cite.
func (d *Driver) addNames(cites []*Cite) {
	for _, c := range cites {
		nodes := nameNodes(c.Arena, c.Root)
		if len(nodes) == 0 {
			continue
		}
		n := nodes[0].Name
		if n.ShownCount >= len(n.Names) {
			continue
		}
		n.ShownCount = len(n.Names)
		n.RenderedEdgesCache = render.RenderNameEdges(n, d.Locale, d.Format)
	}
}

// addGivenName is pass 2 (§4.8): add given-name initials or full given names
// to the names the style's givenname-disambiguation-rule says to expand.
func (d *Driver) addGivenName(cites []*Cite) {
	for _, c := range cites {
		nodes := nameNodes(c.Arena, c.Root)
		for _, node := range nodes {
			n := node.Name
			widenGivenNames(n, d.givenNameRule())
			n.RenderedEdgesCache = render.RenderNameEdges(n, d.Locale, d.Format)
		}
	}
}

func (d *Driver) givenNameRule() int {
	if d.Style == nil {
		return int(styleAllNames)
	}
	return int(d.Style.GivenNameDisambiguationRule)
}

const styleAllNames = 0

func widenGivenNames(n *ir.NameIR, rule int) {
	switch rule {
	case 1: // AllNamesWithInitials
		setAllGivenLevel(n, ir.GivenNameInitialsOnly)
	case 2, 3: // PrimaryName, PrimaryNameWithInitials: only the first name widens
		level := ir.GivenNameFull
		if rule == 3 {
			level = ir.GivenNameInitialsOnly
		}
		if len(n.Names) == 0 {
			return
		}
		if n.PerNameGiven == nil {
			n.PerNameGiven = make([]ir.GivenNameLevel, len(n.Names))
		}
		n.PerNameGiven[0] = level
	default: // AllNames, ByCite: expand every name to full given names
		setAllGivenLevel(n, ir.GivenNameFull)
	}
}

func setAllGivenLevel(n *ir.NameIR, level ir.GivenNameLevel) {
	n.GivenLevel = level
	n.PerNameGiven = nil
}

// addYearSuffix is pass 3 (§4.8): substitute the document-wide letter the
// caller assigned per reference (Driver.YearSuffixes, built by internal/engine
// from YearSuffixGroupKey/YearSuffixLetter across every cluster, not just this
// one) into every KindYearSuffix node carrying that reference's id. A
// reference absent from the map either isn't ambiguous by author+year or
// is alone in its group, and is left unresolved (renders nothing).
func (d *Driver) addYearSuffix(cites []*Cite) {
	for _, c := range cites {
		letter, ok := d.YearSuffixes[c.RefID]
		if !ok {
			continue
		}
		ir.Collect(c.Arena, c.Root, func(idx ir.NodeIndex, n *ir.Node) {
			if n.Kind == ir.KindYearSuffix && n.YearSuffix != nil && n.YearSuffix.RefID == c.RefID {
				n.YearSuffix.Resolved = letter
			}
		})
	}
}

// YearSuffixLetter maps a 0-based index to CSL's year-suffix sequence: a, b,
// ..., z, aa, ab, ... (base-26 with 'a' as the zero digit, no leading-digit
// skip the way spreadsheet columns do, since CSL year-suffix has no "zero"
// problem to work around).
func YearSuffixLetter(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return YearSuffixLetter(i/26-1) + string(rune('a'+i%26))
}

// conditionals is pass 4 (§4.8): re-evaluate every ConditionalDisamb node
// with disambiguate="true" now observable, accepting the rewrite
// unconditionally (the caller's ambiguousSet re-check after this pass is
// what decides whether it helped).
func (d *Driver) conditionals(cites []*Cite) {
	for _, c := range cites {
		c.DisambActivateFrom++
		if c.Ctx != nil {
			c.Ctx.DisambActivateFrom = c.DisambActivateFrom
		}
		rewriteConditionals(c.Arena, c.Root)
	}
}

func rewriteConditionals(a *ir.Arena, root ir.NodeIndex) {
	n := a.Get(root)
	switch n.Kind {
	case ir.KindSeq:
		if n.Seq != nil {
			for _, child := range n.Seq.Children {
				rewriteConditionals(a, child)
			}
		}
	case ir.KindConditionalDisamb:
		if n.Cond == nil || n.Cond.Done || n.Cond.Rerender == nil {
			return
		}
		content, gv := n.Cond.Rerender()
		n.Cond.Content = content
		n.Cond.Done = true
		n.Vars = gv
		rewriteConditionals(a, content)
	}
}

// YearSuffixGroupKey returns the grouping key two references share exactly
// when they're candidates for year-suffix disambiguation against each
// other: the same author names (compared by sort key) and the same issued
// year (§4.8 pass 3). internal/engine walks the whole document in cluster order,
// groups references by this key, and assigns YearSuffixLetter(i) to the
// i'th distinct reference a group's cites first appear under, building the
// Driver.YearSuffixes map addYearSuffix consumes.
func YearSuffixGroupKey(r *value.Reference) string {
	author := ""
	if names, ok := r.NameVariable("author"); ok {
		for _, n := range names {
			author += n.SortKey() + "\x01"
		}
	}
	year := ""
	if d, ok := r.DateVariable("issued"); ok && d.Single != nil {
		year = strconv.Itoa(d.Single.Year)
	}
	return author + "\x00" + year
}
