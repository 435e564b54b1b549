// Package disambig runs the five-pass disambiguation driver (§4.8): for
// every cite whose own reference's DFA also accepts another reference's
// rendering, progressively widen names, given-name initials, year-suffix
// letters, and disambiguate="true" conditionals until the cite is uniquely
// DFA-accepted or the passes are exhausted.
package disambig

import (
	"github.com/csl-go/citeproc/internal/automaton"
	"github.com/csl-go/citeproc/internal/cond"
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// Cite is one cite's mutable disambiguation state (§4.8): its already-built
// IR tree plus the progressive disambiguate="true" activation count pass 4
// re-checks against (§4.6 CurrentDisambCount). Ctx is the same
// *cond.CiteContext the renderer built the tree against; pass 4 must write
// DisambActivateFrom onto it before calling a branch's Rerender closure,
// since that closure re-evaluates conditions against Ctx, not against this
// struct.
type Cite struct {
	RefID              string
	Arena              *ir.Arena
	Root               ir.NodeIndex
	Ctx                *cond.CiteContext
	DisambActivateFrom int
}

// Driver threads the style, reference store, and output machinery every
// pass needs to re-render or re-check ambiguity.
type Driver struct {
	Style  *style.Style
	Store  *value.Store
	Locale *locale.Set
	Format outfmt.Format
	Loc    automaton.Location

	// YearSuffixes is the document-wide refID -> letter assignment pass 3
	// (addYearSuffix) substitutes into KindYearSuffix nodes. It must be
	// computed across every cluster in the document, not just the cites
	// passed to Run, since year-suffix disambiguation groups references by
	// author+year regardless of which cluster cites them (§4.8 pass 3).
	YearSuffixes map[string]string
}

// Run applies the five passes in order to every cite that starts ambiguous,
// re-checking ambiguity between passes and dropping cites from later passes
// once they become unambiguous (§4.8, §8 invariant 6).
func (d *Driver) Run(cites []*Cite) {
	ambiguous := d.ambiguousSet(cites)
	if len(ambiguous) == 0 {
		return
	}

	ambiguous = d.runPass(ambiguous, d.addNames)
	ambiguous = d.runPass(ambiguous, d.addGivenName)
	ambiguous = d.runPass(ambiguous, d.addYearSuffix)
	ambiguous = d.runPass(ambiguous, d.conditionals)
	_ = ambiguous // pass 5, give up: whatever remains stays as rendered
}

func (d *Driver) runPass(cites []*Cite, pass func([]*Cite)) []*Cite {
	if len(cites) == 0 {
		return cites
	}
	pass(cites)
	return d.ambiguousSet(cites)
}

// ambiguousSet reports which cites' own-reference edge sequence is also
// accepted by another reference's DFA (§4.6: "the cite's own reference's DFA
// accepts the cite AND at least one other reference's DFA also accepts it").
func (d *Driver) ambiguousSet(cites []*Cite) []*Cite {
	var out []*Cite
	for _, c := range cites {
		if d.isAmbiguous(c) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Driver) isAmbiguous(c *Cite) bool {
	seq := ir.EdgeSequence(c.Arena, c.Root)
	accepting := 0
	for _, ref := range d.Store.All() {
		dfa := automaton.Build(d.Style, d.Loc, ref, d.Locale, d.Format, c.DisambActivateFrom)
		if dfa.Accepts(seq) {
			accepting++
			if accepting > 1 {
				return true
			}
		}
	}
	return false
}
