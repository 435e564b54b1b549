package automaton

import (
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/render"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// Location selects which of the style's two layouts to build a DFA over
// (citations disambiguate independently of bibliography entries, §4.6).
type Location int

const (
	LocationCitation Location = iota
	LocationBibliography
)

// Build constructs the minimal DFA over ref's possible rendered edge
// sequences across every FreeCond the style distinguishes at loc (§4.5,
// §4.6). disambActivateFrom simulates the reference having already passed
// through N disambiguate="true" activations, for re-checking ambiguity
// progressively during internal/disambig pass 4.
func Build(st *style.Style, loc Location, ref *value.Reference, locSet *locale.Set, format outfmt.Format, disambActivateFrom int) *DFA {
	layout := layoutFor(st, loc)
	if layout == nil {
		return &DFA{n: buildFromSequences(nil)}
	}
	fcs := Enumerate(st, *layout)

	seqs := make([][]ir.EdgeData, 0, len(fcs))
	for _, fc := range fcs {
		arena := ir.NewArena()
		ctx := newRefContext(ref, fc, disambActivateFrom)
		s := render.NewState(arena, format, locSet, st, ref, ref.ID, ctx)
		root, _ := render.Layout(*layout, s)
		seqs = append(seqs, ir.EdgeSequence(arena, root))
	}

	return &DFA{n: minimizeDFA(seqs)}
}

func layoutFor(st *style.Style, loc Location) *style.Layout {
	if st == nil {
		return nil
	}
	switch loc {
	case LocationBibliography:
		if st.Bibliography == nil {
			return nil
		}
		return &st.Bibliography.Layout
	default:
		if st.Citation == nil {
			return nil
		}
		return &st.Citation.Layout
	}
}
