package automaton

import (
	"testing"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

func titleStyle() *style.Style {
	return &style.Style{
		Citation: &style.Citation{
			Layout: style.Layout{
				Elements: []style.Element{
					{Kind: style.ElemText, Variable: "title"},
				},
			},
		},
	}
}

func TestDFAAcceptsOwnSequenceRejectsOther(t *testing.T) {
	st := titleStyle()
	locSet := &locale.Set{}
	format := outfmt.Plain{}

	smith := value.NewReference("smith2000", "book")
	smith.Ordinary["title"] = "Alpha"
	jones := value.NewReference("jones1999", "book")
	jones.Ordinary["title"] = "Beta"

	dfaSmith := Build(st, LocationCitation, smith, locSet, format, 0)
	dfaJones := Build(st, LocationCitation, jones, locSet, format, 0)

	smithSeq := []ir.EdgeData{{Kind: ir.EdgeOutput, Output: "Alpha"}}
	jonesSeq := []ir.EdgeData{{Kind: ir.EdgeOutput, Output: "Beta"}}

	if !dfaSmith.Accepts(smithSeq) {
		t.Fatalf("dfaSmith should accept its own sequence")
	}
	if dfaSmith.Accepts(jonesSeq) {
		t.Fatalf("dfaSmith should not accept jones's sequence")
	}
	if !dfaJones.Accepts(jonesSeq) {
		t.Fatalf("dfaJones should accept its own sequence")
	}
	if dfaJones.Accepts(smithSeq) {
		t.Fatalf("dfaJones should not accept smith's sequence")
	}
}

func TestEnumerateDetectsPositionAxis(t *testing.T) {
	st := &style.Style{
		Citation: &style.Citation{
			Layout: style.Layout{
				Elements: []style.Element{
					{
						Kind: style.ElemChoose,
						Branches: []style.Branch{
							{
								Conditions: style.Conditions{
									Match: style.MatchAll,
									CondSets: []style.CondSet{
										{Match: style.MatchAny, Prims: []style.Prim{{Kind: style.CondPosition, Position: "ibid"}}},
									},
								},
								Elements: []style.Element{{Kind: style.ElemText, Value: "ibid."}},
							},
							{IsElse: true, Elements: []style.Element{{Kind: style.ElemText, Variable: "title"}}},
						},
					},
				},
			},
		},
	}

	fcs := Enumerate(st, st.Citation.Layout)
	seenFirst, seenIbid := false, false
	for _, fc := range fcs {
		if fc&FCPosFirst != 0 {
			seenFirst = true
		}
		if fc&FCPosIbid != 0 {
			seenIbid = true
		}
	}
	if !seenFirst || !seenIbid {
		t.Fatalf("Enumerate() = %v, want both first and ibid positions represented", fcs)
	}
}

func TestBuildDistinguishesPositionBranch(t *testing.T) {
	st := &style.Style{
		Citation: &style.Citation{
			Layout: style.Layout{
				Elements: []style.Element{
					{
						Kind: style.ElemChoose,
						Branches: []style.Branch{
							{
								Conditions: style.Conditions{
									Match: style.MatchAll,
									CondSets: []style.CondSet{
										{Match: style.MatchAny, Prims: []style.Prim{{Kind: style.CondPosition, Position: "ibid"}}},
									},
								},
								Elements: []style.Element{{Kind: style.ElemText, Value: "ibid."}},
							},
							{IsElse: true, Elements: []style.Element{{Kind: style.ElemText, Variable: "title"}}},
						},
					},
				},
			},
		},
	}
	locSet := &locale.Set{}
	format := outfmt.Plain{}
	ref := value.NewReference("smith2000", "book")
	ref.Ordinary["title"] = "Alpha"

	dfa := Build(st, LocationCitation, ref, locSet, format, 0)

	ibidSeq := []ir.EdgeData{{Kind: ir.EdgeOutput, Output: "ibid."}}
	titleSeq := []ir.EdgeData{{Kind: ir.EdgeOutput, Output: "Alpha"}}
	if !dfa.Accepts(ibidSeq) {
		t.Fatalf("dfa should accept the ibid branch output")
	}
	if !dfa.Accepts(titleSeq) {
		t.Fatalf("dfa should accept the title branch output")
	}
}
