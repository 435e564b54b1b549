package render

import (
	"testing"

	"github.com/csl-go/citeproc/internal/cond"
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

func newTestState(ref *value.Reference) (*State, *ir.Arena) {
	arena := ir.NewArena()
	loc := &locale.Set{}
	st := &style.Style{DefaultLocale: "en-US"}
	ctx := &cond.CiteContext{Ref: ref}
	s := NewState(arena, outfmt.Plain{}, loc, st, ref, ref.ID, ctx)
	return s, arena
}

func TestRenderTextVariable(t *testing.T) {
	ref := value.NewReference("r1", "book")
	ref.Ordinary["title"] = "A Study in Scarlet"
	s, arena := newTestState(ref)

	el := style.Element{Kind: style.ElemText, Variable: "title"}
	idx, gv := Element(el, s)
	if gv != ir.Important {
		t.Fatalf("gv = %v, want Important", gv)
	}
	edges := ir.EdgeSequence(arena, idx)
	if len(edges) != 1 || edges[0].Output != "A Study in Scarlet" {
		t.Fatalf("edges = %+v", edges)
	}
}

func TestRenderTextVariableMissing(t *testing.T) {
	ref := value.NewReference("r1", "book")
	s, arena := newTestState(ref)

	el := style.Element{Kind: style.ElemText, Variable: "title"}
	idx, gv := Element(el, s)
	if gv != ir.Missing {
		t.Fatalf("gv = %v, want Missing", gv)
	}
	if edges := ir.EdgeSequence(arena, idx); len(edges) != 0 {
		t.Fatalf("edges = %+v, want none", edges)
	}
}

func TestRenderGroupSuppressedWhenAllMissing(t *testing.T) {
	ref := value.NewReference("r1", "book")
	s, arena := newTestState(ref)

	el := style.Element{
		Kind:      style.ElemGroup,
		Delimiter: " ",
		Children: []style.Element{
			{Kind: style.ElemText, Variable: "volume"},
			{Kind: style.ElemText, Variable: "issue"},
		},
	}
	idx, gv := Element(el, s)
	if gv != ir.Missing {
		t.Fatalf("gv = %v, want Missing", gv)
	}
	if edges := ir.EdgeSequence(arena, idx); len(edges) != 0 {
		t.Fatalf("edges = %+v, want none (group suppressed)", edges)
	}
}

func TestRenderGroupRendersWhenOneVariablePresent(t *testing.T) {
	ref := value.NewReference("r1", "book")
	ref.Ordinary["volume"] = "" // absent on purpose
	s, arena := newTestState(ref)
	ref.Number["volume"] = value.ParseNumeric("2")

	el := style.Element{
		Kind:      style.ElemGroup,
		Delimiter: " ",
		Children: []style.Element{
			{Kind: style.ElemNumber, NumberVariable: "volume"},
			{Kind: style.ElemText, Variable: "nonexistent"},
		},
	}
	idx, gv := Element(el, s)
	if gv != ir.Important {
		t.Fatalf("gv = %v, want Important", gv)
	}
	edges := ir.EdgeSequence(arena, idx)
	if len(edges) != 1 || edges[0].Output != "2" {
		t.Fatalf("edges = %+v", edges)
	}
}

func TestRenderChooseElseBranch(t *testing.T) {
	ref := value.NewReference("r1", "book")
	s, arena := newTestState(ref)

	el := style.Element{
		Kind: style.ElemChoose,
		Branches: []style.Branch{
			{
				Conditions: style.Conditions{
					Match: style.MatchAll,
					CondSets: []style.CondSet{{
						Match: style.MatchAll,
						Prims: []style.Prim{{Kind: style.CondType, Types: []string{"article-journal"}}},
					}},
				},
				Elements: []style.Element{{Kind: style.ElemText, Value: "journal"}},
			},
			{
				IsElse:   true,
				Elements: []style.Element{{Kind: style.ElemText, Value: "other"}},
			},
		},
	}
	idx, _ := Element(el, s)
	edges := ir.EdgeSequence(arena, idx)
	if len(edges) != 1 || edges[0].Output != "other" {
		t.Fatalf("edges = %+v, want other", edges)
	}
}

func TestFormatPersonNameInitialize(t *testing.T) {
	n := value.Name{Given: "Jean-Paul", Family: "Sartre"}
	settings := ir.NameSettings{Initialize: true, InitializeWithHyphen: true}
	got := formatPersonName(n, settings, ir.GivenNameInitialsOnly)
	want := "J.-P. Sartre"
	if got != want {
		t.Fatalf("formatPersonName() = %q, want %q", got, want)
	}
}

func TestJoinNamesContextualDelimiter(t *testing.T) {
	settings := ir.NameSettings{Delimiter: ", ", And: "text", DelimiterPrecedesLast: "contextual"}
	got := joinNames([]string{"A", "B", "C"}, settings)
	want := "A, B, and C"
	if got != want {
		t.Fatalf("joinNames() = %q, want %q", got, want)
	}
	got2 := joinNames([]string{"A", "B"}, settings)
	want2 := "A and B"
	if got2 != want2 {
		t.Fatalf("joinNames(two) = %q, want %q", got2, want2)
	}
}
