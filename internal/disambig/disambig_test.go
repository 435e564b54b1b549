package disambig

import (
	"testing"

	"github.com/csl-go/citeproc/internal/automaton"
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

func TestYearSuffixLetterSequence(t *testing.T) {
	cases := map[int]string{0: "a", 1: "b", 25: "z", 26: "aa", 27: "ab", 51: "az", 52: "ba"}
	for i, want := range cases {
		if got := YearSuffixLetter(i); got != want {
			t.Fatalf("YearSuffixLetter(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestWidenGivenNamesDefaultExpandsAll(t *testing.T) {
	n := &ir.NameIR{Names: []value.Name{{Family: "Smith"}, {Family: "Jones"}}}
	widenGivenNames(n, int(style.AllNames))
	if n.GivenLevel != ir.GivenNameFull {
		t.Fatalf("GivenLevel = %v, want GivenNameFull", n.GivenLevel)
	}
}

func TestWidenGivenNamesPrimaryOnlyTouchesFirst(t *testing.T) {
	n := &ir.NameIR{Names: []value.Name{{Family: "Smith"}, {Family: "Jones"}}}
	widenGivenNames(n, int(style.PrimaryName))
	if n.PerNameGiven == nil || n.PerNameGiven[0] != ir.GivenNameFull {
		t.Fatalf("PerNameGiven[0] not widened: %v", n.PerNameGiven)
	}
	if n.PerNameGiven[1] != ir.GivenNameNone {
		t.Fatalf("PerNameGiven[1] should stay untouched: %v", n.PerNameGiven)
	}
}

func titleOnlyStyle() *style.Style {
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

func TestAmbiguousSetDetectsSharedRenderedOutput(t *testing.T) {
	st := titleOnlyStyle()
	locSet := &locale.Set{}
	format := outfmt.Plain{}
	store := value.NewStore()

	a := value.NewReference("a", "book")
	a.Ordinary["title"] = "Same Title"
	b := value.NewReference("b", "book")
	b.Ordinary["title"] = "Same Title"
	store.Set(a)
	store.Set(b)

	arena := ir.NewArena()
	idx := arena.Alloc(ir.Node{Kind: ir.KindRendered, Edge: &ir.EdgeData{Kind: ir.EdgeOutput, Output: "Same Title"}, Vars: ir.Important})

	driver := &Driver{Style: st, Store: store, Locale: locSet, Format: format, Loc: automaton.LocationCitation}
	c := &Cite{RefID: "a", Arena: arena, Root: idx}

	if !driver.isAmbiguous(c) {
		t.Fatalf("isAmbiguous() = false, want true (both references render identically)")
	}
}

func TestAmbiguousSetResolvedByDistinctOutput(t *testing.T) {
	st := titleOnlyStyle()
	locSet := &locale.Set{}
	format := outfmt.Plain{}
	store := value.NewStore()

	a := value.NewReference("a", "book")
	a.Ordinary["title"] = "Alpha"
	b := value.NewReference("b", "book")
	b.Ordinary["title"] = "Beta"
	store.Set(a)
	store.Set(b)

	arena := ir.NewArena()
	idx := arena.Alloc(ir.Node{Kind: ir.KindRendered, Edge: &ir.EdgeData{Kind: ir.EdgeOutput, Output: "Alpha"}, Vars: ir.Important})

	driver := &Driver{Style: st, Store: store, Locale: locSet, Format: format, Loc: automaton.LocationCitation}
	c := &Cite{RefID: "a", Arena: arena, Root: idx}

	if driver.isAmbiguous(c) {
		t.Fatalf("isAmbiguous() = true, want false (titles differ)")
	}
}
