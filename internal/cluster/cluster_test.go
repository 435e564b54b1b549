package cluster

import (
	"testing"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

func buildCiteTree(refID, author, year string) CiteTree {
	a := ir.NewArena()
	nameIdx := a.Alloc(ir.Node{
		Kind: ir.KindName,
		Vars: ir.Important,
		Name: &ir.NameIR{
			RefID:              refID,
			RenderedEdgesCache: []ir.EdgeData{{Kind: ir.EdgeOutput, Output: author}},
		},
	})
	yearIdx := a.Alloc(ir.Node{
		Kind: ir.KindRendered,
		Vars: ir.Important,
		Edge: &ir.EdgeData{Kind: ir.EdgeOutput, Output: year},
	})
	rootIdx := a.Alloc(ir.Node{
		Kind: ir.KindSeq,
		Vars: ir.Important,
		Seq:  &ir.SeqNode{Children: []ir.NodeIndex{nameIdx, yearIdx}, Delimiter: " "},
	})
	return CiteTree{RefID: refID, Tree: &ir.Tree{Arena: a, Root: rootIdx}, AuthorKey: author}
}

func TestCollapseNoneKeepsRepeatedAuthor(t *testing.T) {
	cites := []CiteTree{
		buildCiteTree("smith2000", "Smith", "2000"),
		buildCiteTree("smith2001", "Smith", "2001"),
	}
	Collapse(cites, style.CollapseNone)
	got := Assemble(cites, nil, style.CollapseNone, "; ", "(", ")", outfmt.Plain{}, "en")
	if got != "(Smith 2000; Smith 2001)" {
		t.Fatalf("Assemble() = %q", got)
	}
}

func TestCollapseYearAppliesSuppression(t *testing.T) {
	cites := RegroupByAuthor([]CiteTree{
		buildCiteTree("smith2000", "Smith", "2000"),
		buildCiteTree("smith2001", "Smith", "2001"),
	})
	Collapse(cites, style.CollapseYear)
	got := Assemble(cites, nil, style.CollapseYear, "; ", "(", ")", outfmt.Plain{}, "en")
	if got != "(Smith 2000; 2001)" {
		t.Fatalf("Assemble() = %q", got)
	}
}

func TestRegroupByAuthorRotatesNonAdjacentSameAuthor(t *testing.T) {
	cites := RegroupByAuthor([]CiteTree{
		buildCiteTree("smith2000", "Smith", "2000"),
		buildCiteTree("jones1999", "Jones", "1999"),
		buildCiteTree("smith2001", "Smith", "2001"),
	})
	var order []string
	for _, c := range cites {
		order = append(order, c.RefID)
	}
	if order[0] != "smith2000" || order[1] != "smith2001" || order[2] != "jones1999" {
		t.Fatalf("RegroupByAuthor() order = %v", order)
	}
	if !cites[1].ShouldCollapse {
		t.Fatalf("RegroupByAuthor() rotated smith2001 not marked ShouldCollapse")
	}
	if cites[0].ShouldCollapse || cites[2].ShouldCollapse {
		t.Fatalf("RegroupByAuthor() marked a non-rotated cite ShouldCollapse")
	}
}

func TestRegroupByAuthorBlockedByAffix(t *testing.T) {
	jones := buildCiteTree("jones1999", "Jones", "1999")
	jones.HasAffix = true
	cites := RegroupByAuthor([]CiteTree{
		buildCiteTree("smith2000", "Smith", "2000"),
		jones,
		buildCiteTree("smith2001", "Smith", "2001"),
	})
	var order []string
	for _, c := range cites {
		order = append(order, c.RefID)
	}
	if order[0] != "smith2000" || order[1] != "jones1999" || order[2] != "smith2001" {
		t.Fatalf("RegroupByAuthor() should not rotate past an affixed cite, got %v", order)
	}
	if cites[2].ShouldCollapse {
		t.Fatalf("RegroupByAuthor() marked smith2001 ShouldCollapse despite the blocking affix")
	}
}

func TestCollapseCitationNumbersCompressesRuns(t *testing.T) {
	got := CollapseCitationNumbers([]int{1, 2, 3, 5, 7, 8, 9})
	want := "1–3, 5, 7–9"
	if got != want {
		t.Fatalf("CollapseCitationNumbers() = %q, want %q", got, want)
	}
}

func TestAssembleCollapsesCitationNumbers(t *testing.T) {
	cites := []CiteTree{
		buildCiteTree("ref3", "", ""),
		buildCiteTree("ref4", "", ""),
		buildCiteTree("ref5", "", ""),
		buildCiteTree("ref9", "", ""),
	}
	for i := range cites {
		cites[i].HasCiteNumber = true
	}
	cites[0].CitationNumber = 3
	cites[1].CitationNumber = 4
	cites[2].CitationNumber = 5
	cites[3].CitationNumber = 9

	got := Assemble(cites, nil, style.CollapseCitationNumber, ", ", "", "", outfmt.Plain{}, "en")
	if got != "3–5, 9" {
		t.Fatalf("Assemble() = %q", got)
	}
}

func TestAssembleCompositeInfix(t *testing.T) {
	cites := []CiteTree{
		buildCiteTree("smith2000", "Smith", ""),
		buildCiteTree("smith2000b", "", "2000"),
	}
	mode := &value.ClusterModeSpec{Kind: value.ClusterComposite, CompositeInfix: ", "}
	got := Assemble(cites, mode, style.CollapseNone, "; ", "", "", outfmt.Plain{}, "en")
	if got != "Smith, 2000" {
		t.Fatalf("Assemble() = %q", got)
	}
}
