package cluster

import (
	"testing"

	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

func refWithAuthorYear(id, family string, year int) *value.Reference {
	r := value.NewReference(id, "book")
	r.Names["author"] = []value.Name{{Family: family}}
	r.Dates["issued"] = value.DateOrRange{Single: &value.Date{Year: year}}
	return r
}

func TestSortReferencesOrdersByAuthorThenYear(t *testing.T) {
	refs := []*value.Reference{
		refWithAuthorYear("c", "Zeta", 2001),
		refWithAuthorYear("a", "Alpha", 2010),
		refWithAuthorYear("b", "Alpha", 1999),
	}
	SortReferences(refs, []style.SortKey{
		{Variable: "author", Ascending: true},
		{Variable: "issued", Ascending: true},
	}, "en")

	want := []string{"b", "a", "c"}
	for i, id := range want {
		if refs[i].ID != id {
			t.Fatalf("refs[%d].ID = %q, want %q (order: %v)", i, refs[i].ID, id, ids(refs))
		}
	}
}

func TestSortReferencesOrdersNegativeYearsNumerically(t *testing.T) {
	refs := []*value.Reference{
		refWithAuthorYear("a", "Author", -50),
		refWithAuthorYear("b", "Author", -100),
		refWithAuthorYear("c", "Author", 10),
	}
	SortReferences(refs, []style.SortKey{{Variable: "issued", Ascending: true}}, "en")

	want := []string{"b", "a", "c"}
	for i, id := range want {
		if refs[i].ID != id {
			t.Fatalf("refs[%d].ID = %q, want %q (order: %v)", i, refs[i].ID, id, ids(refs))
		}
	}
}

func TestSortReferencesDescending(t *testing.T) {
	refs := []*value.Reference{
		refWithAuthorYear("a", "Alpha", 2000),
		refWithAuthorYear("b", "Beta", 2000),
	}
	SortReferences(refs, []style.SortKey{{Variable: "author", Ascending: false}}, "en")
	if refs[0].ID != "b" || refs[1].ID != "a" {
		t.Fatalf("descending sort order = %v, want [b a]", ids(refs))
	}
}

func ids(refs []*value.Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}
