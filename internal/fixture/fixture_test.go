package fixture

import (
	"testing"

	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

func TestNewLocaleRegistryLoadsEmbeddedBundles(t *testing.T) {
	r, err := NewLocaleRegistry()
	if err != nil {
		t.Fatalf("NewLocaleRegistry() error: %v", err)
	}
	en, ok := r.Fetch("en")
	if !ok {
		t.Fatalf("Fetch(\"en\") not found")
	}
	if en.Terms["et-al"]["long"].Singular != "et al." {
		t.Fatalf("et-al term = %q, want %q", en.Terms["et-al"]["long"].Singular, "et al.")
	}
	if en.OrdinalTerms["1"] != "st" {
		t.Fatalf("ordinal 1 = %q, want st", en.OrdinalTerms["1"])
	}

	enUS, ok := r.Fetch("en-US")
	if !ok {
		t.Fatalf("Fetch(\"en-US\") not found")
	}
	if !enUS.PunctuationInQuote {
		t.Fatalf("en-US PunctuationInQuote = false, want true")
	}
}

func TestLoadEmbeddedStyleParsesAuthorDate(t *testing.T) {
	st, err := LoadEmbeddedStyle("author-date")
	if err != nil {
		t.Fatalf("LoadEmbeddedStyle() error: %v", err)
	}
	if st.Citation == nil || st.Bibliography == nil {
		t.Fatalf("expected both citation and bibliography blocks")
	}
	if st.Citation.Collapse != style.CollapseYear {
		t.Fatalf("Collapse = %v, want CollapseYear", st.Citation.Collapse)
	}
	if len(st.Citation.Layout.Elements) != 1 || st.Citation.Layout.Elements[0].Kind != style.ElemChoose {
		t.Fatalf("expected a single top-level choose element")
	}
	author, ok := st.Macros["author"]
	if !ok || len(author) == 0 {
		t.Fatalf("expected an \"author\" macro")
	}
	if author[0].Kind != style.ElemNames || author[0].NameOptions.EtAlMin != 4 {
		t.Fatalf("author macro not parsed as expected: %+v", author[0])
	}
}

func TestParseReferencesRoundTripsDatesAndNames(t *testing.T) {
	refs, err := parseReferences([]byte(`
- id: r1
  type: book
  names:
    author:
      - family: Smith
        given: Jane
  dates:
    issued:
      raw: "2020-03"
  number:
    volume: "2nd"
`))
	if err != nil {
		t.Fatalf("parseReferences() error: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("got %d references, want 1", len(refs))
	}
	r := refs[0]
	if r.ID != "r1" || r.Type != "book" {
		t.Fatalf("unexpected id/type: %+v", r)
	}
	names, ok := r.NameVariable("author")
	if !ok || len(names) != 1 || names[0].Family != "Smith" {
		t.Fatalf("author names not parsed: %+v", names)
	}
	d, ok := r.DateVariable("issued")
	if !ok || d.Single == nil || d.Single.Year != 2020 || d.Single.Month != 3 {
		t.Fatalf("issued date not parsed: %+v", d)
	}
	vol, ok := r.NumberVariable("volume")
	if !ok || !vol.IsNumeric() {
		t.Fatalf("volume not parsed as numeric: %+v", vol)
	}
}

func TestParseClustersRoundTripsModeAndLocator(t *testing.T) {
	clusters, err := parseClusters([]byte(`
- id: 1
  placement: note
  ordinal: 4
  cites:
    - ref-id: r1
      locator:
        type: page
        value: "10-12"
  mode:
    kind: suppress-author
`))
	if err != nil {
		t.Fatalf("parseClusters() error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	pc := clusters[0]
	if pc.Number.Placement != value.PlacementNote || pc.Number.Ordinal != 4 {
		t.Fatalf("unexpected cluster number: %+v", pc.Number)
	}
	if pc.Cluster.Mode == nil || pc.Cluster.Mode.Kind != value.ClusterSuppressAuthor {
		t.Fatalf("unexpected cluster mode: %+v", pc.Cluster.Mode)
	}
	if len(pc.Cluster.Cites) != 1 || pc.Cluster.Cites[0].Locator == nil || !pc.Cluster.Cites[0].Locator.IsPage() {
		t.Fatalf("unexpected cite/locator: %+v", pc.Cluster.Cites)
	}
}
