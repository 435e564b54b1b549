package engine

import (
	"strings"
	"testing"

	"github.com/csl-go/citeproc/internal/fixture"
	"github.com/csl-go/citeproc/internal/outfmt"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	st, err := fixture.LoadEmbeddedStyle("author-date")
	if err != nil {
		t.Fatalf("LoadEmbeddedStyle() error: %v", err)
	}
	locales, err := fixture.NewLocaleRegistry()
	if err != nil {
		t.Fatalf("NewLocaleRegistry() error: %v", err)
	}
	return NewProcessor(st, locales, "en", outfmt.Plain{})
}

func TestRenderClusterProducesIbidAndPositioned(t *testing.T) {
	p := newTestProcessor(t)
	refs, err := fixture.LoadReferences("../fixture/references/sample.yaml")
	if err != nil {
		t.Fatalf("LoadReferences() error: %v", err)
	}
	p.SetReferences(refs)

	clusters, err := fixture.LoadClusters("../fixture/clusters/sample.yaml")
	if err != nil {
		t.Fatalf("LoadClusters() error: %v", err)
	}
	entries := make([]ClusterOrderEntry, 0, len(clusters))
	for _, pc := range clusters {
		p.UpsertCluster(pc.Cluster)
		ordinal := pc.Number.Ordinal
		entries = append(entries, ClusterOrderEntry{ClusterID: pc.Cluster.ID, NoteNumber: &ordinal})
	}
	p.SetClusterOrder(entries)

	first, err := p.RenderCluster(1)
	if err != nil {
		t.Fatalf("RenderCluster(1) error: %v", err)
	}
	if !strings.Contains(first, "Smith") {
		t.Fatalf("first cite = %q, want it to contain the author", first)
	}

	second, err := p.RenderCluster(2)
	if err != nil {
		t.Fatalf("RenderCluster(2) error: %v", err)
	}
	if !strings.Contains(strings.ToLower(second), "ibid") {
		t.Fatalf("second cite (ibid position, same ref immediately repeated) = %q, want it to render ibid", second)
	}
}

func TestYearSuffixesAreDistinctAcrossClusters(t *testing.T) {
	p := newTestProcessor(t)
	refs, err := fixture.LoadReferences("../fixture/references/sample.yaml")
	if err != nil {
		t.Fatalf("LoadReferences() error: %v", err)
	}
	p.SetReferences(refs)

	clusters, err := fixture.LoadClusters("../fixture/clusters/sample.yaml")
	if err != nil {
		t.Fatalf("LoadClusters() error: %v", err)
	}
	entries := make([]ClusterOrderEntry, 0, len(clusters))
	for _, pc := range clusters {
		p.UpsertCluster(pc.Cluster)
		ordinal := pc.Number.Ordinal
		entries = append(entries, ClusterOrderEntry{ClusterID: pc.Cluster.ID, NoteNumber: &ordinal})
	}
	p.SetClusterOrder(entries)

	// Clusters 1 and 2 cite smith2020; cluster 3 cites the distinct
	// same-author, same-year smith2020b. Both must resolve to different
	// year-suffix letters even though each is rendered by a separate
	// RenderCluster call touching only its own cluster's cites.
	first, err := p.RenderCluster(1)
	if err != nil {
		t.Fatalf("RenderCluster(1) error: %v", err)
	}
	third, err := p.RenderCluster(3)
	if err != nil {
		t.Fatalf("RenderCluster(3) error: %v", err)
	}
	if !strings.Contains(first, "2020a") {
		t.Fatalf("RenderCluster(1) = %q, want it to contain 2020a", first)
	}
	if !strings.Contains(third, "2020b") {
		t.Fatalf("RenderCluster(3) = %q, want it to contain 2020b (distinct from cluster 1's 2020a)", third)
	}
}

func TestRenderBibliographyListsCitedReferencesSorted(t *testing.T) {
	p := newTestProcessor(t)
	refs, err := fixture.LoadReferences("../fixture/references/sample.yaml")
	if err != nil {
		t.Fatalf("LoadReferences() error: %v", err)
	}
	p.SetReferences(refs)

	clusters, err := fixture.LoadClusters("../fixture/clusters/sample.yaml")
	if err != nil {
		t.Fatalf("LoadClusters() error: %v", err)
	}
	for _, pc := range clusters {
		p.UpsertCluster(pc.Cluster)
	}

	entries, meta, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d bibliography entries, want 3 (smith2020, smith2020b, doe2019): %v", len(entries), entries)
	}
	if meta.HangingIndent != true {
		t.Fatalf("HangingIndent = false, want true per the author-date fixture style")
	}
}

func TestDiffReportsOnlyChangedClusters(t *testing.T) {
	p := newTestProcessor(t)
	refs, err := fixture.LoadReferences("../fixture/references/sample.yaml")
	if err != nil {
		t.Fatalf("LoadReferences() error: %v", err)
	}
	p.SetReferences(refs)

	clusters, err := fixture.LoadClusters("../fixture/clusters/sample.yaml")
	if err != nil {
		t.Fatalf("LoadClusters() error: %v", err)
	}
	for _, pc := range clusters {
		p.UpsertCluster(pc.Cluster)
	}
	for _, pc := range clusters {
		if _, err := p.RenderCluster(pc.Cluster.ID); err != nil {
			t.Fatalf("RenderCluster(%d) error: %v", pc.Cluster.ID, err)
		}
	}

	if diff := p.Diff(); len(diff) == 0 {
		t.Fatalf("Diff() on first call = %v, want every rendered cluster reported", diff)
	}
	if diff := p.Diff(); diff != nil {
		t.Fatalf("Diff() with no changes = %v, want nil", diff)
	}

	refs[0].Names["author"][0].Family = "Smythe"
	p.SetReference(refs[0])
	diff := p.Diff()
	if len(diff) == 0 {
		t.Fatalf("Diff() after a reference change = %v, want at least one changed cluster", diff)
	}
}

func TestPreviewCiteDoesNotMutateLiveState(t *testing.T) {
	p := newTestProcessor(t)
	refs, err := fixture.LoadReferences("../fixture/references/sample.yaml")
	if err != nil {
		t.Fatalf("LoadReferences() error: %v", err)
	}
	p.SetReferences(refs)

	clusters, err := fixture.LoadClusters("../fixture/clusters/sample.yaml")
	if err != nil {
		t.Fatalf("LoadClusters() error: %v", err)
	}
	for _, pc := range clusters {
		p.UpsertCluster(pc.Cluster)
	}

	before, err := p.RenderCluster(1)
	if err != nil {
		t.Fatalf("RenderCluster(1) error: %v", err)
	}

	preview, err := p.PreviewCite(clusters[1].Cluster, 0)
	if err != nil {
		t.Fatalf("PreviewCite() error: %v", err)
	}
	if preview == "" {
		t.Fatalf("PreviewCite() returned empty output")
	}

	after, err := p.RenderCluster(1)
	if err != nil {
		t.Fatalf("RenderCluster(1) error: %v", err)
	}
	if before != after {
		t.Fatalf("RenderCluster(1) changed after PreviewCite: before=%q after=%q", before, after)
	}
	if len(p.orderedIDs) != len(clusters) {
		t.Fatalf("PreviewCite mutated live cluster order: %v", p.orderedIDs)
	}
}
