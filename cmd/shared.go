package cmd

import (
	"fmt"
	"sort"

	"github.com/csl-go/citeproc/internal/engine"
	"github.com/csl-go/citeproc/internal/fixture"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
)

// sharedFlags are the flags every subcommand needs to stand up a Processor.
type sharedFlags struct {
	stylePath    string
	refsPath     string
	clustersPath string
	locale       string
	format       string
	localeDir    string
}

// buildProcessor loads the style, locale bundles, references, and clusters a
// sharedFlags set names, wiring them into a new engine.Processor (§6).
func buildProcessor(f sharedFlags) (*engine.Processor, error) {
	st, err := loadStyle(f.stylePath)
	if err != nil {
		return nil, fmt.Errorf("load style: %w", err)
	}

	registry, err := fixture.NewLocaleRegistry()
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	if f.localeDir != "" {
		if err := registry.LoadLocaleFile(f.localeDir); err != nil {
			return nil, fmt.Errorf("load locale file: %w", err)
		}
	}

	var fmtr outfmt.Format
	switch f.format {
	case "", "plain":
		fmtr = outfmt.Plain{}
	case "html":
		fmtr = outfmt.MicroHTML{}
	default:
		return nil, fmt.Errorf("unknown output format %q (want plain or html)", f.format)
	}

	lang := f.locale
	if lang == "" {
		lang = st.DefaultLocale
	}
	if lang == "" {
		lang = "en"
	}

	p := engine.NewProcessor(st, registry, lang, fmtr)

	refs, err := fixture.LoadReferences(f.refsPath)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}
	p.SetReferences(refs)

	clusters, err := fixture.LoadClusters(f.clustersPath)
	if err != nil {
		return nil, fmt.Errorf("load clusters: %w", err)
	}
	entries := make([]engine.ClusterOrderEntry, 0, len(clusters))
	for _, pc := range clusters {
		p.UpsertCluster(pc.Cluster)
		ordinal := pc.Number.Ordinal
		entries = append(entries, engine.ClusterOrderEntry{ClusterID: pc.Cluster.ID, NoteNumber: &ordinal})
	}
	p.SetClusterOrder(entries)

	return p, nil
}

func uncitedAllMode() engine.UncitedMode { return engine.UncitedAll }

// loadClusterIDsInOrder returns the cluster ids named at path sorted into
// document order, for a CLI command walking the whole cluster stream.
func loadClusterIDsInOrder(path string) ([]int, error) {
	clusters, err := fixture.LoadClusters(path)
	if err != nil {
		return nil, fmt.Errorf("load clusters: %w", err)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Number.Less(clusters[j].Number) })
	ids := make([]int, len(clusters))
	for i, pc := range clusters {
		ids[i] = pc.Cluster.ID
	}
	return ids, nil
}

// loadStyle accepts either a path to a style YAML file on disk or the bare
// name of one of the bundled fixture styles (e.g. "author-date").
func loadStyle(path string) (*style.Style, error) {
	if st, err := fixture.LoadEmbeddedStyle(path); err == nil {
		return st, nil
	}
	return fixture.LoadStyle(path)
}
