// Package engine wires the memoization substrate (internal/memo) to the
// public operations the core exposes (§6): set/replace references, cluster
// CRUD, note numbers, uncited set, render cluster/bibliography, diff, and
// preview-cite. It is the one package that owns a position.Tracker, runs
// disambig.Driver, and calls cluster.Collapse/Assemble per cluster.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/csl-go/citeproc/internal/automaton"
	"github.com/csl-go/citeproc/internal/cluster"
	"github.com/csl-go/citeproc/internal/cond"
	"github.com/csl-go/citeproc/internal/disambig"
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/memo"
	"github.com/csl-go/citeproc/internal/numfmt"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/position"
	"github.com/csl-go/citeproc/internal/render"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// ProcessorError is a boundary error: style-load, locale-fetch, and
// reference-ingest failures (§6, §7), never a rendering failure (rendering
// degrades to absence and cannot fail).
type ProcessorError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *ProcessorError) Unwrap() error { return e.Cause }

// UncitedMode selects which references beyond those actually cited appear
// in the bibliography (§6 "set the uncited set").
type UncitedMode int

const (
	UncitedNone UncitedMode = iota
	UncitedAll
	UncitedSpecific
)

// BibliographyMetadata accompanies the rendered bibliography entries (§6).
type BibliographyMetadata struct {
	MaxOffset        int
	EntrySpacing     int
	LineSpacing      int
	HangingIndent    bool
	SecondFieldAlign string // "", "flush", "margin"
}

// Processor is the long-lived core instance a client drives through the §6
// operations. It owns the reference store, the cluster list in document
// order, and the memoized per-cluster render cache.
type Processor struct {
	style  *style.Style
	locale *locale.Set
	format outfmt.Format

	db          *memo.Database
	refsInput   *memo.Input[*value.Store]
	renderCache *memo.Query[int, string]

	clusters      map[int]*value.Cluster
	order         []value.ClusterNumber // order[i] is orderedIDs[i]'s document position
	orderedIDs    []int
	clusterIDSeen map[int]bool

	uncitedMode UncitedMode
	uncitedIDs  map[string]bool

	lastDiffRevision memo.Revision
	lastRendered     map[int]string
}

// NewProcessor constructs a Processor for one style/locale/output-format
// combination (§6 inputs: style, locale). localeLang selects the requested
// language from fetcher's fallback chain (§6: "fall-back en->en-US and
// region->bare-language").
func NewProcessor(st *style.Style, fetcher locale.Fetcher, localeLang string, format outfmt.Format) *Processor {
	db := memo.NewDatabase()
	p := &Processor{
		style:         st,
		locale:        locale.Resolve(fetcher, localeLang),
		format:        format,
		db:            db,
		refsInput:     memo.NewInput[*value.Store](db, value.NewStore()),
		clusters:      make(map[int]*value.Cluster),
		clusterIDSeen: make(map[int]bool),
		uncitedIDs:    make(map[string]bool),
		lastRendered:  make(map[int]string),
	}
	p.renderCache = memo.NewQuery(db, p.renderClusterUncached)
	return p
}

// SetReferences replaces the entire reference store in one call (§6
// "set/replace references"). A cite whose reference id is no longer in the
// store is left out of its cluster's output, with a warning logged, the next
// time the cluster is rendered; no placeholder text is emitted for it.
func (p *Processor) SetReferences(refs []*value.Reference) {
	store := value.NewStore()
	for _, r := range refs {
		store.Set(r)
	}
	p.refsInput.Set(store)
	p.renderCache.InvalidateAll()
	slog.Debug("references replaced", "count", len(refs))
}

// SetReference inserts or replaces a single reference by id (§6).
func (p *Processor) SetReference(ref *value.Reference) {
	store := p.refsInput.Get()
	store.Set(ref)
	p.refsInput.Set(store)
	p.renderCache.InvalidateAll()
	slog.Debug("reference set", "id", ref.ID)
}

// SetUncited configures which references beyond the actually-cited set
// appear in the bibliography (§6). ids is only consulted when mode ==
// UncitedSpecific.
func (p *Processor) SetUncited(mode UncitedMode, ids []string) {
	p.uncitedMode = mode
	p.uncitedIDs = make(map[string]bool, len(ids))
	for _, id := range ids {
		p.uncitedIDs[id] = true
	}
}

// UpsertCluster inserts or replaces a cluster's content, keeping its current
// document position if it already had one (§6 "insert, update ... clusters").
func (p *Processor) UpsertCluster(c *value.Cluster) {
	p.clusters[c.ID] = c
	if !p.clusterIDSeen[c.ID] {
		p.clusterIDSeen[c.ID] = true
		p.orderedIDs = append(p.orderedIDs, c.ID)
		p.order = append(p.order, value.ClusterNumber{Placement: value.PlacementInText, Ordinal: len(p.orderedIDs)})
	}
	p.renderCache.Invalidate(c.ID)
}

// RemoveCluster deletes a cluster and its position (§6 "remove ... clusters").
func (p *Processor) RemoveCluster(id int) {
	delete(p.clusters, id)
	delete(p.clusterIDSeen, id)
	p.renderCache.Invalidate(id)
	for i, oid := range p.orderedIDs {
		if oid == id {
			p.orderedIDs = append(p.orderedIDs[:i], p.orderedIDs[i+1:]...)
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// SetClusterOrder reorders the document and assigns note numbers in one
// call (§6: "a separate call sets the order of clusters ... by providing a
// list of (cluster_id, Option<note_number>)"). A nil noteNumber entry means
// in-text placement; a non-nil one means note placement at that number.
func (p *Processor) SetClusterOrder(entries []ClusterOrderEntry) {
	p.orderedIDs = p.orderedIDs[:0]
	p.order = p.order[:0]
	for i, e := range entries {
		p.orderedIDs = append(p.orderedIDs, e.ClusterID)
		if e.NoteNumber != nil {
			p.order = append(p.order, value.ClusterNumber{Placement: value.PlacementNote, Ordinal: *e.NoteNumber})
		} else {
			p.order = append(p.order, value.ClusterNumber{Placement: value.PlacementInText, Ordinal: i + 1})
		}
	}
	p.renderCache.InvalidateAll()
}

// ClusterOrderEntry is one entry of the list SetClusterOrder accepts (§6).
type ClusterOrderEntry struct {
	ClusterID  int
	NoteNumber *int
}

// RenderCluster requests the rendered build for one cluster (§6 "request
// the rendered output for one cluster"), memoized until the references or
// document order change.
func (p *Processor) RenderCluster(id int) (string, error) {
	if _, ok := p.clusters[id]; !ok {
		return "", &ProcessorError{Stage: "render-cluster", Message: fmt.Sprintf("unknown cluster id %d", id)}
	}
	out := p.renderCache.Get(id)
	return out, nil
}

func (p *Processor) renderClusterUncached(id int) string {
	pos := p.positionsUpTo(id)
	c := p.clusters[id]
	if c == nil {
		return ""
	}
	return p.renderClusterTrees(c, pos[id])
}

// positionsUpTo computes every cite's position through document order up to
// and including clusterID, returning the per-cluster CitePosition lists
// (§4.7: "Clusters must be fed in increasing ClusterNumber order").
func (p *Processor) positionsUpTo(clusterID int) map[int][]value.CitePosition {
	sorted := p.sortedOrder()
	tracker := position.NewTracker(p.style.EffectiveNearNoteDistance())
	out := make(map[int][]value.CitePosition)
	for _, s := range sorted {
		c := p.clusters[s.id]
		if c == nil {
			continue
		}
		var positions []value.CitePosition
		for _, cite := range c.Cites {
			positions = append(positions, tracker.Resolve(cite.RefID, cite.Locator, s.number.Placement, s.number.Ordinal))
		}
		out[s.id] = positions
		if s.id == clusterID {
			break
		}
	}
	return out
}

type orderedCluster struct {
	id     int
	number value.ClusterNumber
}

func (p *Processor) sortedOrder() []orderedCluster {
	out := make([]orderedCluster, len(p.orderedIDs))
	for i, id := range p.orderedIDs {
		out[i] = orderedCluster{id: id, number: p.order[i]}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number.Less(out[j].number) })
	return out
}

func (p *Processor) renderClusterTrees(c *value.Cluster, positions []value.CitePosition) string {
	store := p.refsInput.Get()
	layout := &p.style.Citation.Layout
	trees := make([]cluster.CiteTree, 0, len(c.Cites))
	disambCites := make([]*disambig.Cite, 0, len(c.Cites))
	citationNumbers := p.citationNumberAssignment(store)

	for i, cite := range c.Cites {
		ref, ok := store.Get(cite.RefID)
		if !ok {
			slog.Warn("cite refers to unknown reference", "ref_id", cite.RefID)
			continue
		}
		var pos value.CitePosition
		if i < len(positions) {
			pos = positions[i]
		}
		ctx := &cond.CiteContext{Ref: ref, Pos: pos.Position, PosKnown: true, Loc: cite.Locator}
		arena := ir.NewArena()
		s := render.NewState(arena, p.format, p.locale, p.style, ref, ref.ID, ctx)
		s.PageRangeFormat = pageRangeFormatFor(p.style)
		if cite.Locator != nil {
			s.LocatorText = numfmt.Format(cite.Locator.Value, numfmt.Numeric, string(cite.Locator.Type), s.PageRangeFormat, p.locale)
			s.LocatorPlural = cite.Locator.Value.NumTokenCount() > 1
		}
		root, _ := render.Layout(*layout, s)

		num, hasNum := citationNumbers[ref.ID]
		trees = append(trees, cluster.CiteTree{
			RefID:          ref.ID,
			Tree:           &ir.Tree{Arena: arena, Root: root},
			AuthorKey:      authorKey(ref),
			CitationNumber: num,
			HasCiteNumber:  hasNum,
			HasAffix:       cite.Prefix != "" || cite.Suffix != "",
		})
		disambCites = append(disambCites, &disambig.Cite{RefID: ref.ID, Arena: arena, Root: root, Ctx: ctx})
	}

	driver := &disambig.Driver{
		Style:        p.style,
		Store:        store,
		Locale:       p.locale,
		Format:       p.format,
		Loc:          automaton.LocationCitation,
		YearSuffixes: p.yearSuffixAssignment(store),
	}
	driver.Run(disambCites)

	trees = cluster.RegroupByAuthor(trees)
	cluster.Collapse(trees, p.style.Citation.Collapse)
	return cluster.Assemble(trees, c.Mode, p.style.Citation.Collapse, layout.Delimiter, layout.Prefix, layout.Suffix, p.format, p.style.DefaultLocale)
}

// citationNumberAssignment numbers every cited reference by the document
// order of its first citing cluster (§4.9 bullet 2, citation-number
// variable), unlike yearSuffixAssignment this covers every cited reference,
// not just ambiguous ones, since collapse="citation-number" needs a number
// for every cite to compress runs from.
func (p *Processor) citationNumberAssignment(store *value.Store) map[string]int {
	out := make(map[string]int)
	next := 1
	for _, oc := range p.sortedOrder() {
		c := p.clusters[oc.id]
		if c == nil {
			continue
		}
		for _, cite := range c.Cites {
			if _, ok := out[cite.RefID]; ok {
				continue
			}
			if _, ok := store.Get(cite.RefID); !ok {
				continue
			}
			out[cite.RefID] = next
			next++
		}
	}
	return out
}

// yearSuffixAssignment assigns a year-suffix letter to every reference that
// shares its disambig.YearSuffixGroupKey (rendered author + issued year)
// with at least one other reference cited anywhere in the document, walking
// clusters in document order so the first cited member of a group gets "a"
// (§4.8 pass 3). A reference alone in its group is left out of the map, so
// addYearSuffix leaves its KindYearSuffix nodes unresolved (renders
// nothing). This must span the whole document, not just the cluster being
// rendered, since two references sharing an author+year can appear in
// different clusters and still need distinct letters.
func (p *Processor) yearSuffixAssignment(store *value.Store) map[string]string {
	var groupOrder []string
	groups := map[string][]string{}
	seen := map[string]bool{}
	for _, oc := range p.sortedOrder() {
		c := p.clusters[oc.id]
		if c == nil {
			continue
		}
		for _, cite := range c.Cites {
			if seen[cite.RefID] {
				continue
			}
			seen[cite.RefID] = true
			ref, ok := store.Get(cite.RefID)
			if !ok {
				continue
			}
			key := disambig.YearSuffixGroupKey(ref)
			if _, ok := groups[key]; !ok {
				groupOrder = append(groupOrder, key)
			}
			groups[key] = append(groups[key], cite.RefID)
		}
	}

	out := make(map[string]string)
	for _, key := range groupOrder {
		ids := groups[key]
		if len(ids) < 2 {
			continue
		}
		for i, id := range ids {
			out[id] = disambig.YearSuffixLetter(i)
		}
	}
	return out
}

// authorKey produces the grouping key internal/cluster.RegroupByAuthor uses
// to detect cites sharing an author, independent of rendered name
// form (et-al truncation, initials) so collapsing is driven by identity,
// not by incidental rendering differences.
func authorKey(ref *value.Reference) string {
	names, ok := ref.NameVariable("author")
	if !ok || len(names) == 0 {
		return ""
	}
	return names[0].SortKey()
}

func pageRangeFormatFor(st *style.Style) numfmt.PageRangeFormat {
	return numfmt.PageRangeNone // a style-level page-range-format option
	// would be threaded here once the style-load collaborator surfaces it.
}

// RenderBibliography requests the full bibliography (§6 "request the full
// bibliography"), sorted per the style's bibliography sort keys and honoring
// the uncited-set configuration.
func (p *Processor) RenderBibliography() ([]string, BibliographyMetadata, error) {
	if p.style.Bibliography == nil {
		return nil, BibliographyMetadata{}, &ProcessorError{Stage: "render-bibliography", Message: "style has no bibliography block"}
	}
	store := p.refsInput.Get()
	refs := p.bibliographyReferences(store)
	cluster.SortReferences(refs, p.style.Bibliography.Sort, p.style.DefaultLocale)

	layout := &p.style.Bibliography.Layout
	entries := make([]string, 0, len(refs))
	maxOffset := 0
	for _, ref := range refs {
		ctx := &cond.CiteContext{Ref: ref}
		arena := ir.NewArena()
		s := render.NewState(arena, p.format, p.locale, p.style, ref, ref.ID, ctx)
		root, _ := render.Layout(*layout, s)
		text := cluster.Flatten(arena, root, p.format, p.style.DefaultLocale)
		entries = append(entries, text)
		if p.style.Bibliography.SecondFieldAlign != style.SecondFieldAlignNone {
			if off := len(authorKey(ref)); off > maxOffset {
				maxOffset = off
			}
		}
	}

	meta := BibliographyMetadata{
		MaxOffset:     maxOffset,
		EntrySpacing:  p.style.Bibliography.EntrySpacing,
		LineSpacing:   p.style.Bibliography.LineSpacing,
		HangingIndent: p.style.Bibliography.HangingIndent,
	}
	switch p.style.Bibliography.SecondFieldAlign {
	case style.SecondFieldAlignFlush:
		meta.SecondFieldAlign = "flush"
	case style.SecondFieldAlignMargin:
		meta.SecondFieldAlign = "margin"
	}
	return entries, meta, nil
}

// bibliographyReferences collects cited references plus whatever the
// uncited-set configuration adds (§6 "set the uncited set (None / All /
// Specific ids)").
func (p *Processor) bibliographyReferences(store *value.Store) []*value.Reference {
	cited := make(map[string]bool)
	for _, c := range p.clusters {
		for _, cite := range c.Cites {
			cited[cite.RefID] = true
		}
	}

	switch p.uncitedMode {
	case UncitedAll:
		return store.All()
	case UncitedSpecific:
		for id := range p.uncitedIDs {
			cited[id] = true
		}
	}

	out := make([]*value.Reference, 0, len(cited))
	for id := range cited {
		if ref, ok := store.Get(id); ok {
			out = append(out, ref)
		}
	}
	return out
}

// Diff reports which cluster ids' rendered output changed since the last
// call to Diff (§6 "request a diff of what changed since the last call"),
// using the memo substrate's revision counter to recognize a no-op round
// without recomputing anything.
func (p *Processor) Diff() []int {
	if p.db.Revision() == p.lastDiffRevision {
		return nil
	}
	var changed []int
	for _, id := range p.orderedIDs {
		out, err := p.RenderCluster(id)
		if err != nil {
			continue
		}
		if prev, ok := p.lastRendered[id]; !ok || prev != out {
			changed = append(changed, id)
		}
		p.lastRendered[id] = out
	}
	p.lastDiffRevision = p.db.Revision()
	sort.Ints(changed)
	return changed
}

// PreviewCite renders candidate as if inserted at insertAfter (a cluster id,
// or 0 for "at the start") without mutating any state visible to later
// calls (§6 "preview-cite"). It operates over a scratch copy of the
// document order and the live reference store, never touching p.clusters,
// p.order, or the render cache (§9 Design Notes: snapshot semantics).
func (p *Processor) PreviewCite(candidate *value.Cluster, insertAfter int) (string, error) {
	scratchIDs := make([]int, 0, len(p.orderedIDs)+1)
	scratchNumbers := make([]value.ClusterNumber, 0, len(p.order)+1)
	inserted := false
	for i, id := range p.orderedIDs {
		scratchIDs = append(scratchIDs, id)
		scratchNumbers = append(scratchNumbers, p.order[i])
		if id == insertAfter {
			scratchIDs = append(scratchIDs, candidate.ID)
			scratchNumbers = append(scratchNumbers, value.ClusterNumber{Placement: p.order[i].Placement, Ordinal: p.order[i].Ordinal})
			inserted = true
		}
	}
	if !inserted {
		scratchIDs = append([]int{candidate.ID}, scratchIDs...)
		scratchNumbers = append([]value.ClusterNumber{{Placement: value.PlacementInText, Ordinal: 0}}, scratchNumbers...)
	}

	scratch := &Processor{
		style:         p.style,
		locale:        p.locale,
		format:        p.format,
		db:            p.db,
		refsInput:     p.refsInput,
		clusters:      make(map[int]*value.Cluster, len(p.clusters)+1),
		orderedIDs:    scratchIDs,
		order:         scratchNumbers,
		clusterIDSeen: p.clusterIDSeen,
		uncitedMode:   p.uncitedMode,
		uncitedIDs:    p.uncitedIDs,
		lastRendered:  make(map[int]string),
	}
	for id, c := range p.clusters {
		scratch.clusters[id] = c
	}
	scratch.clusters[candidate.ID] = candidate

	pos := scratch.positionsUpTo(candidate.ID)
	return scratch.renderClusterTrees(candidate, pos[candidate.ID]), nil
}
