package ir

import "github.com/csl-go/citeproc/internal/value"

// NodeIndex is a non-owning handle into an Arena. The arena owns all nodes;
// handles are never dereferenced except through the arena that produced
// them (§9 Design Notes: "do not attempt pointer-rich tree structures").
type NodeIndex int

// NodeKind discriminates the variants of an IR node (§3).
type NodeKind int

const (
	KindRendered NodeKind = iota
	KindName
	KindConditionalDisamb
	KindYearSuffix
	KindNameCounter
	KindSeq
	KindSubstitute
)

// RerenderFunc re-evaluates a subtree that depends on disambiguation state
// not yet known at first render (a <choose> branching on
// disambiguate="true", §4.8 pass 4). It closes over everything the original
// render call needed, the same way the teacher's ComputedFieldFunc closes
// over a source message (hub/convert/computed.go) instead of re-deriving its
// inputs from scratch.
type RerenderFunc func() (NodeIndex, GroupVars)

// Node is a tagged union over the IR node variants in §3. Only the fields
// for the active Kind are meaningful; this mirrors a Rust enum using a
// discriminant field since Go has no closed sum types, per spec.md §9
// ("model it explicitly... so the fold is exhaustive").
type Node struct {
	Kind NodeKind
	Vars GroupVars

	// KindRendered: Edge == nil means "rendered nothing".
	Edge *EdgeData

	// KindName
	Name *NameIR

	// KindConditionalDisamb
	Cond *ConditionalDisamb

	// KindYearSuffix
	YearSuffix *YearSuffixHook

	// KindNameCounter
	Count int

	// KindSeq
	Seq *SeqNode
}

// SeqNode is an ordered inner node carrying inherited formatting, affixes, a
// delimiter, display mode, quote wrapping, and text-case (§3).
type SeqNode struct {
	Children  []NodeIndex
	Delimiter string
	Prefix    string
	Suffix    string
	Display   string // "", "block", "left-margin", "right-inline", "indent"
	TextCase  string // "", "lowercase", "uppercase", "capitalize-first", "capitalize-all", "sentence", "title"
	Quotes    bool
	Bold      bool
	Italic    bool
	// IsGroup marks a <group> element: before rendering, its folded Vars
	// decides whether it renders at all (§4.4). Plain Seq nodes (layout,
	// macro bodies, choose branches) do not gate on Vars.
	IsGroup bool
}

// ConditionalDisamb wraps a <choose> whose winning branch mentioned
// disambiguate="true" (§3, §4.8 pass 4). Done marks that a later pass has
// already tried re-rendering it with disambiguate observable and should not
// try again.
type ConditionalDisamb struct {
	Done     bool
	Content  NodeIndex // currently-rendered branch content
	Rerender RerenderFunc
}

// YearSuffixHook is a slot where a year-suffix letter will be written once
// the add-year-suffix pass (§4.8 pass 3) assigns one. RefID records which
// reference's assignment this hook should pick up.
type YearSuffixHook struct {
	RefID    string
	Resolved string // "" until resolved
	Explicit bool   // true if this came from an explicit <text variable="year-suffix"> during the add-year-suffix pass rather than a placeholder
}

// GivenNameLevel records how much of a name's given name is shown, mutated
// in place by the add-given-name disambiguation pass (§4.8 pass 2).
type GivenNameLevel int

const (
	GivenNameNone GivenNameLevel = iota
	GivenNameInitialsOnly
	GivenNameFull
)

// NameSettings captures the subset of a <names> element's attributes needed
// to (re-)render it (§4.3).
type NameSettings struct {
	EtAlMin               int
	EtAlUseFirst          int
	EtAlUseLast           int
	EtAlSubsequentMin     int
	EtAlSubsequentUseFirst int
	GivenNameForm         string // "long" or "short"
	Initialize            bool
	InitializeWithHyphen  bool
	NameAsSortOrder       bool
	Delimiter             string
	SortSeparator         string
	And                   string // "", "text", "symbol"
	DelimiterPrecedesLast string // "contextual", "after-inverted-name", "always", "never"
}

// NameIR holds everything needed to render, and later re-render with more
// names or more initials, a single <names> block (§3, §4.3, §4.8 passes
// 1-2).
type NameIR struct {
	RefID        string
	Variable     string
	Names        []value.Name
	Settings     NameSettings
	ShownCount   int // mutated by the add-names pass; starts at min(EtAlMin, len(Names)) or len(Names)
	GivenLevel   GivenNameLevel
	// PerNameGiven allows givenname-disambiguation-rule="ByCite"/"PrimaryName"
	// to only expand specific names rather than all of them; index-aligned
	// with Names. Nil means "apply GivenLevel uniformly".
	PerNameGiven []GivenNameLevel
	Label        string // rendered label text, if any, kept so collapsing logic can drop it independently
	Suppressed   bool   // set by cluster assembly when collapsing hides this names block (§4.9)

	// RenderedEdgesCache holds the last rendered edge sequence for this
	// names block, recomputed whenever ShownCount or GivenLevel change.
	RenderedEdgesCache []EdgeData
}

// Arena owns all IR nodes for one cite's tree. Handles (NodeIndex) are
// non-owning; mutation during disambiguation goes through Replace, which
// keeps the index stable so parent Seq.Children slices remain valid (§9
// Design Notes).
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc appends a node and returns its handle.
func (a *Arena) Alloc(n Node) NodeIndex {
	a.nodes = append(a.nodes, n)
	return NodeIndex(len(a.nodes) - 1)
}

// Get returns a mutable pointer to the node at i.
func (a *Arena) Get(i NodeIndex) *Node {
	return &a.nodes[i]
}

// Replace overwrites the node at i in place, preserving its index.
func (a *Arena) Replace(i NodeIndex, n Node) {
	a.nodes[i] = n
}

// Len returns the number of allocated nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Tree pairs an Arena with the index of its root node, the unit the per-cite
// IR cache stores and disambiguation rewrites (§4.1, §4.8).
type Tree struct {
	Arena *Arena
	Root  NodeIndex
}
