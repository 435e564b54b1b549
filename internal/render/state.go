// Package render walks a parsed style.Element tree for one cite and builds
// the corresponding ir.Node tree (§4.3). It is the layer that turns style +
// reference + cite context into the arena-backed IR the disambiguation
// passes and cluster assembler operate on afterward.
package render

import (
	"github.com/csl-go/citeproc/internal/cond"
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/numfmt"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// State carries everything a single cite's render pass threads through
// every element handler: the arena nodes are allocated into, the condition
// context <choose> evaluates against, and the macro-recursion guard.
type State struct {
	Arena  *ir.Arena
	Format outfmt.Format
	Locale *locale.Set
	Style  *style.Style
	Ref    *value.Reference
	Ctx    cond.Context
	RefID  string

	// LocatorText is the already-formatted (numfmt-compressed) locator
	// string for this cite, supplied by internal/engine before rendering
	// begins; empty when the cite carries no locator.
	LocatorText string

	// LocatorPlural lets internal/engine set plurality for the
	// <label variable="locator"> case, where the underlying value may not
	// be a clean NumericValue token count (e.g. "15-17, 22").
	LocatorPlural bool

	// PageRangeFormat is the style's page-range-format option (§4.3, §8).
	PageRangeFormat numfmt.PageRangeFormat

	// macroDepth guards against a style defining mutually-recursive macros;
	// CSL styles never intend this, so a depth cap turns a would-be infinite
	// loop into a render-time no-op for the offending macro.
	macroDepth map[string]int

	// suppressed marks variables a <names>/<text variable> has already
	// consumed via <substitute>, so a later layout element referencing the
	// same variable renders nothing instead of duplicating it (§4.3).
	suppressed map[string]bool

	nameCount int
}

const maxMacroDepth = 16

// NewState returns a fresh per-cite render state.
func NewState(arena *ir.Arena, format outfmt.Format, loc *locale.Set, st *style.Style, ref *value.Reference, refID string, ctx cond.Context) *State {
	return &State{
		Arena:      arena,
		Format:     format,
		Locale:     loc,
		Style:      st,
		Ref:        ref,
		RefID:      refID,
		Ctx:        ctx,
		macroDepth: make(map[string]int),
		suppressed: make(map[string]bool),
	}
}

func (s *State) lang() string {
	if s.Style != nil {
		return s.Style.DefaultLocale
	}
	return ""
}

func (s *State) alloc(n ir.Node) ir.NodeIndex {
	return s.Arena.Alloc(n)
}

// emit allocates a rendered leaf node from already-built output content,
// applying the element's inherited formatting attributes through the
// pluggable output format (§4.10). An empty content string produces an
// empty KindRendered node (Edge == nil) rather than interning "".
func (s *State) emit(f style.Formatting, content string, edgeKind ir.EdgeKind, gv ir.GroupVars) ir.NodeIndex {
	if content == "" {
		return s.alloc(ir.Node{Kind: ir.KindRendered, Vars: gv})
	}
	content = s.Format.TextCase(content, f.TextCase, s.lang())
	content = s.Format.WithFormat(content, f.Bold, f.Italic)
	if f.Quotes {
		content = s.Format.Quoted(content, s.Locale.PunctuationInQuote())
	}
	content = s.Format.Affixed(content, f.Prefix, f.Suffix)
	if content == "" {
		return s.alloc(ir.Node{Kind: ir.KindRendered, Vars: gv})
	}
	edge := ir.EdgeData{Kind: edgeKind, Output: content}
	return s.alloc(ir.Node{Kind: ir.KindRendered, Edge: &edge, Vars: gv})
}
