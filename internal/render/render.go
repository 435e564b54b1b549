package render

import (
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/style"
)

// Element renders one style.Element, returning its IR node and the
// GroupVars tag an enclosing group folds it with (§4.4).
func Element(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	switch el.Kind {
	case style.ElemText:
		return renderText(el, s)
	case style.ElemNumber:
		return renderNumber(el, s)
	case style.ElemLabel:
		return renderLabel(el, s)
	case style.ElemDate:
		return renderDate(el, s)
	case style.ElemNames:
		return renderNames(el, s)
	case style.ElemGroup:
		return renderGroupEl(el, s)
	case style.ElemChoose:
		return renderChoose(el, s)
	default:
		return s.emit(style.Formatting{}, "", ir.EdgeOutput, ir.Plain), ir.Plain
	}
}

// Layout renders a <citation>/<bibliography> layout (or any bare element
// list, such as a macro body) as a non-gating Seq node: its own GroupVars
// fold is reported to the caller but never suppresses the layout itself,
// only a <group> ancestor further up decides to suppress on it (§4.3, §4.4).
func Layout(l style.Layout, s *State) (ir.NodeIndex, ir.GroupVars) {
	return Seq(l.Elements, l.Delimiter, l.Prefix, l.Suffix, false, s)
}

// Seq renders a list of elements into one ir.Seq node, folding their
// GroupVars left-to-right. isGroup controls whether the resulting node
// gates its own rendering on the fold (true only for an actual <group>
// element, §4.4).
func Seq(elements []style.Element, delimiter, prefix, suffix string, isGroup bool, s *State) (ir.NodeIndex, ir.GroupVars) {
	children := make([]ir.NodeIndex, 0, len(elements))
	vars := make([]ir.GroupVars, 0, len(elements))
	for _, el := range elements {
		idx, gv := Element(el, s)
		children = append(children, idx)
		vars = append(vars, gv)
	}
	fold := ir.FoldAll(vars)

	node := s.alloc(ir.Node{
		Kind: ir.KindSeq,
		Vars: fold,
		Seq: &ir.SeqNode{
			Children:  children,
			Delimiter: delimiter,
			Prefix:    prefix,
			Suffix:    suffix,
			IsGroup:   isGroup,
		},
	})
	return node, fold
}

// renderGroupEl renders a <group>: its children fold their GroupVars, and if
// the fold resolves to Missing/UnresolvedMissing the whole group renders as
// empty (§4.4) — EdgeSequence enforces that at flatten time via IsGroup, not
// here, since disambiguation may still rewrite children's Vars afterward.
func renderGroupEl(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	idx, fold := Seq(el.Children, el.Delimiter, el.Prefix, el.Suffix, true, s)
	n := s.Arena.Get(idx)
	n.Seq.TextCase = el.TextCase
	n.Seq.Quotes = el.Quotes
	n.Seq.Bold = el.Bold
	n.Seq.Italic = el.Italic
	n.Seq.Display = el.Display
	return idx, fold
}
