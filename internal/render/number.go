package render

import (
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/numfmt"
	"github.com/csl-go/citeproc/internal/style"
)

var numberForms = map[string]numfmt.Form{
	"":             numfmt.Numeric,
	"numeric":      numfmt.Numeric,
	"roman":        numfmt.Roman,
	"ordinal":      numfmt.Ordinal,
	"long-ordinal": numfmt.LongOrdinal,
}

// renderNumber renders a <number variable="...">, formatting through
// internal/numfmt; page-range compression (for "page") follows
// State.PageRangeFormat, which internal/engine sets from the style rather
// than from the element itself (§4.3, §8).
func renderNumber(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	if s.suppressed[el.NumberVariable] {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	n, ok := s.Ref.NumberVariable(el.NumberVariable)
	if !ok {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	form := numberForms[el.NumberForm]
	text := numfmt.Format(n, form, el.NumberVariable, s.PageRangeFormat, s.Locale)
	if text == "" {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	idx := s.emit(el.Formatting, s.Format.TextNode(text), ir.EdgeOutput, ir.Important)
	return idx, ir.Important
}
