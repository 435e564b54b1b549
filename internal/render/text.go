package render

import (
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/style"
)

// renderText handles <text>'s four mutually exclusive sources: a literal
// value, a locale term, a reference variable, or a macro invocation (§4.3).
func renderText(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	switch {
	case el.Value != "":
		return emitPlain(el, s, el.Value)
	case el.Term != "":
		return renderTextTerm(el, s)
	case el.Macro != "":
		return renderMacro(el, s)
	default:
		return renderTextVariable(el, s)
	}
}

func emitPlain(el style.Element, s *State, raw string) (ir.NodeIndex, ir.GroupVars) {
	idx := s.emit(el.Formatting, s.Format.TextNode(raw), ir.EdgeOutput, ir.Plain)
	return idx, ir.Plain
}

func renderTextTerm(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	form := el.Form
	if form == "" {
		form = "long"
	}
	t, ok := s.Locale.Term(el.Term, form)
	if !ok {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	idx := s.emit(el.Formatting, s.Format.TextNode(t.Singular), ir.EdgeOutput, ir.Plain)
	return idx, ir.Plain
}

// renderTextVariable renders a <text variable="...">. Form "short" maps to
// the CSL "<name>-short" variable convention handled by
// value.Reference.Variable's fallback chain (§4.3).
func renderTextVariable(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	name := el.Variable
	if name == "" {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	if s.suppressed[name] {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	if name == "locator" {
		return renderLocatorVariable(el, s)
	}
	if name == "year-suffix" {
		return renderYearSuffixVariable(s)
	}
	lookupName := name
	if el.Form == "short" {
		lookupName = name + "-short"
	}
	v, ok := s.Ref.Variable(lookupName)
	if !ok || v == "" {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	idx := s.emit(el.Formatting, s.Format.TextNode(v), ir.EdgeOutput, ir.Important)
	return idx, ir.Important
}

// renderLocatorVariable renders <text variable="locator">. The formatted
// locator string is precomputed by the caller (internal/engine, which formats
// it through numfmt) and handed in through State.LocatorText,
// since the locator's numeric form depends on the style's
// page-range-format option that lives outside a single element's scope.
func renderLocatorVariable(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	if !s.Ctx.HasLocator() || s.LocatorText == "" {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	idx := s.emit(el.Formatting, s.Format.TextNode(s.LocatorText), ir.EdgeLocator, ir.Important)
	return idx, ir.Important
}

// renderYearSuffixVariable renders <text variable="year-suffix">. No letter
// is assigned yet at first render; it installs a placeholder hook that
// internal/disambig's add-year-suffix pass (§4.8 pass 3) fills in later, and
// that ir.EdgeSequence skips until Resolved is non-empty.
func renderYearSuffixVariable(s *State) (ir.NodeIndex, ir.GroupVars) {
	idx := s.alloc(ir.Node{
		Kind:       ir.KindYearSuffix,
		Vars:       ir.Plain,
		YearSuffix: &ir.YearSuffixHook{RefID: s.RefID, Explicit: true},
	})
	return idx, ir.Plain
}

// renderMacro renders a style macro body, guarding against unbounded
// recursion (§4.3).
func renderMacro(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	body, ok := s.Style.Macros[el.Macro]
	if !ok || s.macroDepth[el.Macro] >= maxMacroDepth {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	s.macroDepth[el.Macro]++
	idx, fold := Seq(body, "", el.Prefix, el.Suffix, false, s)
	s.macroDepth[el.Macro]--

	n := s.Arena.Get(idx)
	n.Seq.TextCase = el.TextCase
	n.Seq.Quotes = el.Quotes
	n.Seq.Bold = el.Bold
	n.Seq.Italic = el.Italic
	n.Seq.Display = el.Display
	return idx, fold
}
