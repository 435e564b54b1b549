package render

import (
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/style"
)

// renderLabel renders a <label>, pluralizing against the referenced
// number-variable's token count or, for the locator pseudo-variable, the
// caller-supplied LocatorPlural hint (§4.3).
func renderLabel(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	form := el.LabelForm
	if form == "" {
		form = "long"
	}

	plural, ok := labelPlurality(el, s)
	if !ok {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}

	termName := labelTermName(el.LabelVariable, s)
	t, ok := s.Locale.Term(termName, form)
	if !ok {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}

	text := t.Singular
	if plural {
		text = t.Plural
	}
	if text == "" {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	idx := s.emit(el.Formatting, s.Format.TextNode(text), ir.EdgeLocatorLabel, ir.Plain)
	return idx, ir.Plain
}

func labelPlurality(el style.Element, s *State) (plural bool, present bool) {
	switch el.LabelPlural {
	case "always":
		return true, variablePresent(el, s)
	case "never":
		return false, variablePresent(el, s)
	}
	if el.LabelVariable == "locator" {
		if !s.Ctx.HasLocator() {
			return false, false
		}
		return s.LocatorPlural, true
	}
	n, ok := s.Ref.NumberVariable(el.LabelVariable)
	if !ok {
		return false, false
	}
	return n.NumTokenCount() > 1, true
}

func variablePresent(el style.Element, s *State) bool {
	if el.LabelVariable == "locator" {
		return s.Ctx.HasLocator()
	}
	_, ok := s.Ref.NumberVariable(el.LabelVariable)
	return ok
}

// labelTermName maps a label's variable name to the matching locale term.
// For the locator pseudo-variable, CSL reuses the active locator's own type
// string as the term name ("page", "chapter", ...) rather than "locator"
// itself; other number-variables name a term identical to the variable.
func labelTermName(variable string, s *State) string {
	if variable == "locator" {
		if lt, ok := s.Ctx.LocatorType(); ok {
			return string(lt)
		}
		return variable
	}
	return variable
}
