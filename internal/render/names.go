package render

import (
	"strings"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/outfmt"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// renderNames renders a <names variable="...">, trying variables and
// <substitute> children in order until one yields a non-empty name list
// (§4.3). The winning NameIR is allocated once and kept mutable so
// internal/disambig passes 1-2 can widen et-al/given-name disclosure
// without rebuilding the tree.
func renderNames(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	names, variable, ok := resolveNames(el.NameVariables, s)
	if !ok {
		for _, sub := range el.Substitute {
			for _, subEl := range sub {
				if subEl.Kind == style.ElemNames {
					if n2, v2, ok2 := resolveNames(subEl.NameVariables, s); ok2 {
						names, variable, ok = n2, v2, true
						break
					}
				} else {
					idx, gv := Element(subEl, s)
					if gv != ir.Missing {
						return idx, gv
					}
				}
			}
			if ok {
				break
			}
		}
	}
	if !ok {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	for _, v := range el.NameVariables {
		s.suppressed[v] = true
	}

	settings := resolveNameSettings(el, s)
	shown := etAlShownCount(len(names), settings)

	nameIR := &ir.NameIR{
		RefID:      s.RefID,
		Variable:   variable,
		Names:      names,
		Settings:   settings,
		ShownCount: shown,
		GivenLevel: initialGivenLevel(settings),
	}
	nameIR.RenderedEdgesCache = RenderNameEdges(nameIR, s.Locale, s.Format)

	node := s.alloc(ir.Node{Kind: ir.KindName, Name: nameIR, Vars: ir.Plain})
	s.nameCount++
	s.alloc(ir.Node{Kind: ir.KindNameCounter, Count: s.nameCount})

	if len(nameIR.RenderedEdgesCache) == 0 {
		return node, ir.Missing
	}
	return node, ir.Important
}

func resolveNames(vars []string, s *State) ([]value.Name, string, bool) {
	for _, v := range vars {
		if s.suppressed[v] {
			continue
		}
		if names, ok := s.Ref.NameVariable(v); ok && len(names) > 0 {
			return names, v, true
		}
	}
	return nil, "", false
}

func resolveNameSettings(el style.Element, s *State) ir.NameSettings {
	base := ir.NameSettings{}
	inh := style.NameInheritance{}
	if s.Style != nil {
		if s.Style.Citation != nil {
			inh = s.Style.Citation.NameInheritance
		}
	}
	o := el.NameOptions
	merge := func(local, inherited int) int {
		if local != 0 {
			return local
		}
		return inherited
	}
	mergeStr := func(local, inherited string) string {
		if local != "" {
			return local
		}
		return inherited
	}
	base.EtAlMin = merge(o.EtAlMin, inh.EtAlMin)
	base.EtAlUseFirst = merge(o.EtAlUseFirst, inh.EtAlUseFirst)
	base.EtAlUseLast = merge(o.EtAlUseLast, inh.EtAlUseLast)
	base.EtAlSubsequentMin = merge(o.EtAlSubsequentMin, inh.EtAlSubsequentMin)
	base.EtAlSubsequentUseFirst = merge(o.EtAlSubsequentUseFirst, inh.EtAlSubsequentUseFirst)
	base.GivenNameForm = mergeStr(o.GivenNameForm, inh.GivenNameForm)
	base.Initialize = o.Initialize || inh.Initialize
	base.InitializeWithHyphen = o.InitializeWithHyphen || inh.InitializeWithHyphen
	base.NameAsSortOrder = o.NameAsSortOrder || inh.NameAsSortOrder
	base.Delimiter = mergeStr(o.Delimiter, inh.Delimiter)
	if base.Delimiter == "" {
		base.Delimiter = ", "
	}
	base.SortSeparator = mergeStr(o.SortSeparator, inh.SortSeparator)
	if base.SortSeparator == "" {
		base.SortSeparator = ", "
	}
	base.And = mergeStr(o.And, inh.And)
	base.DelimiterPrecedesLast = mergeStr(o.DelimiterPrecedesLast, inh.DelimiterPrecedesLast)
	return base
}

func initialGivenLevel(settings ir.NameSettings) ir.GivenNameLevel {
	if !settings.Initialize && settings.GivenNameForm != "short" {
		return ir.GivenNameFull
	}
	if settings.GivenNameForm == "short" {
		return ir.GivenNameNone
	}
	return ir.GivenNameInitialsOnly
}

// etAlShownCount applies the et-al truncation rule (§4.3, §4.8 pass 1): show
// every name unless the list is at least EtAlMin long, in which case show
// only EtAlUseFirst (falling back to 1).
func etAlShownCount(total int, settings ir.NameSettings) int {
	if settings.EtAlMin > 0 && total >= settings.EtAlMin {
		first := settings.EtAlUseFirst
		if first <= 0 {
			first = 1
		}
		if first > total {
			first = total
		}
		return first
	}
	return total
}

// RenderNameEdges builds the flat edge sequence for a NameIR's current
// ShownCount/GivenLevel, used both at first render and by internal/disambig
// whenever a pass widens disclosure (§3, §4.8).
func RenderNameEdges(n *ir.NameIR, loc *locale.Set, format outfmt.Format) []ir.EdgeData {
	if len(n.Names) == 0 {
		return nil
	}
	shown := n.ShownCount
	if shown > len(n.Names) {
		shown = len(n.Names)
	}
	etAl := shown < len(n.Names)

	parts := make([]string, 0, shown)
	for i := 0; i < shown; i++ {
		level := n.GivenLevel
		if n.PerNameGiven != nil && i < len(n.PerNameGiven) {
			level = n.PerNameGiven[i]
		}
		parts = append(parts, formatPersonName(n.Names[i], n.Settings, level))
	}

	joined := joinNames(parts, n.Settings)
	if etAl {
		etAlTerm := "et al."
		if t, ok := loc.Term("et-al", "long"); ok && t.Singular != "" {
			etAlTerm = t.Singular
		}
		joined = joined + " " + etAlTerm
	}
	if joined == "" {
		return nil
	}
	return []ir.EdgeData{{Kind: ir.EdgeOutput, Output: format.TextNode(joined)}}
}

// joinNames joins formatted name strings per the delimiter/and/
// delimiter-precedes-last rules (§4.3).
func joinNames(parts []string, settings ir.NameSettings) string {
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	andWord := ""
	switch settings.And {
	case "text":
		andWord = " and "
	case "symbol":
		andWord = " & "
	}

	if andWord == "" {
		return strings.Join(parts, settings.Delimiter)
	}

	head := parts[:len(parts)-1]
	last := parts[len(parts)-1]

	usesDelimiterBeforeLast := false
	switch settings.DelimiterPrecedesLast {
	case "always":
		usesDelimiterBeforeLast = true
	case "never":
		usesDelimiterBeforeLast = false
	case "after-inverted-name":
		usesDelimiterBeforeLast = settings.NameAsSortOrder
	default: // "contextual": delimiter needed only when there are 3+ names
		usesDelimiterBeforeLast = len(parts) > 2
	}

	joinedHead := strings.Join(head, settings.Delimiter)
	if usesDelimiterBeforeLast {
		return joinedHead + strings.TrimRight(settings.Delimiter, " ") + andWord + last
	}
	return joinedHead + andWord + last
}

// formatPersonName renders one value.Name per settings and the
// disambiguation-mutable givenLevel (§4.3, §4.8 pass 2).
func formatPersonName(n value.Name, settings ir.NameSettings, givenLevel ir.GivenNameLevel) string {
	if n.IsLiteral {
		return n.Literal
	}

	given := formatGiven(n.Given, settings, givenLevel)
	sortOrder := settings.NameAsSortOrder && !n.StaticOrdering

	if sortOrder {
		family := strings.TrimSpace(joinNonEmptyWords(n.NonDroppingParticle, n.Family))
		name := family
		if given != "" {
			name += settings.SortSeparator + given
		}
		if n.DroppingParticle != "" {
			name += " " + n.DroppingParticle
		}
		return appendSuffix(name, n)
	}

	name := joinNonEmptyWords(given, n.DroppingParticle, n.NonDroppingParticle, n.Family)
	return appendSuffix(name, n)
}

func appendSuffix(name string, n value.Name) string {
	if n.Suffix == "" {
		return name
	}
	if n.CommaSuffix {
		return name + ", " + n.Suffix
	}
	return name + " " + n.Suffix
}

func joinNonEmptyWords(words ...string) string {
	var out []string
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

func formatGiven(given string, settings ir.NameSettings, level ir.GivenNameLevel) string {
	switch level {
	case ir.GivenNameNone:
		return ""
	case ir.GivenNameInitialsOnly:
		return initializeGiven(given, settings.InitializeWithHyphen)
	default:
		if settings.GivenNameForm == "short" {
			return ""
		}
		if settings.Initialize {
			return initializeGiven(given, settings.InitializeWithHyphen)
		}
		return given
	}
}

// initializeGiven turns "Jean-Paul Marie" into "J.-P. M." (or "J. P. M."
// when hyphen is false), per the initialize-with-hyphen style option (§4.3).
func initializeGiven(given string, hyphen bool) string {
	words := strings.Fields(given)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.Contains(w, "-") {
			sub := strings.Split(w, "-")
			inis := make([]string, 0, len(sub))
			for _, sw := range sub {
				if sw == "" {
					continue
				}
				inis = append(inis, initial(sw))
			}
			sep := " "
			if hyphen {
				sep = "-"
			}
			out = append(out, strings.Join(inis, sep))
			continue
		}
		out = append(out, initial(w))
	}
	return strings.Join(out, " ")
}

func initial(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return ""
	}
	return string(r[0]) + "."
}
