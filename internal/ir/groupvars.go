// Package ir defines the per-cite intermediate representation: an
// arena-backed tree carrying GroupVars tags, rewritten in place by the
// disambiguation passes (§3, §4.4 of the spec).
package ir

// GroupVars is the 6-valued tag on every IR node that decides whether an
// enclosing group renders (§3, §4.4). Modeled as an explicit enum rather
// than a pair of booleans per spec.md §9 Design Notes, so the fold table
// below is exhaustive and cannot silently drop a case.
type GroupVars int

const (
	Plain GroupVars = iota
	Missing
	Important
	UnresolvedMissing
	UnresolvedPlain
	UnresolvedImportant
)

func (g GroupVars) String() string {
	switch g {
	case Plain:
		return "plain"
	case Missing:
		return "missing"
	case Important:
		return "important"
	case UnresolvedMissing:
		return "unresolved-missing"
	case UnresolvedPlain:
		return "unresolved-plain"
	case UnresolvedImportant:
		return "unresolved-important"
	default:
		return "invalid"
	}
}

// neighbourTable implements the fold table in §4.4, indexed [L][R].
var neighbourTable = [6][6]GroupVars{
	Plain:               {Plain, Missing, Important, UnresolvedMissing, UnresolvedPlain, UnresolvedPlain},
	Missing:              {Missing, Missing, Important, UnresolvedMissing, UnresolvedMissing, UnresolvedMissing},
	Important:            {Important, Important, Important, Important, Important, Important},
	UnresolvedPlain:       {UnresolvedPlain, UnresolvedMissing, Important, UnresolvedMissing, UnresolvedPlain, UnresolvedPlain},
	UnresolvedMissing:     {UnresolvedMissing, UnresolvedMissing, Important, UnresolvedMissing, UnresolvedMissing, UnresolvedMissing},
	UnresolvedImportant:   {UnresolvedPlain, UnresolvedMissing, Important, UnresolvedMissing, UnresolvedPlain, UnresolvedImportant},
}

// Neighbour folds two GroupVars values left-to-right, per the table in
// §4.4 ("L ⊕ R").
func Neighbour(l, r GroupVars) GroupVars {
	return neighbourTable[l][r]
}

// FoldAll folds a sequence of child GroupVars values left-to-right, starting
// from Plain (the identity element of the table's first row/column modulo
// Missing's absorbing behaviour — an empty group is neither rendered content
// nor an explicit absence, so Plain is the correct seed).
func FoldAll(children []GroupVars) GroupVars {
	acc := Plain
	for _, c := range children {
		acc = Neighbour(acc, c)
	}
	return acc
}

// Resolve maps an Unresolved* variant to its non-U counterpart; called once
// all disambiguation passes relevant to a subtree have completed (§4.4).
func (g GroupVars) Resolve() GroupVars {
	switch g {
	case UnresolvedMissing:
		return Missing
	case UnresolvedPlain:
		return Plain
	case UnresolvedImportant:
		return Important
	default:
		return g
	}
}

// IsUnresolved reports whether g is one of the three Unresolved* variants
// (§3 invariant 3).
func (g GroupVars) IsUnresolved() bool {
	return g == UnresolvedMissing || g == UnresolvedPlain || g == UnresolvedImportant
}

// PromotePlain turns Plain into Important (§4.4): used when a group is
// deciding whether to render and has already seen a rendered variable, so a
// trailing run of plain text should not, by itself, suppress the group.
func (g GroupVars) PromotePlain() GroupVars {
	if g == Plain {
		return Important
	}
	return g
}

// ShouldSuppress reports whether a group whose fold resolved to g should
// render as empty (§4.4: "Missing/UnresolvedMissing" render as the type's
// default, i.e. nothing).
func (g GroupVars) ShouldSuppress() bool {
	return g == Missing || g == UnresolvedMissing
}
