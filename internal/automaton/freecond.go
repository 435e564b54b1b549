// Package automaton builds, per reference, a deterministic finite automaton
// over the alphabet of ir.EdgeData values the style could produce for that
// reference under every cite context the style actually distinguishes
// (§3, §4.5, §4.6). internal/disambig uses DFA acceptance to decide whether
// a cite's rendered edge-sequence could have come from more than one
// reference.
package automaton

import "github.com/csl-go/citeproc/internal/style"

// FreeCond is a compact bitset over the cite-context conditions a style can
// branch on (§3, §4.5): position, locator presence/type, year-suffix
// assignment, and disambiguate="true" activation. Not every bit combination
// is meaningful — at most one Pos* bit is set per value (none when the style
// never tests position), and PosIbidWithLocator
// implies HasLocator — enumeration below only ever produces consistent sets.
type FreeCond uint32

const (
	FCHasLocator FreeCond = 1 << iota
	FCLocatorIsPage
	FCPosFirst
	FCPosIbid
	FCPosIbidWithLocator
	FCPosSubsequent
	FCPosNearNote
	FCPosFarNote
	FCYearSuffixAssigned
	FCDisambiguateActive
)

var posBits = []FreeCond{FCPosFirst, FCPosIbid, FCPosIbidWithLocator, FCPosSubsequent, FCPosNearNote, FCPosFarNote}

func (fc FreeCond) positionString() string {
	switch {
	case fc&FCPosFirst != 0:
		return "first"
	case fc&FCPosIbid != 0:
		return "ibid"
	case fc&FCPosIbidWithLocator != 0:
		return "ibid-with-locator"
	case fc&FCPosSubsequent != 0:
		return "subsequent"
	case fc&FCPosNearNote != 0:
		return "near-note"
	case fc&FCPosFarNote != 0:
		return "far-note"
	default:
		return ""
	}
}

func (fc FreeCond) hasLocator() bool         { return fc&FCHasLocator != 0 }
func (fc FreeCond) locatorIsPage() bool      { return fc&FCLocatorIsPage != 0 }
func (fc FreeCond) yearSuffixAssigned() bool { return fc&FCYearSuffixAssigned != 0 }
func (fc FreeCond) disambiguateActive() bool { return fc&FCDisambiguateActive != 0 }

// usedAxes records which predicate axes a style subtree actually tests, so
// Enumerate only cross-products the axes the style distinguishes rather than
// every bit combination (§4.5: "the minimal set of FreeCond bitsets the
// style actually distinguishes").
type usedAxes struct {
	position     bool
	locatorType  bool
	hasLocator   bool
	yearSuffix   bool
	disambiguate bool
}

// Enumerate walks l's elements (recursing into <choose> branches, <group>
// children, and macro bodies named from style) collecting which condition
// axes the style tests, then returns the cross product of FreeCond values
// over just those axes (§4.5). When the style tests nothing
// position/locator/year-suffix-related, the single "don't care" FreeCond is
// returned.
func Enumerate(st *style.Style, l style.Layout) []FreeCond {
	u := &usedAxes{}
	scanElements(l.Elements, st, u, map[string]bool{})

	locatorTypes := []bool{false}
	if u.hasLocator || u.locatorType {
		locatorTypes = []bool{false, true}
	}
	positions := []FreeCond{0}
	if u.position {
		positions = append([]FreeCond{}, posBits...)
	}
	yearSuffixes := []bool{false}
	if u.yearSuffix {
		yearSuffixes = []bool{false, true}
	}
	disambStates := []bool{false}
	if u.disambiguate {
		disambStates = []bool{false, true}
	}

	var out []FreeCond
	for _, pos := range positions {
		for _, hasLoc := range locatorTypes {
			for _, ys := range yearSuffixes {
				for _, da := range disambStates {
					fc := pos
					if hasLoc {
						fc |= FCHasLocator
						if pos == FCPosIbidWithLocator {
							fc |= FCLocatorIsPage
						}
					}
					if pos == FCPosIbidWithLocator && !hasLoc {
						continue // incompatible: ibid-with-locator implies a locator
					}
					if ys {
						fc |= FCYearSuffixAssigned
					}
					if da {
						fc |= FCDisambiguateActive
					}
					out = append(out, fc)
				}
			}
		}
	}
	return out
}

func scanElements(elems []style.Element, st *style.Style, u *usedAxes, macroSeen map[string]bool) {
	for _, el := range elems {
		scanElement(el, st, u, macroSeen)
	}
}

func scanElement(el style.Element, st *style.Style, u *usedAxes, macroSeen map[string]bool) {
	switch el.Kind {
	case style.ElemText:
		if el.Variable == "year-suffix" {
			u.yearSuffix = true
		}
		if el.Variable == "locator" {
			u.hasLocator = true
		}
		if el.Macro != "" && !macroSeen[el.Macro] {
			macroSeen[el.Macro] = true
			scanElements(st.Macros[el.Macro], st, u, macroSeen)
		}
	case style.ElemLabel:
		if el.LabelVariable == "locator" {
			u.hasLocator = true
		}
	case style.ElemGroup:
		scanElements(el.Children, st, u, macroSeen)
	case style.ElemNames:
		for _, sub := range el.Substitute {
			scanElements(sub, st, u, macroSeen)
		}
	case style.ElemChoose:
		for _, b := range el.Branches {
			scanConditions(b.Conditions, u)
			scanElements(b.Elements, st, u, macroSeen)
		}
	}
}

func scanConditions(c style.Conditions, u *usedAxes) {
	for _, cs := range c.CondSets {
		for _, p := range cs.Prims {
			switch p.Kind {
			case style.CondPosition:
				u.position = true
			case style.CondLocatorType:
				u.locatorType = true
				u.hasLocator = true
			case style.CondDisambiguate:
				u.disambiguate = true
			}
		}
	}
}
