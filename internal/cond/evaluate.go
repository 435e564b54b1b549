package cond

import (
	"github.com/csl-go/citeproc/internal/style"
)

// Result is a condition evaluation outcome: the boolean plus the side
// channel the renderer needs to know whether to wrap the branch in
// ir.ConditionalDisamb (§4.2).
type Result struct {
	Bool                    bool
	BranchContainsDisambiguate bool
}

// Evaluate evaluates a <choose> branch's Conditions against ctx (§4.2).
func Evaluate(c style.Conditions, ctx Context) Result {
	var res Result
	ok := evalMatch(c.Match, c.CondSets, func(cs style.CondSet) bool {
		return evalCondSet(cs, ctx, &res)
	})
	res.Bool = ok
	return res
}

func evalMatch(m style.Match, sets []style.CondSet, eval func(style.CondSet) bool) bool {
	if len(sets) == 0 {
		// An empty Conditions value matches unconditionally: this is how
		// <else> branches are represented (style.Branch.IsElse).
		return true
	}
	switch m {
	case style.MatchAll:
		for _, cs := range sets {
			if !eval(cs) {
				return false
			}
		}
		return true
	case style.MatchNone:
		for _, cs := range sets {
			if eval(cs) {
				return false
			}
		}
		return true
	case style.MatchNand:
		for _, cs := range sets {
			if !eval(cs) {
				return true
			}
		}
		return false
	default: // style.MatchAny
		for _, cs := range sets {
			if eval(cs) {
				return true
			}
		}
		return false
	}
}

func evalCondSet(cs style.CondSet, ctx Context, res *Result) bool {
	return evalMatchPrims(cs.Match, cs.Prims, ctx, res)
}

func evalMatchPrims(m style.Match, prims []style.Prim, ctx Context, res *Result) bool {
	eval := func(p style.Prim) bool { return evalPrim(p, ctx, res) }
	switch m {
	case style.MatchAll:
		for _, p := range prims {
			if !eval(p) {
				return false
			}
		}
		return true
	case style.MatchNone:
		for _, p := range prims {
			if eval(p) {
				return false
			}
		}
		return true
	case style.MatchNand:
		for _, p := range prims {
			if !eval(p) {
				return true
			}
		}
		return false
	default:
		for _, p := range prims {
			if eval(p) {
				return true
			}
		}
		return false
	}
}

func evalPrim(p style.Prim, ctx Context, res *Result) bool {
	ref := ctx.Reference()
	switch p.Kind {
	case style.CondVariable:
		if p.Variable == "locator" {
			return ctx.HasLocator()
		}
		return ref != nil && ref.HasVariable(p.Variable)

	case style.CondIsNumeric:
		if ref == nil {
			return false
		}
		if n, ok := ref.NumberVariable(p.Variable); ok {
			return n.IsNumeric()
		}
		return false

	case style.CondPosition:
		pos, ok := ctx.Position()
		return ok && pos == p.Position

	case style.CondLocatorType:
		lt, ok := ctx.LocatorType()
		return ok && string(lt) == p.LocatorType

	case style.CondType:
		if ref == nil {
			return false
		}
		for _, t := range p.Types {
			if t == ref.Type {
				return true
			}
		}
		return false

	case style.CondDisambiguate:
		res.BranchContainsDisambiguate = true
		return ctx.DisambiguateObserved()

	case style.CondHasYearOnly:
		if ref == nil {
			return false
		}
		d, ok := ref.DateVariable(p.Variable)
		return ok && d.HasYearOnly()

	case style.CondHasMonthOrSeason:
		if ref == nil {
			return false
		}
		d, ok := ref.DateVariable(p.Variable)
		return ok && d.HasMonthOrSeason()

	case style.CondHasDay:
		if ref == nil {
			return false
		}
		d, ok := ref.DateVariable(p.Variable)
		return ok && d.HasDayPart()

	case style.CondIsUncertainDate:
		if ref == nil {
			return false
		}
		d, ok := ref.DateVariable(p.Variable)
		return ok && d.Uncertain

	default:
		return false
	}
}
