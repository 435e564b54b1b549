package render

import (
	"github.com/csl-go/citeproc/internal/cond"
	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/style"
)

// renderChoose renders a <choose>: the first branch whose conditions match
// wins (§4.2). A winning branch that tested disambiguate="true" is wrapped
// in ir.ConditionalDisamb so internal/disambig pass 4 can re-evaluate it
// once the reference's disambiguation state has changed (§4.8 pass 4).
func renderChoose(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	branch, sawDisambiguate := pickBranch(el.Branches, s)
	if branch == nil {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}

	idx, gv := Seq(branch.Elements, "", el.Prefix, el.Suffix, false, s)

	if !sawDisambiguate {
		return idx, gv
	}

	rerender := ir.RerenderFunc(func() (ir.NodeIndex, ir.GroupVars) {
		return Seq(branch.Elements, "", el.Prefix, el.Suffix, false, s)
	})
	wrapped := s.alloc(ir.Node{
		Kind: ir.KindConditionalDisamb,
		Vars: gv,
		Cond: &ir.ConditionalDisamb{Content: idx, Rerender: rerender},
	})
	return wrapped, gv
}

func pickBranch(branches []style.Branch, s *State) (*style.Branch, bool) {
	for i := range branches {
		b := &branches[i]
		if b.IsElse {
			return b, false
		}
		res := cond.Evaluate(b.Conditions, s.Ctx)
		if res.Bool {
			return b, res.BranchContainsDisambiguate
		}
	}
	return nil, false
}
