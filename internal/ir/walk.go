package ir

// EdgeSequence walks a tree depth-first, respecting group suppression
// (§4.4), and returns the flat sequence of EdgeData values it would emit
// (§3: the alphabet the DFA operates over). It feeds the DFA acceptance
// check (§4.6); building output-format text from a finalized IR is a
// separate walk, internal/cluster.Flatten (§4.10).
func EdgeSequence(a *Arena, root NodeIndex) []EdgeData {
	var out []EdgeData
	walkEdges(a, root, &out)
	return out
}

func walkEdges(a *Arena, idx NodeIndex, out *[]EdgeData) {
	n := a.Get(idx)
	switch n.Kind {
	case KindRendered:
		if n.Edge != nil {
			*out = append(*out, *n.Edge)
		}
	case KindYearSuffix:
		if n.YearSuffix != nil && n.YearSuffix.Resolved != "" {
			kind := EdgeYearSuffix
			if n.YearSuffix.Explicit {
				kind = EdgeYearSuffixExplicit
			}
			*out = append(*out, EdgeData{Kind: kind, Output: n.YearSuffix.Resolved})
		}
	case KindNameCounter:
		// A name-counter contributes no output edge; it is a disambiguation
		// signal consumed directly by internal/disambig, not the DFA alphabet.
	case KindName:
		if n.Name != nil && !n.Name.Suppressed {
			out2 := n.Name.RenderedEdgesCache
			*out = append(*out, out2...)
		}
	case KindConditionalDisamb:
		if n.Cond != nil {
			*out = append(*out, EdgeSequence(a, n.Cond.Content)...)
		}
	case KindSeq:
		if n.Seq == nil {
			return
		}
		if n.Seq.IsGroup && n.Vars.ShouldSuppress() {
			return
		}
		first := true
		for _, c := range n.Seq.Children {
			childEdges := EdgeSequence(a, c)
			if len(childEdges) == 0 {
				continue
			}
			if !first && n.Seq.Delimiter != "" {
				*out = append(*out, EdgeData{Kind: EdgeOutput, Output: n.Seq.Delimiter})
			}
			*out = append(*out, childEdges...)
			first = false
		}
	case KindSubstitute:
		// Sentinel only; never itself contributes edges.
	}
}

// ResolveTree maps every GroupVars tag in the tree from an Unresolved*
// variant to its resolved counterpart (§4.4 resolve()), called once all
// disambiguation passes have run (§3 invariant 4).
func ResolveTree(a *Arena, root NodeIndex) {
	n := a.Get(root)
	n.Vars = n.Vars.Resolve()
	if n.Kind == KindSeq && n.Seq != nil {
		for _, c := range n.Seq.Children {
			ResolveTree(a, c)
		}
	}
	if n.Kind == KindConditionalDisamb && n.Cond != nil {
		ResolveTree(a, n.Cond.Content)
	}
}

// HasUnresolved reports whether any node under root still carries an
// Unresolved* GroupVars tag (§3 invariant 3/4).
func HasUnresolved(a *Arena, root NodeIndex) bool {
	n := a.Get(root)
	if n.Vars.IsUnresolved() {
		return true
	}
	if n.Kind == KindSeq && n.Seq != nil {
		for _, c := range n.Seq.Children {
			if HasUnresolved(a, c) {
				return true
			}
		}
	}
	if n.Kind == KindConditionalDisamb && n.Cond != nil {
		return HasUnresolved(a, n.Cond.Content)
	}
	return false
}

// Collect walks the tree calling visit on every node; used by the
// disambiguation driver to find all ConditionalDisamb and YearSuffix and
// Name nodes without duplicating traversal logic per pass.
func Collect(a *Arena, root NodeIndex, visit func(NodeIndex, *Node)) {
	n := a.Get(root)
	visit(root, n)
	switch n.Kind {
	case KindSeq:
		if n.Seq != nil {
			for _, c := range n.Seq.Children {
				Collect(a, c, visit)
			}
		}
	case KindConditionalDisamb:
		if n.Cond != nil {
			Collect(a, n.Cond.Content, visit)
		}
	}
}
