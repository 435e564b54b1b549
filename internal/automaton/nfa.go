package automaton

import (
	"sort"
	"strconv"

	"github.com/csl-go/citeproc/internal/ir"
)

type state int

// nfa is the graph both the Thompson-style build and every Brzozowski pass
// operate on; a deterministic automaton is just one whose trans entries
// never hold more than one target (§4.6).
type nfa struct {
	numStates int
	starts    map[state]bool
	accepts   map[state]bool
	eps       map[state][]state
	trans     map[state]map[ir.EdgeData][]state
}

func newNFA() *nfa {
	return &nfa{
		starts:  map[state]bool{},
		accepts: map[state]bool{},
		eps:     map[state][]state{},
		trans:   map[state]map[ir.EdgeData][]state{},
	}
}

func (n *nfa) newState() state {
	s := state(n.numStates)
	n.numStates++
	return s
}

func (n *nfa) addEps(from, to state) {
	n.eps[from] = append(n.eps[from], to)
}

func (n *nfa) addTrans(from state, sym ir.EdgeData, to state) {
	if n.trans[from] == nil {
		n.trans[from] = map[ir.EdgeData][]state{}
	}
	n.trans[from][sym] = append(n.trans[from][sym], to)
}

// buildFromSequences threads one linear chain per edge sequence from a
// shared start state (§4.6 step 2: "an NFA whose start state fans out to one
// state per FreeCond"). et-al truncation sub-branching (§4.6 step 1, names
// blocks) is not modeled as a separate NFA branch point here: each sequence
// already reflects the reference's actual rendered name count for that
// FreeCond, which is sufficient for acceptance testing against concrete
// cites since a cite's own edge sequence was rendered at one fixed name
// count too.
func buildFromSequences(seqs [][]ir.EdgeData) *nfa {
	n := newNFA()
	start := n.newState()
	n.starts[start] = true
	if len(seqs) == 0 {
		n.accepts[start] = true
		return n
	}
	for _, seq := range seqs {
		cur := n.newState()
		n.addEps(start, cur)
		for _, sym := range seq {
			next := n.newState()
			n.addTrans(cur, sym, next)
			cur = next
		}
		n.accepts[cur] = true
	}
	return n
}

// reverseNFA swaps edge direction and start/accept sets (§4.6 step 3: "reverse
// edges, swap start/accept").
func reverseNFA(n *nfa) *nfa {
	out := newNFA()
	out.numStates = n.numStates
	for s := range n.accepts {
		out.starts[s] = true
	}
	for s := range n.starts {
		out.accepts[s] = true
	}
	for from, tos := range n.eps {
		for _, to := range tos {
			out.addEps(to, from)
		}
	}
	for from, m := range n.trans {
		for sym, tos := range m {
			for _, to := range tos {
				out.addTrans(to, sym, from)
			}
		}
	}
	return out
}

// determinize subset-constructs a deterministic automaton from n (§4.6
// step 3). The result's trans entries each hold exactly one target.
func determinize(n *nfa) *nfa {
	out := newNFA()
	startClosure := epsClosure(n, n.starts)
	idx := map[string]state{}
	s0 := out.newState()
	out.starts[s0] = true
	idx[setKey(startClosure)] = s0
	if anyAccept(n, startClosure) {
		out.accepts[s0] = true
	}

	type item struct {
		set map[state]bool
		key string
		id  state
	}
	queue := []item{{startClosure, setKey(startClosure), s0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		symSet := map[ir.EdgeData]bool{}
		for s := range cur.set {
			for sym := range n.trans[s] {
				symSet[sym] = true
			}
		}
		for sym := range symSet {
			next := map[state]bool{}
			for s := range cur.set {
				for _, to := range n.trans[s][sym] {
					next[to] = true
				}
			}
			next = epsClosure(n, next)
			if len(next) == 0 {
				continue
			}
			nk := setKey(next)
			id, ok := idx[nk]
			if !ok {
				id = out.newState()
				idx[nk] = id
				if anyAccept(n, next) {
					out.accepts[id] = true
				}
				queue = append(queue, item{next, nk, id})
			}
			out.addTrans(cur.id, sym, id)
		}
	}
	return out
}

// minimizeDFA runs the Brzozowski double-reversal construction (§4.6 step 3):
// reverse, determinize, reverse, determinize. Two determinizations of a
// reversed automaton always yield a minimal DFA; Hopcroft's algorithm is not
// needed here (§9).
func minimizeDFA(seqs [][]ir.EdgeData) *nfa {
	n1 := buildFromSequences(seqs)
	r1 := reverseNFA(n1)
	d1 := determinize(r1)
	r2 := reverseNFA(d1)
	return determinize(r2)
}

func epsClosure(n *nfa, set map[state]bool) map[state]bool {
	closure := map[state]bool{}
	stack := make([]state, 0, len(set))
	for s := range set {
		closure[s] = true
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.eps[s] {
			if !closure[t] {
				closure[t] = true
				stack = append(stack, t)
			}
		}
	}
	return closure
}

func anyAccept(n *nfa, set map[state]bool) bool {
	for s := range set {
		if n.accepts[s] {
			return true
		}
	}
	return false
}

func setKey(set map[state]bool) string {
	ids := make([]int, 0, len(set))
	for s := range set {
		ids = append(ids, int(s))
	}
	sort.Ints(ids)
	b := make([]byte, 0, len(ids)*4)
	for _, id := range ids {
		b = strconv.AppendInt(b, int64(id), 10)
		b = append(b, ',')
	}
	return string(b)
}

// DFA is a minimal deterministic automaton over ir.EdgeData (§3, §4.6).
type DFA struct {
	n *nfa
}

// Accepts reports whether seq is a string the DFA's start-to-accept paths
// can produce (§4.6: "DFA acceptance of a cite's edge-sequence is the
// definition of this reference could have produced this cite").
func (d *DFA) Accepts(seq []ir.EdgeData) bool {
	var cur state
	for s := range d.n.starts {
		cur = s
		break
	}
	for _, sym := range seq {
		tos, ok := d.n.trans[cur][sym]
		if !ok || len(tos) == 0 {
			return false
		}
		cur = tos[0]
	}
	return d.n.accepts[cur]
}
