package cluster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/style"
)

// CiteTree pairs one cite's finalized IR tree with the grouping keys
// collapsing needs: an author identity key (so cites of the same author can
// be detected), citation number (for
// collapse="citation-number"), whether the cite carries its own
// prefix/suffix (so rename-grouping knows not to rotate past it), and
// ShouldCollapse, set by RegroupByAuthor once a cite has been placed
// adjacent to an earlier cite of the same author.
type CiteTree struct {
	RefID          string
	Tree           *ir.Tree
	AuthorKey      string
	CitationNumber int
	HasCiteNumber  bool
	HasAffix       bool
	ShouldCollapse bool
}

// RegroupByAuthor is §4.9 bullet 1, "rename grouping": cites sharing a
// non-empty AuthorKey are made adjacent by stable
// rotation within the cluster, so Collapse's immediate-predecessor check can
// fire even when the matching cites weren't cited back to back. All but the
// first cite of a group are marked ShouldCollapse. A cite carrying its own
// prefix/suffix (HasAffix) blocks further rotation past it: grouping stops
// extending once it's reached, rather than jumping the group over it.
func RegroupByAuthor(cites []CiteTree) []CiteTree {
	if len(cites) < 2 {
		return cites
	}
	out := make([]CiteTree, 0, len(cites))
	placed := make([]bool, len(cites))
	for i := range cites {
		if placed[i] {
			continue
		}
		placed[i] = true
		head := cites[i]
		head.ShouldCollapse = false
		out = append(out, head)
		if head.AuthorKey == "" {
			continue
		}
		for j := i + 1; j < len(cites); j++ {
			if placed[j] {
				continue
			}
			if cites[j].AuthorKey != head.AuthorKey {
				if cites[j].HasAffix {
					break
				}
				continue
			}
			placed[j] = true
			member := cites[j]
			member.ShouldCollapse = true
			out = append(out, member)
		}
	}
	return out
}

// Collapse mutates cites in place per the style's collapse mode (§4.9):
// CollapseYear/YearSuffix/YearSuffixRanged suppress the repeated name block
// of every cite marked ShouldCollapse by RegroupByAuthor; CollapseCitationNumber
// is handled separately by CollapseCitationNumbers since it rewrites the
// joined text rather than suppressing tree content.
func Collapse(cites []CiteTree, mode style.CollapseMode) {
	if mode != style.CollapseYear && mode != style.CollapseYearSuffix && mode != style.CollapseYearSuffixRanged {
		return
	}
	for i := range cites {
		if !cites[i].ShouldCollapse {
			continue
		}
		suppressNames(cites[i].Tree)
	}
}

func suppressNames(t *ir.Tree) {
	if t == nil {
		return
	}
	ir.Collect(t.Arena, t.Root, func(_ ir.NodeIndex, n *ir.Node) {
		if n.Kind == ir.KindName && n.Name != nil {
			n.Name.Suppressed = true
		}
	})
}

// CollapseCitationNumbers compresses a cluster's per-cite citation numbers
// into Vancouver-style runs joined by an en-dash ("3–5, 9"; two consecutive
// numbers stay "1, 2") for collapse="citation-number" (§4.9). It sees only
// numbers: a cluster with any numberless cite never reaches it (Assemble
// falls back to the normal join); nums must already be sorted
// ascending within each contiguous group the caller wants compressed (this
// function does not itself reorder cites — a style that collapses numbers
// typically also sorts by citation-number, §4.9).
func CollapseCitationNumbers(nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	var runs [][2]int
	start, prev := nums[0], nums[0]
	for _, n := range nums[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		runs = append(runs, [2]int{start, prev})
		start, prev = n, n
	}
	runs = append(runs, [2]int{start, prev})

	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		if r[0] == r[1] {
			parts = append(parts, strconv.Itoa(r[0]))
		} else if r[1] == r[0]+1 {
			parts = append(parts, fmt.Sprintf("%d, %d", r[0], r[1]))
		} else {
			parts = append(parts, fmt.Sprintf("%d–%d", r[0], r[1]))
		}
	}
	return strings.Join(parts, ", ")
}
