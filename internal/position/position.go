// Package position computes each cite's CitePosition classification (§4.7):
// first, ibid, ibid-with-locator, near-note, far-note, or subsequent,
// relative to the other cites of the same reference seen so far in the
// document.
package position

import "github.com/csl-go/citeproc/internal/value"

// citeOccurrence is one prior sighting of a reference, in document order.
type citeOccurrence struct {
	refID      string
	placement  value.ClusterPlacement
	noteNumber int            // meaningful only when placement == PlacementNote
	locator    *value.Locator // the locator this occurrence carried, if any
}

// Tracker accumulates cite occurrences across a document's clusters, in
// the order clusters are assembled, and computes each new cite's position
// against that history (§4.7). Clusters must be fed in increasing
// value.ClusterNumber order (§3 invariant 2).
type Tracker struct {
	history          []citeOccurrence
	lastByRef        map[string]int // refID -> index into history of most recent occurrence
	nearNoteDistance int
}

// NewTracker returns an empty position tracker. nearNoteDistance is the
// style's near-note-distance option (§4.7), defaulting to 5 if <= 0.
func NewTracker(nearNoteDistance int) *Tracker {
	if nearNoteDistance <= 0 {
		nearNoteDistance = 5
	}
	return &Tracker{lastByRef: make(map[string]int), nearNoteDistance: nearNoteDistance}
}

// Resolve computes the position for one cite within a cluster being
// assembled at placement/noteNumber, then records it into history so later
// cites see it as their predecessor. Cites within the same cluster should
// each call Resolve once, in the cluster's cite order.
func (t *Tracker) Resolve(refID string, loc *value.Locator, placement value.ClusterPlacement, noteNumber int) value.CitePosition {
	prevIdx, seen := t.lastByRef[refID]

	var pos value.CitePosition
	if !seen {
		pos = value.CitePosition{Position: value.PositionFirst}
	} else {
		prev := t.history[prevIdx]
		// ibid requires prev to be the cite immediately before this one in
		// the overall document stream, same cluster or the cluster right
		// before it — not merely "same reference cited somewhere earlier"
		// (§4.7 Glossary).
		adjacent := prevIdx == len(t.history)-1
		pos = t.classify(prev, adjacent, loc, placement, noteNumber)
		if fn := t.firstNoteNumber(refID); fn != nil {
			pos.FirstReferenceNoteNumber = fn
		}
	}

	t.record(refID, placement, noteNumber, loc)
	return pos
}

// classify implements §4.7's adjacent-cite sub-cases: ibid when both cites
// have no locator or carry equal locators; ibid-with-locator when a locator
// appears (absent→present) or changes value; subsequent when the previous
// cite's locator is dropped. Non-adjacent cites are near-note or far-note in
// note placement and subsequent otherwise.
func (t *Tracker) classify(prev citeOccurrence, adjacent bool, loc *value.Locator, placement value.ClusterPlacement, noteNumber int) value.CitePosition {
	if adjacent {
		switch {
		case prev.locator == nil && loc == nil:
			return value.CitePosition{Position: value.PositionIbid}
		case prev.locator == nil && loc != nil:
			return value.CitePosition{Position: value.PositionIbidWithLocator}
		case prev.locator != nil && loc == nil:
			return value.CitePosition{Position: value.PositionSubsequent}
		case locatorsEqual(prev.locator, loc):
			return value.CitePosition{Position: value.PositionIbid}
		default:
			return value.CitePosition{Position: value.PositionIbidWithLocator}
		}
	}
	switch {
	case placement == value.PlacementNote && noteNumber-prev.noteNumber <= t.nearNoteDistance:
		return value.CitePosition{Position: value.PositionNearNote}
	case placement == value.PlacementNote:
		return value.CitePosition{Position: value.PositionFarNote}
	default:
		return value.CitePosition{Position: value.PositionSubsequent}
	}
}

func locatorsEqual(a, b *value.Locator) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type == b.Type && a.Value.Verbatim() == b.Value.Verbatim()
}

func (t *Tracker) firstNoteNumber(refID string) *int {
	for _, occ := range t.history {
		if occ.refID == refID && occ.placement == value.PlacementNote {
			n := occ.noteNumber
			return &n
		}
	}
	return nil
}

func (t *Tracker) record(refID string, placement value.ClusterPlacement, noteNumber int, loc *value.Locator) {
	occ := citeOccurrence{refID: refID, placement: placement, noteNumber: noteNumber, locator: loc}
	t.history = append(t.history, occ)
	t.lastByRef[refID] = len(t.history) - 1
}

// Reset clears all recorded history, used when re-rendering a document from
// scratch (e.g. after references change) rather than incrementally (§6).
func (t *Tracker) Reset() {
	t.history = nil
	t.lastByRef = make(map[string]int)
}
