package position

import (
	"testing"

	"github.com/csl-go/citeproc/internal/value"
)

func TestFirstCiteIsFirst(t *testing.T) {
	tr := NewTracker(5)
	pos := tr.Resolve("smith2000", nil, value.PlacementInText, 0)
	if pos.Position != value.PositionFirst {
		t.Fatalf("Position = %v, want First", pos.Position)
	}
}

func TestImmediateRepeatIsIbid(t *testing.T) {
	tr := NewTracker(5)
	tr.Resolve("smith2000", nil, value.PlacementNote, 1)
	pos := tr.Resolve("smith2000", nil, value.PlacementNote, 2)
	if pos.Position != value.PositionIbid {
		t.Fatalf("Position = %v, want Ibid", pos.Position)
	}
}

func TestImmediateRepeatWithLocatorIsIbidWithLocator(t *testing.T) {
	tr := NewTracker(5)
	tr.Resolve("smith2000", nil, value.PlacementNote, 1)
	loc := &value.Locator{Type: value.LocatorPage, Value: value.ParseNumeric("12")}
	pos := tr.Resolve("smith2000", loc, value.PlacementNote, 2)
	if pos.Position != value.PositionIbidWithLocator {
		t.Fatalf("Position = %v, want IbidWithLocator", pos.Position)
	}
}

func TestPreviousLocatorCurrentAbsentIsSubsequent(t *testing.T) {
	tr := NewTracker(5)
	loc := &value.Locator{Type: value.LocatorPage, Value: value.ParseNumeric("12")}
	tr.Resolve("smith2000", loc, value.PlacementNote, 1)
	pos := tr.Resolve("smith2000", nil, value.PlacementNote, 2)
	if pos.Position != value.PositionSubsequent {
		t.Fatalf("Position = %v, want Subsequent", pos.Position)
	}
}

func TestEqualAdjacentLocatorsAreIbid(t *testing.T) {
	tr := NewTracker(5)
	loc := &value.Locator{Type: value.LocatorPage, Value: value.ParseNumeric("12")}
	tr.Resolve("smith2000", loc, value.PlacementNote, 1)
	same := &value.Locator{Type: value.LocatorPage, Value: value.ParseNumeric("12")}
	pos := tr.Resolve("smith2000", same, value.PlacementNote, 2)
	if pos.Position != value.PositionIbid {
		t.Fatalf("Position = %v, want Ibid", pos.Position)
	}
}

func TestDifferingAdjacentLocatorsAreIbidWithLocator(t *testing.T) {
	tr := NewTracker(5)
	loc := &value.Locator{Type: value.LocatorPage, Value: value.ParseNumeric("12")}
	tr.Resolve("smith2000", loc, value.PlacementNote, 1)
	other := &value.Locator{Type: value.LocatorPage, Value: value.ParseNumeric("13")}
	pos := tr.Resolve("smith2000", other, value.PlacementNote, 2)
	if pos.Position != value.PositionIbidWithLocator {
		t.Fatalf("Position = %v, want IbidWithLocator", pos.Position)
	}
}

func TestNearVsFarNote(t *testing.T) {
	tr := NewTracker(5)
	tr.Resolve("smith2000", nil, value.PlacementNote, 1)
	tr.Resolve("jones1999", nil, value.PlacementNote, 2) // breaks adjacency

	near := tr.Resolve("smith2000", nil, value.PlacementNote, 4)
	if near.Position != value.PositionNearNote {
		t.Fatalf("Position = %v, want NearNote", near.Position)
	}

	tr2 := NewTracker(5)
	tr2.Resolve("smith2000", nil, value.PlacementNote, 1)
	tr2.Resolve("jones1999", nil, value.PlacementNote, 2)
	far := tr2.Resolve("smith2000", nil, value.PlacementNote, 20)
	if far.Position != value.PositionFarNote {
		t.Fatalf("Position = %v, want FarNote", far.Position)
	}
}

func TestFirstReferenceNoteNumberRecorded(t *testing.T) {
	tr := NewTracker(5)
	tr.Resolve("smith2000", nil, value.PlacementNote, 3)
	tr.Resolve("jones1999", nil, value.PlacementNote, 4)
	pos := tr.Resolve("smith2000", nil, value.PlacementNote, 10)
	if pos.FirstReferenceNoteNumber == nil || *pos.FirstReferenceNoteNumber != 3 {
		t.Fatalf("FirstReferenceNoteNumber = %v, want 3", pos.FirstReferenceNoteNumber)
	}
}
