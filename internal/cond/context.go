// Package cond evaluates <choose> conditions (§4.2) against either a
// concrete cite context or a reference-only context used during DFA
// construction (§4.6). Both contexts implement the same accessor interface
// so the evaluator is written once and used in both situations.
package cond

import "github.com/csl-go/citeproc/internal/value"

// Context is the polymorphic evaluation context (§4.2). A real per-cite
// render implements this directly against the cite and its resolved
// position; a reference-only render (§4.6) implements it against a fixed
// FreeCond assignment.
type Context interface {
	Reference() *value.Reference

	// Position returns the cite's computed position, or ("", false) when
	// rendering reference-only (no concrete cite exists yet).
	Position() (string, bool)

	// LocatorType returns the active locator's type, if any.
	LocatorType() (value.LocatorType, bool)

	// HasLocator reports whether a locator is present at all.
	HasLocator() bool

	// CurrentDisambCount lets reference-only evaluation simulate
	// progressive activation of disambiguate="true" branches (§4.2): N
	// means the Nth and subsequent ConditionalDisamb branches encountered,
	// in document order, evaluate as active.
	CurrentDisambCount() int

	// DisambiguateObserved increments the "Nth disambiguate branch seen"
	// counter and reports whether this particular occurrence is currently
	// active. A concrete CiteContext reports false until internal/disambig
	// pass 4 has set its DisambActivateFrom, and from then on true for the
	// occurrences at or past that threshold.
	DisambiguateObserved() bool

	// YearSuffixAssigned reports whether year-suffix has been assigned yet
	// for this reference, for the locator/position/year-suffix FreeCond
	// axis to be evaluable during DFA construction.
	YearSuffixAssigned() bool
}
