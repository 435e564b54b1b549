package automaton

import "github.com/csl-go/citeproc/internal/value"

// refContext implements cond.Context against a fixed FreeCond assignment
// instead of a concrete cite (§4.6 step 1). disambActivateFrom simulates
// progressive activation of disambiguate="true" branches per current_disamb_count
// (§3 cond.Context doc).
type refContext struct {
	ref                *value.Reference
	fc                 FreeCond
	disambActivateFrom int
	disambSeen         int
}

func newRefContext(ref *value.Reference, fc FreeCond, disambActivateFrom int) *refContext {
	return &refContext{ref: ref, fc: fc, disambActivateFrom: disambActivateFrom}
}

func (c *refContext) Reference() *value.Reference { return c.ref }

func (c *refContext) Position() (string, bool) {
	s := c.fc.positionString()
	return s, s != ""
}

func (c *refContext) LocatorType() (value.LocatorType, bool) {
	if !c.fc.hasLocator() {
		return "", false
	}
	if c.fc.locatorIsPage() {
		return value.LocatorPage, true
	}
	return value.LocatorType("locator"), true
}

func (c *refContext) HasLocator() bool { return c.fc.hasLocator() }

func (c *refContext) CurrentDisambCount() int {
	if c.fc.disambiguateActive() {
		return c.disambActivateFrom
	}
	return 0
}

func (c *refContext) DisambiguateObserved() bool {
	c.disambSeen++
	return c.fc.disambiguateActive() && c.disambSeen >= c.disambActivateFrom
}

func (c *refContext) YearSuffixAssigned() bool { return c.fc.yearSuffixAssigned() }
