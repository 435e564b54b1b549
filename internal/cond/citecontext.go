package cond

import "github.com/csl-go/citeproc/internal/value"

// CiteContext is the reference Context implementation for a real, already
// cite-positioned render (§4.2). internal/position supplies Pos;
// internal/disambig supplies DisambActivateFrom once it knows how many
// disambiguate="true" branches, in document order, should currently read as
// active (§4.8 pass 4).
type CiteContext struct {
	Ref      *value.Reference
	Pos      value.Position
	PosKnown bool
	Loc      *value.Locator

	// DisambActivateFrom is the 1-indexed occurrence number from which
	// disambiguate="true" branches start reading as active; 0 means none
	// are active yet.
	DisambActivateFrom int

	YearSuffixSet bool

	disambSeen int
}

func (c *CiteContext) Reference() *value.Reference { return c.Ref }

func (c *CiteContext) Position() (string, bool) {
	if !c.PosKnown {
		return "", false
	}
	return c.Pos.String(), true
}

func (c *CiteContext) LocatorType() (value.LocatorType, bool) {
	if c.Loc == nil {
		return "", false
	}
	return c.Loc.Type, true
}

func (c *CiteContext) HasLocator() bool { return c.Loc != nil }

func (c *CiteContext) CurrentDisambCount() int { return c.DisambActivateFrom }

// DisambiguateObserved increments the occurrence counter and reports whether
// this particular <choose> branch, in document order, is at or past the
// activation threshold.
func (c *CiteContext) DisambiguateObserved() bool {
	c.disambSeen++
	if c.DisambActivateFrom <= 0 {
		return false
	}
	return c.disambSeen >= c.DisambActivateFrom
}

func (c *CiteContext) YearSuffixAssigned() bool { return c.YearSuffixSet }
