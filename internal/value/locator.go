package value

// LocatorType enumerates the CSL locator kinds ("page", "paragraph",
// "chapter", ...). Represented as a string rather than a closed enum because
// styles and locales key label lookups by this same string (§4.3 Label).
type LocatorType string

const (
	LocatorPage      LocatorType = "page"
	LocatorParagraph LocatorType = "paragraph"
	LocatorChapter   LocatorType = "chapter"
	LocatorSection   LocatorType = "section"
	LocatorVerse     LocatorType = "verse"
	LocatorVolume    LocatorType = "volume"
	LocatorIssue     LocatorType = "issue"
	LocatorFigure    LocatorType = "figure"
	LocatorFolio     LocatorType = "folio"
	LocatorNote      LocatorType = "note"
)

// Locator is a cite-level locator: a type tag plus a numeric-like value
// (§3). Page-range compression (§4.3) only applies when Type == LocatorPage.
type Locator struct {
	Type  LocatorType
	Value NumericValue
}

// IsPage reports the locator_is_page FreeCond condition (§3 FreeCond).
func (l *Locator) IsPage() bool {
	return l != nil && l.Type == LocatorPage
}
