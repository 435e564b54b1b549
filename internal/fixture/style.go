package fixture

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csl-go/citeproc/internal/style"
)

//go:embed styles/*.yaml
var embeddedStyles embed.FS

// LoadStyle reads a style document from disk (§6 style-load input).
func LoadStyle(path string) (*style.Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style file: %w", err)
	}
	return parseStyle(data)
}

// LoadEmbeddedStyle reads one of the styles bundled into the binary by name
// (without the .yaml extension).
func LoadEmbeddedStyle(name string) (*style.Style, error) {
	data, err := embeddedStyles.ReadFile("styles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded style %q: %w", name, err)
	}
	return parseStyle(data)
}

type styleDoc struct {
	DefaultLocale               string                     `yaml:"default-locale"`
	GivenNameDisambiguationRule string                     `yaml:"given-name-disambiguation-rule"`
	NearNoteDistance            int                        `yaml:"near-note-distance"`
	Features                    map[string]bool            `yaml:"features"`
	Macros                      map[string][]elementDoc    `yaml:"macros"`
	Citation                    *citationDoc               `yaml:"citation"`
	Bibliography                *bibliographyDoc           `yaml:"bibliography"`
}

type layoutDoc struct {
	Elements  []elementDoc `yaml:"elements"`
	Delimiter string       `yaml:"delimiter"`
	Prefix    string       `yaml:"prefix"`
	Suffix    string       `yaml:"suffix"`
}

type nameInheritanceDoc struct {
	EtAlMin                int    `yaml:"et-al-min"`
	EtAlUseFirst           int    `yaml:"et-al-use-first"`
	EtAlUseLast            int    `yaml:"et-al-use-last"`
	EtAlSubsequentMin      int    `yaml:"et-al-subsequent-min"`
	EtAlSubsequentUseFirst int    `yaml:"et-al-subsequent-use-first"`
	GivenNameForm          string `yaml:"given-name-form"`
	Initialize             bool   `yaml:"initialize"`
	InitializeWithHyphen   bool   `yaml:"initialize-with-hyphen"`
	NameAsSortOrder        bool   `yaml:"name-as-sort-order"`
	Delimiter              string `yaml:"delimiter"`
	SortSeparator          string `yaml:"sort-separator"`
	And                    string `yaml:"and"`
	DelimiterPrecedesLast  string `yaml:"delimiter-precedes-last"`
}

type sortKeyDoc struct {
	Variable  string `yaml:"variable"`
	Ascending bool   `yaml:"ascending"`
}

type citationDoc struct {
	Layout           layoutDoc          `yaml:"layout"`
	Collapse         string             `yaml:"collapse"`
	YearSuffixRanged bool               `yaml:"year-suffix-ranged"`
	Sort             []sortKeyDoc       `yaml:"sort"`
	NameInheritance  nameInheritanceDoc `yaml:"name-inheritance"`
}

type bibliographyDoc struct {
	Layout           layoutDoc          `yaml:"layout"`
	Sort             []sortKeyDoc       `yaml:"sort"`
	SecondFieldAlign string             `yaml:"second-field-align"`
	EntrySpacing     int                `yaml:"entry-spacing"`
	LineSpacing      int                `yaml:"line-spacing"`
	HangingIndent    bool               `yaml:"hanging-indent"`
	NameInheritance  nameInheritanceDoc `yaml:"name-inheritance"`
}

type datePartDoc struct {
	Name   string `yaml:"name"`
	Form   string `yaml:"form"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

type primDoc struct {
	Kind        string   `yaml:"kind"`
	Variable    string   `yaml:"variable"`
	Position    string   `yaml:"position"`
	LocatorType string   `yaml:"locator-type"`
	Types       []string `yaml:"types"`
}

type condSetDoc struct {
	Match string    `yaml:"match"`
	Prims []primDoc `yaml:"prims"`
}

type conditionsDoc struct {
	Match    string       `yaml:"match"`
	CondSets []condSetDoc `yaml:"cond-sets"`
}

type branchDoc struct {
	Conditions conditionsDoc `yaml:"conditions"`
	Else       bool          `yaml:"else"`
	Elements   []elementDoc  `yaml:"elements"`
}

// elementDoc mirrors style.Element's tagged union as a YAML node discriminated
// by "kind", the same way style.Element itself is discriminated by Kind
// (§2, §4.3).
type elementDoc struct {
	Kind string `yaml:"kind"`

	Prefix   string `yaml:"prefix"`
	Suffix   string `yaml:"suffix"`
	Display  string `yaml:"display"`
	TextCase string `yaml:"text-case"`
	Quotes   bool   `yaml:"quotes"`
	Bold     bool   `yaml:"bold"`
	Italic   bool   `yaml:"italic"`

	Value    string `yaml:"value"`
	Term     string `yaml:"term"`
	Variable string `yaml:"variable"`
	Macro    string `yaml:"macro"`
	Form     string `yaml:"form"`

	NumberVariable string `yaml:"number-variable"`
	NumberForm     string `yaml:"number-form"`

	LabelVariable string `yaml:"label-variable"`
	LabelForm     string `yaml:"label-form"`
	LabelPlural   string `yaml:"label-plural"`

	DateVariable string        `yaml:"date-variable"`
	DateForm     string        `yaml:"date-form"`
	DateParts    string        `yaml:"date-parts"`
	Independent  []datePartDoc `yaml:"independent"`

	NameVariables []string             `yaml:"variables"`
	NameOptions   nameInheritanceDoc   `yaml:"name-options"`
	Substitute    [][]elementDoc       `yaml:"substitute"`
	NameLabel     *elementDoc          `yaml:"label"`

	Children  []elementDoc `yaml:"elements"`
	Delimiter string       `yaml:"delimiter"`

	Branches []branchDoc `yaml:"branches"`
}

func parseStyle(data []byte) (*style.Style, error) {
	var doc styleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing style YAML: %w", err)
	}

	st := &style.Style{
		DefaultLocale:               doc.DefaultLocale,
		Features:                    doc.Features,
		GivenNameDisambiguationRule: givenNameRuleFromString(doc.GivenNameDisambiguationRule),
		NearNoteDistance:            doc.NearNoteDistance,
	}
	if st.DefaultLocale == "" {
		st.DefaultLocale = "en"
	}

	if len(doc.Macros) > 0 {
		st.Macros = make(map[string][]style.Element, len(doc.Macros))
		for name, elems := range doc.Macros {
			st.Macros[name] = toElements(elems)
		}
	}

	if doc.Citation != nil {
		st.Citation = &style.Citation{
			Layout:           toLayout(doc.Citation.Layout),
			Collapse:         collapseModeFromString(doc.Citation.Collapse),
			YearSuffixRanged: doc.Citation.YearSuffixRanged,
			Sort:             toSortKeys(doc.Citation.Sort),
			NameInheritance:  toNameInheritance(doc.Citation.NameInheritance),
		}
	}
	if doc.Bibliography != nil {
		st.Bibliography = &style.Bibliography{
			Layout:           toLayout(doc.Bibliography.Layout),
			Sort:             toSortKeys(doc.Bibliography.Sort),
			SecondFieldAlign: secondFieldAlignFromString(doc.Bibliography.SecondFieldAlign),
			EntrySpacing:     doc.Bibliography.EntrySpacing,
			LineSpacing:      doc.Bibliography.LineSpacing,
			HangingIndent:    doc.Bibliography.HangingIndent,
			NameInheritance:  toNameInheritance(doc.Bibliography.NameInheritance),
		}
	}
	return st, nil
}

func toLayout(l layoutDoc) style.Layout {
	return style.Layout{Elements: toElements(l.Elements), Delimiter: l.Delimiter, Prefix: l.Prefix, Suffix: l.Suffix}
}

func toSortKeys(keys []sortKeyDoc) []style.SortKey {
	if len(keys) == 0 {
		return nil
	}
	out := make([]style.SortKey, len(keys))
	for i, k := range keys {
		out[i] = style.SortKey{Variable: k.Variable, Ascending: k.Ascending}
	}
	return out
}

func toNameInheritance(d nameInheritanceDoc) style.NameInheritance {
	return style.NameInheritance{
		EtAlMin:                d.EtAlMin,
		EtAlUseFirst:           d.EtAlUseFirst,
		EtAlUseLast:            d.EtAlUseLast,
		EtAlSubsequentMin:      d.EtAlSubsequentMin,
		EtAlSubsequentUseFirst: d.EtAlSubsequentUseFirst,
		GivenNameForm:          d.GivenNameForm,
		Initialize:             d.Initialize,
		InitializeWithHyphen:   d.InitializeWithHyphen,
		NameAsSortOrder:        d.NameAsSortOrder,
		Delimiter:              d.Delimiter,
		SortSeparator:          d.SortSeparator,
		And:                    d.And,
		DelimiterPrecedesLast:  d.DelimiterPrecedesLast,
	}
}

func toElements(docs []elementDoc) []style.Element {
	if len(docs) == 0 {
		return nil
	}
	out := make([]style.Element, len(docs))
	for i, d := range docs {
		out[i] = toElement(d)
	}
	return out
}

func toElement(d elementDoc) style.Element {
	el := style.Element{
		Kind: elementKindFromString(d.Kind),
		Formatting: style.Formatting{
			Prefix:   d.Prefix,
			Suffix:   d.Suffix,
			Display:  d.Display,
			TextCase: d.TextCase,
			Quotes:   d.Quotes,
			Bold:     d.Bold,
			Italic:   d.Italic,
		},
		Value:          d.Value,
		Term:           d.Term,
		Variable:       d.Variable,
		Macro:          d.Macro,
		Form:           d.Form,
		NumberVariable: d.NumberVariable,
		NumberForm:     d.NumberForm,
		LabelVariable:  d.LabelVariable,
		LabelForm:      d.LabelForm,
		LabelPlural:    d.LabelPlural,
		DateVariable:   d.DateVariable,
		DateForm:       d.DateForm,
		DateParts:      d.DateParts,
		NameVariables:  d.NameVariables,
		NameOptions:    toNameInheritance(d.NameOptions),
		Children:       toElements(d.Children),
		Delimiter:      d.Delimiter,
	}
	for _, p := range d.Independent {
		el.Independent = append(el.Independent, style.DatePart{Name: p.Name, Form: p.Form, Prefix: p.Prefix, Suffix: p.Suffix})
	}
	for _, sub := range d.Substitute {
		el.Substitute = append(el.Substitute, toElements(sub))
	}
	if d.NameLabel != nil {
		lbl := toElement(*d.NameLabel)
		el.NameLabel = &lbl
	}
	for _, b := range d.Branches {
		el.Branches = append(el.Branches, toBranch(b))
	}
	return el
}

func toBranch(d branchDoc) style.Branch {
	return style.Branch{
		Conditions: toConditions(d.Conditions),
		IsElse:     d.Else,
		Elements:   toElements(d.Elements),
	}
}

func toConditions(d conditionsDoc) style.Conditions {
	c := style.Conditions{Match: matchFromString(d.Match)}
	for _, cs := range d.CondSets {
		c.CondSets = append(c.CondSets, toCondSet(cs))
	}
	return c
}

func toCondSet(d condSetDoc) style.CondSet {
	cs := style.CondSet{Match: matchFromString(d.Match)}
	for _, p := range d.Prims {
		cs.Prims = append(cs.Prims, style.Prim{
			Kind:        primKindFromString(p.Kind),
			Variable:    p.Variable,
			Position:    p.Position,
			LocatorType: p.LocatorType,
			Types:       p.Types,
		})
	}
	return cs
}

func elementKindFromString(s string) style.ElementKind {
	switch s {
	case "number":
		return style.ElemNumber
	case "label":
		return style.ElemLabel
	case "date":
		return style.ElemDate
	case "names":
		return style.ElemNames
	case "group":
		return style.ElemGroup
	case "choose":
		return style.ElemChoose
	default:
		return style.ElemText
	}
}

func matchFromString(s string) style.Match {
	switch s {
	case "all":
		return style.MatchAll
	case "none":
		return style.MatchNone
	case "nand":
		return style.MatchNand
	default:
		return style.MatchAny
	}
}

func primKindFromString(s string) style.PrimKind {
	switch s {
	case "is-numeric":
		return style.CondIsNumeric
	case "position":
		return style.CondPosition
	case "locator-type":
		return style.CondLocatorType
	case "type":
		return style.CondType
	case "disambiguate":
		return style.CondDisambiguate
	case "has-year-only":
		return style.CondHasYearOnly
	case "has-month-or-season":
		return style.CondHasMonthOrSeason
	case "has-day":
		return style.CondHasDay
	case "is-uncertain-date":
		return style.CondIsUncertainDate
	default:
		return style.CondVariable
	}
}

func collapseModeFromString(s string) style.CollapseMode {
	switch s {
	case "citation-number":
		return style.CollapseCitationNumber
	case "year":
		return style.CollapseYear
	case "year-suffix":
		return style.CollapseYearSuffix
	case "year-suffix-ranged":
		return style.CollapseYearSuffixRanged
	default:
		return style.CollapseNone
	}
}

func secondFieldAlignFromString(s string) style.SecondFieldAlign {
	switch s {
	case "flush":
		return style.SecondFieldAlignFlush
	case "margin":
		return style.SecondFieldAlignMargin
	default:
		return style.SecondFieldAlignNone
	}
}

func givenNameRuleFromString(s string) style.GivenNameDisambiguationRule {
	switch s {
	case "all-names-with-initials":
		return style.AllNamesWithInitials
	case "primary-name":
		return style.PrimaryName
	case "primary-name-with-initials":
		return style.PrimaryNameWithInitials
	case "by-cite":
		return style.ByCite
	default:
		return style.AllNames
	}
}
