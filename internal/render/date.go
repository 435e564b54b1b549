package render

import (
	"fmt"
	"strings"

	"github.com/csl-go/citeproc/internal/ir"
	"github.com/csl-go/citeproc/internal/locale"
	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// renderDate renders a <date>, either via the locale's text/numeric date
// format or, for an independently-configured date, the element's own
// DatePart list (§4.3).
func renderDate(el style.Element, s *State) (ir.NodeIndex, ir.GroupVars) {
	if s.suppressed[el.DateVariable] {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	d, ok := s.Ref.DateVariable(el.DateVariable)
	if !ok || (d.IsLiteral() && d.Literal == "") {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	if d.IsLiteral() {
		idx := s.emit(el.Formatting, s.Format.TextNode(d.Literal), ir.EdgeOutput, ir.Important)
		return idx, ir.Important
	}

	parts := el.Independent
	if len(parts) == 0 {
		form := el.DateForm
		if form == "" {
			form = "numeric"
		}
		if df, ok := s.Locale.DateFormat(form); ok {
			parts = localePartsToDateParts(df)
		}
	}

	text := formatDateParts(d, parts, s.Locale)
	if text == "" {
		return s.emit(el.Formatting, "", ir.EdgeOutput, ir.Missing), ir.Missing
	}
	idx := s.emit(el.Formatting, s.Format.TextNode(text), ir.EdgeOutput, ir.Important)
	return idx, ir.Important
}

func localePartsToDateParts(df locale.DateFormat) []style.DatePart {
	out := make([]style.DatePart, 0, len(df.Parts))
	for _, p := range df.Parts {
		out = append(out, style.DatePart{Name: p.Name, Form: p.Form, Prefix: p.Prefix, Suffix: p.Suffix})
	}
	return out
}

func formatDateParts(d value.DateOrRange, parts []style.DatePart, loc *locale.Set) string {
	if d.IsRange() {
		a, b := d.Range[0], d.Range[1]
		return formatOneDate(a, parts, loc) + "–" + formatOneDate(b, parts, loc)
	}
	if d.Single == nil {
		return ""
	}
	return formatOneDate(*d.Single, parts, loc)
}

func formatOneDate(d value.Date, parts []style.DatePart, loc *locale.Set) string {
	var b strings.Builder
	for _, p := range parts {
		text := formatDatePart(d, p, loc)
		if text == "" {
			continue
		}
		b.WriteString(p.Prefix)
		b.WriteString(text)
		b.WriteString(p.Suffix)
	}
	return b.String()
}

var monthNames = []string{
	"", "month-01", "month-02", "month-03", "month-04", "month-05", "month-06",
	"month-07", "month-08", "month-09", "month-10", "month-11", "month-12",
	"season-01", "season-02", "season-03", "season-04",
}

func formatDatePart(d value.Date, p style.DatePart, loc *locale.Set) string {
	switch p.Name {
	case "year":
		if d.Year == 0 {
			return ""
		}
		return fmt.Sprintf("%d", d.Year)
	case "month":
		if d.Month == 0 {
			return ""
		}
		if p.Form == "numeric" || p.Form == "numeric-leading-zeros" {
			if p.Form == "numeric-leading-zeros" {
				return fmt.Sprintf("%02d", d.Month)
			}
			return fmt.Sprintf("%d", d.Month)
		}
		termForm := "long"
		if p.Form == "short" {
			termForm = "short"
		}
		if int(d.Month) < len(monthNames) {
			if t, ok := loc.Term(monthNames[d.Month], termForm); ok {
				return t.Singular
			}
		}
		return ""
	case "day":
		if d.Day == 0 {
			return ""
		}
		if p.Form == "ordinal" {
			suf, ok := loc.Ordinal(d.Day)
			if !ok {
				suf = ""
			}
			return fmt.Sprintf("%d%s", d.Day, suf)
		}
		return fmt.Sprintf("%d", d.Day)
	default:
		return ""
	}
}
