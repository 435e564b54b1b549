// Package fixture is the collaborator this core treats as external (§1,
// §6): it decodes YAML documents — standing in for the CSL/locale XML
// parsers the spec carves out of scope — into the plain Go data the style,
// locale, and value packages define. It is the only package in this module
// that imports gopkg.in/yaml.v3 or embeds data files, grounded on the
// teacher's mapping.LoadProfile/NewProfileRegistry embed+yaml.Unmarshal
// pattern (mapping/loader.go).
package fixture

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csl-go/citeproc/internal/locale"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type localeTermDoc struct {
	Name     string `yaml:"name"`
	Form     string `yaml:"form"`
	Singular string `yaml:"singular"`
	Plural   string `yaml:"plural"`
	Gender   string `yaml:"gender"`
}

type localeDatePartDoc struct {
	Name   string `yaml:"name"`
	Form   string `yaml:"form"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

type localeDateFormatDoc struct {
	Form  string              `yaml:"form"`
	Parts []localeDatePartDoc `yaml:"parts"`
}

type localeDoc struct {
	Lang               string                `yaml:"lang"`
	PunctuationInQuote bool                  `yaml:"punctuation-in-quote"`
	OrdinalTerms       map[string]string     `yaml:"ordinal-terms"`
	Terms              []localeTermDoc       `yaml:"terms"`
	DateFormats        []localeDateFormatDoc `yaml:"date-formats"`
}

// LocaleRegistry is a locale.Fetcher backed by YAML bundles, one file per
// language (§6 Fetcher collaborator).
type LocaleRegistry struct {
	bundles map[string]*locale.Bundle
}

// NewLocaleRegistry loads every locales/*.yaml file embedded in the binary.
func NewLocaleRegistry() (*LocaleRegistry, error) {
	r := &LocaleRegistry{bundles: make(map[string]*locale.Bundle)}
	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading embedded locales: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := embeddedLocales.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		b, err := parseLocale(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", e.Name(), err)
		}
		r.bundles[b.Lang] = b
	}
	return r, nil
}

// Register adds or replaces a bundle directly, for callers supplying a
// custom or user-provided locale on top of the embedded defaults.
func (r *LocaleRegistry) Register(b *locale.Bundle) {
	r.bundles[b.Lang] = b
}

// LoadLocaleFile reads and registers one additional locale YAML file from
// disk, overriding any embedded bundle for the same language.
func (r *LocaleRegistry) LoadLocaleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading locale file: %w", err)
	}
	b, err := parseLocale(data)
	if err != nil {
		return fmt.Errorf("parsing locale file: %w", err)
	}
	r.bundles[b.Lang] = b
	return nil
}

// Fetch implements locale.Fetcher.
func (r *LocaleRegistry) Fetch(lang string) (*locale.Bundle, bool) {
	b, ok := r.bundles[lang]
	return b, ok
}

func parseLocale(data []byte) (*locale.Bundle, error) {
	var doc localeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	b := &locale.Bundle{
		Lang:               doc.Lang,
		Terms:              make(map[string]map[string]locale.Term),
		DateFormats:        make(map[string]locale.DateFormat),
		PunctuationInQuote: doc.PunctuationInQuote,
		OrdinalTerms:       doc.OrdinalTerms,
	}
	for _, t := range doc.Terms {
		form := t.Form
		if form == "" {
			form = "long"
		}
		if b.Terms[t.Name] == nil {
			b.Terms[t.Name] = make(map[string]locale.Term)
		}
		b.Terms[t.Name][form] = locale.Term{
			Singular: t.Singular,
			Plural:   t.Plural,
			Gender:   genderFromString(t.Gender),
		}
	}
	for _, df := range doc.DateFormats {
		parts := make([]locale.DatePartFormat, 0, len(df.Parts))
		for _, p := range df.Parts {
			parts = append(parts, locale.DatePartFormat{Name: p.Name, Form: p.Form, Prefix: p.Prefix, Suffix: p.Suffix})
		}
		b.DateFormats[df.Form] = locale.DateFormat{Parts: parts}
	}
	return b, nil
}

func genderFromString(s string) locale.Gender {
	switch s {
	case "masculine":
		return locale.GenderMasculine
	case "feminine":
		return locale.GenderFeminine
	default:
		return locale.GenderNeuter
	}
}
