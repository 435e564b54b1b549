package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csl-go/citeproc/internal/value"
)

// referenceNameDoc accepts either a bare literal string or a structured
// personal name; exactly one of Literal or Family should be set, mirroring
// value.Name's own IsLiteral discriminant.
type referenceNameDoc struct {
	Literal             string `yaml:"literal"`
	Family              string `yaml:"family"`
	Given               string `yaml:"given"`
	DroppingParticle    string `yaml:"dropping-particle"`
	NonDroppingParticle string `yaml:"non-dropping-particle"`
	Suffix              string `yaml:"suffix"`
	CommaSuffix         bool   `yaml:"comma-suffix"`
	StaticOrdering      bool   `yaml:"static-ordering"`
}

type referenceDoc struct {
	ID       string                         `yaml:"id"`
	Type     string                         `yaml:"type"`
	Ordinary map[string]string              `yaml:"ordinary"`
	Number   map[string]string              `yaml:"number"`
	Names    map[string][]referenceNameDoc  `yaml:"names"`
	Dates    map[string]referenceDateDoc    `yaml:"dates"`
}

type referenceDateDoc struct {
	Raw       string `yaml:"raw"`
	RawEnd    string `yaml:"raw-end"`
	Literal   string `yaml:"literal"`
	Uncertain bool   `yaml:"uncertain"`
}

// LoadReferences reads a YAML file holding a list of bibliographic records
// and returns them converted to value.Reference, for feeding into a
// value.Store (§6 "set/replace references").
func LoadReferences(path string) ([]*value.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference file: %w", err)
	}
	return parseReferences(data)
}

func parseReferences(data []byte) ([]*value.Reference, error) {
	var docs []referenceDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing reference YAML: %w", err)
	}
	refs := make([]*value.Reference, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, toReference(d))
	}
	return refs, nil
}

func toReference(d referenceDoc) *value.Reference {
	ref := value.NewReference(d.ID, d.Type)
	for k, v := range d.Ordinary {
		ref.Ordinary[k] = v
	}
	for k, raw := range d.Number {
		ref.Number[k] = value.ParseNumeric(raw)
	}
	for variable, names := range d.Names {
		converted := make([]value.Name, 0, len(names))
		for _, n := range names {
			converted = append(converted, toName(n))
		}
		ref.Names[variable] = converted
	}
	for variable, dd := range d.Dates {
		ref.Dates[variable] = toDateOrRange(dd)
	}
	return ref
}

func toName(d referenceNameDoc) value.Name {
	if d.Literal != "" {
		return value.Name{Literal: d.Literal, IsLiteral: true}
	}
	if d.Family == "" && d.Given == "" {
		return value.Name{}
	}
	return value.Name{
		Family:              d.Family,
		Given:               d.Given,
		DroppingParticle:    d.DroppingParticle,
		NonDroppingParticle: d.NonDroppingParticle,
		Suffix:              d.Suffix,
		CommaSuffix:         d.CommaSuffix,
		StaticOrdering:      d.StaticOrdering,
	}
}

func toDateOrRange(d referenceDateDoc) value.DateOrRange {
	if d.Literal != "" {
		return value.DateOrRange{Literal: d.Literal}
	}
	if d.RawEnd != "" {
		start := value.ParseDate(d.Raw)
		end := value.ParseDate(d.RawEnd)
		if start.Single != nil && end.Single != nil {
			return value.DateOrRange{Range: &[2]value.Date{*start.Single, *end.Single}, Uncertain: d.Uncertain}
		}
		return value.DateOrRange{Literal: d.Raw + "/" + d.RawEnd}
	}
	dr := value.ParseDate(d.Raw)
	dr.Uncertain = d.Uncertain || dr.Uncertain
	return dr
}
