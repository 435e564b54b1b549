package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csl-go/citeproc/internal/value"
)

type locatorDoc struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type citeDoc struct {
	RefID   string       `yaml:"ref-id"`
	Prefix  string       `yaml:"prefix"`
	Suffix  string       `yaml:"suffix"`
	Locator *locatorDoc  `yaml:"locator"`
	Mode    string       `yaml:"mode"`
}

type clusterModeDoc struct {
	Kind           string `yaml:"kind"`
	CompositeInfix string `yaml:"composite-infix"`
	SuppressFirst  int    `yaml:"suppress-first"`
}

type clusterDoc struct {
	ID        int             `yaml:"id"`
	Placement string          `yaml:"placement"`
	Ordinal   int             `yaml:"ordinal"`
	Cites     []citeDoc       `yaml:"cites"`
	Mode      *clusterModeDoc `yaml:"mode"`
}

// PositionedCluster pairs a loaded cluster with the document position its
// fixture entry declared, since value.Cluster itself carries no placement
// bookkeeping (that lives in value.ClusterNumber, owned by whatever tracks
// document order).
type PositionedCluster struct {
	Cluster *value.Cluster
	Number  value.ClusterNumber
}

// LoadClusters reads a YAML file holding an ordered list of clusters (§3,
// §6 "cluster CRUD").
func LoadClusters(path string) ([]PositionedCluster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cluster file: %w", err)
	}
	return parseClusters(data)
}

func parseClusters(data []byte) ([]PositionedCluster, error) {
	var docs []clusterDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing cluster YAML: %w", err)
	}
	out := make([]PositionedCluster, 0, len(docs))
	for _, d := range docs {
		out = append(out, PositionedCluster{Cluster: toCluster(d), Number: clusterPlacement(d)})
	}
	return out, nil
}

func toCluster(d clusterDoc) *value.Cluster {
	c := &value.Cluster{ID: d.ID}
	for _, cd := range d.Cites {
		c.Cites = append(c.Cites, toCite(cd))
	}
	if d.Mode != nil {
		c.Mode = &value.ClusterModeSpec{
			Kind:           clusterModeKindFromString(d.Mode.Kind),
			CompositeInfix: d.Mode.CompositeInfix,
			SuppressFirst:  d.Mode.SuppressFirst,
		}
	}
	return c
}

func toCite(d citeDoc) value.Cite {
	c := value.Cite{
		RefID:  d.RefID,
		Prefix: d.Prefix,
		Suffix: d.Suffix,
		Mode:   citeModeFromString(d.Mode),
	}
	if d.Locator != nil {
		c.Locator = &value.Locator{
			Type:  value.LocatorType(d.Locator.Type),
			Value: value.ParseNumeric(d.Locator.Value),
		}
	}
	return c
}

func clusterPlacement(d clusterDoc) value.ClusterNumber {
	placement := value.PlacementInText
	if d.Placement == "note" {
		placement = value.PlacementNote
	}
	return value.ClusterNumber{Placement: placement, Ordinal: d.Ordinal}
}

func clusterModeKindFromString(s string) value.ClusterModeKind {
	switch s {
	case "composite":
		return value.ClusterComposite
	case "suppress-author":
		return value.ClusterSuppressAuthor
	case "author-only":
		return value.ClusterAuthorOnly
	default:
		return value.ClusterNormal
	}
}

func citeModeFromString(s string) value.CiteMode {
	switch s {
	case "author-only":
		return value.CiteModeAuthorOnly
	case "suppress-author":
		return value.CiteModeSuppressAuthor
	default:
		return value.CiteModeNormal
	}
}
