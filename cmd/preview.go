package cmd

import (
	"fmt"

	"github.com/csl-go/citeproc/internal/value"
	"github.com/spf13/cobra"
)

var previewFlags sharedFlags
var previewRef string
var previewAfter int
var previewID int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a candidate cite as if inserted, without mutating the document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewRef == "" {
			return fmt.Errorf("--ref is required")
		}
		p, err := buildProcessor(previewFlags)
		if err != nil {
			return err
		}
		candidate := &value.Cluster{ID: previewID, Cites: []value.Cite{{RefID: previewRef}}}
		out, err := p.PreviewCite(candidate, previewAfter)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewFlags.stylePath, "style", "", "style file path or embedded fixture name")
	f.StringVar(&previewFlags.refsPath, "refs", "", "references YAML file path")
	f.StringVar(&previewFlags.clustersPath, "clusters", "", "clusters YAML file path")
	f.StringVar(&previewFlags.locale, "locale", "", "requested locale (defaults to the style's default-locale)")
	f.StringVar(&previewFlags.format, "format", "plain", "output format: plain or html")
	f.StringVar(&previewFlags.localeDir, "locale-file", "", "additional locale YAML file overriding an embedded bundle")
	f.StringVar(&previewRef, "ref", "", "reference id to preview a cite for")
	f.IntVar(&previewAfter, "after", 0, "cluster id to insert the preview cite after (0 = start of document)")
	f.IntVar(&previewID, "id", -1, "candidate cluster id (must not collide with an existing cluster)")
	previewCmd.MarkFlagRequired("style")
	previewCmd.MarkFlagRequired("refs")
	previewCmd.MarkFlagRequired("clusters")
	previewCmd.MarkFlagRequired("ref")
}
