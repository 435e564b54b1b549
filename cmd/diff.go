package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var diffFlags sharedFlags

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Report which clusters changed since rendering the document once",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildProcessor(diffFlags)
		if err != nil {
			return err
		}
		ids, err := loadClusterIDsInOrder(diffFlags.clustersPath)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := p.RenderCluster(id); err != nil {
				return err
			}
		}
		changed := p.Diff()
		for _, id := range changed {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	f := diffCmd.Flags()
	f.StringVar(&diffFlags.stylePath, "style", "", "style file path or embedded fixture name")
	f.StringVar(&diffFlags.refsPath, "refs", "", "references YAML file path")
	f.StringVar(&diffFlags.clustersPath, "clusters", "", "clusters YAML file path")
	f.StringVar(&diffFlags.locale, "locale", "", "requested locale (defaults to the style's default-locale)")
	f.StringVar(&diffFlags.format, "format", "plain", "output format: plain or html")
	f.StringVar(&diffFlags.localeDir, "locale-file", "", "additional locale YAML file overriding an embedded bundle")
	diffCmd.MarkFlagRequired("style")
	diffCmd.MarkFlagRequired("refs")
	diffCmd.MarkFlagRequired("clusters")
}
