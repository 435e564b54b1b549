package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderFlags sharedFlags

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every cluster in document order",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildProcessor(renderFlags)
		if err != nil {
			return err
		}
		clusters, err := loadClusterIDsInOrder(renderFlags.clustersPath)
		if err != nil {
			return err
		}
		for _, id := range clusters {
			out, err := p.RenderCluster(id)
			if err != nil {
				return err
			}
			fmt.Println(out)
		}
		return nil
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderFlags.stylePath, "style", "", "style file path or embedded fixture name")
	f.StringVar(&renderFlags.refsPath, "refs", "", "references YAML file path")
	f.StringVar(&renderFlags.clustersPath, "clusters", "", "clusters YAML file path")
	f.StringVar(&renderFlags.locale, "locale", "", "requested locale (defaults to the style's default-locale)")
	f.StringVar(&renderFlags.format, "format", "plain", "output format: plain or html")
	f.StringVar(&renderFlags.localeDir, "locale-file", "", "additional locale YAML file overriding an embedded bundle")
	renderCmd.MarkFlagRequired("style")
	renderCmd.MarkFlagRequired("refs")
	renderCmd.MarkFlagRequired("clusters")
}
