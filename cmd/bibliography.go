package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bibliographyFlags sharedFlags
var bibliographyUncited string

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography",
	Short: "Render the bibliography for every cited reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildProcessor(bibliographyFlags)
		if err != nil {
			return err
		}
		if bibliographyUncited == "all" {
			p.SetUncited(uncitedAllMode(), nil)
		}
		entries, meta, err := p.RenderBibliography()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Println(e)
		}
		if meta.HangingIndent {
			fmt.Fprintln(cmd.ErrOrStderr(), "(hanging-indent style; rendered as plain lines)")
		}
		return nil
	},
}

func init() {
	f := bibliographyCmd.Flags()
	f.StringVar(&bibliographyFlags.stylePath, "style", "", "style file path or embedded fixture name")
	f.StringVar(&bibliographyFlags.refsPath, "refs", "", "references YAML file path")
	f.StringVar(&bibliographyFlags.clustersPath, "clusters", "", "clusters YAML file path")
	f.StringVar(&bibliographyFlags.locale, "locale", "", "requested locale (defaults to the style's default-locale)")
	f.StringVar(&bibliographyFlags.format, "format", "plain", "output format: plain or html")
	f.StringVar(&bibliographyFlags.localeDir, "locale-file", "", "additional locale YAML file overriding an embedded bundle")
	f.StringVar(&bibliographyUncited, "uncited", "", "'all' includes every reference, not just cited ones")
	bibliographyCmd.MarkFlagRequired("style")
	bibliographyCmd.MarkFlagRequired("refs")
	bibliographyCmd.MarkFlagRequired("clusters")
}
