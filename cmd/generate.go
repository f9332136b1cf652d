package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fleetops/fleetctl/pkg/generate"
)

// generateCmd resolves every (application, target) pair and renders the
// output.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resolve and render configuration for every target",
	Long:  `This command resolves the merged configuration of every application for every deployment target and renders the per-target output into the rendered directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}

		var renderer generate.Renderer = generate.NopRenderer{}
		if render, _ := cmd.Flags().GetBool("render"); render {
			renderer = generate.NewHelmRenderer(e.fs, fleetConfig.TemplatesDir)
		}

		generator := generate.NewGenerator(e.tree, e.model, renderer, e.fs, fleetConfig.RenderedDir)
		return generator.Generate(cmd.Context(), e.clusterTypes())
	},
}

func init() {
	generateCmd.Flags().Bool("render", true, "Render final manifests with the external renderer after resolving values")
	RootCmd.AddCommand(generateCmd)
}
