package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/resolve"
	"github.com/fleetops/fleetctl/pkg/utils"
)

// describeCmd groups read-only inspection commands.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Execute 'describe' commands",
	Long:  `This command shows resolved fleet configuration`,
}

// describeConfigCmd prints the resolved configuration of one application for
// one target.
var describeConfigCmd = &cobra.Command{
	Use:   "config <cluster-type> <application> <environment>/<sector>/<region>",
	Short: "Show the resolved configuration of an application for one target",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		clusterType, app := args[0], args[1]

		parts := strings.Split(args[2], "/")
		if len(parts) != 3 {
			return fmt.Errorf("target must be <environment>/<sector>/<region>, got `%s`", args[2])
		}
		target := dimension.Target{Environment: parts[0], Sector: parts[1], Region: parts[2]}

		e, err := buildEngine()
		if err != nil {
			return err
		}

		result, err := resolve.NewResolver(e.tree, e.model).Resolve(clusterType, app, target)
		if err != nil {
			return err
		}

		out, err := utils.ConvertToYAML(result.Config)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	describeCmd.AddCommand(describeConfigCmd)
	RootCmd.AddCommand(describeCmd)
}
