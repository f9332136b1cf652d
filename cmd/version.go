package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetops/fleetctl/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fleetctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
