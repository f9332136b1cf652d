package cmd

import (
	"github.com/spf13/cobra"

	errUtils "github.com/fleetops/fleetctl/errors"
	log "github.com/fleetops/fleetctl/pkg/logger"

	cfg "github.com/fleetops/fleetctl/pkg/config"
	"github.com/fleetops/fleetctl/pkg/schema"
)

var fleetConfig schema.FleetConfiguration

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "fleetctl",
	Short: "Deployment configuration and patch promotion for application fleets",
	Long: `fleetctl resolves layered deployment configuration for every application
across a multi-dimensional hierarchy of targets (environment, sector, region)
and manages the lifecycle of configuration patches as they are promoted,
consolidated, and finally integrated into base values.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		var err error
		fleetConfig, err = cfg.InitCliConfig()
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("logs-level"); level != "" {
			fleetConfig.Logs.Level = level
		}
		return log.SetLevelString(fleetConfig.Logs.Level)
	},
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main(). Any engine error terminates with a non-zero status.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		errUtils.CheckErrorPrintAndExit(err)
	}
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "", "Logs level: debug, info, warn, error")
}
