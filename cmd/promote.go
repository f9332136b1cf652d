package cmd

import (
	"github.com/spf13/cobra"

	log "github.com/fleetops/fleetctl/pkg/logger"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/lock"
	"github.com/fleetops/fleetctl/pkg/promote"
	"github.com/fleetops/fleetctl/pkg/resolve"
)

// promoteCmd advances a patch one step through the promotion sequence.
var promoteCmd = &cobra.Command{
	Use:   "promote <cluster-type> <application> <patch-id>",
	Short: "Promote a patch to the next location in the sequence",
	Long:  `This command locates every copy of the patch, validates that its frontier has no gaps, copies it to the next promotion position, and consolidates copies upward - merging the patch into base values once every environment holds it`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		clusterType, app, patchID := args[0], args[1], args[2]

		e, err := buildEngine()
		if err != nil {
			return err
		}

		granularity, err := dimension.ParseLevel(fleetConfig.Settings.PromotionLevel)
		if err != nil {
			return err
		}

		resolver := resolve.NewResolver(e.tree, e.model)
		locker := lock.NewFlockLocker(fleetConfig.ConfigDir)
		promoter := promote.NewPromoter(e.tree, e.model, resolver, granularity, locker)

		outcome, err := promoter.Promote(clusterType, app, patchID)
		if err != nil {
			return err
		}

		switch {
		case outcome.Integrated:
			log.Info("Patch integrated into base values", "patch", patchID, "application", app)
		case outcome.Plan.Action == promote.ActionFinalIntegration:
			log.Info("Patch covers every position; awaiting final integration", "patch", patchID)
		default:
			log.Info("Patch promoted", "patch", patchID, "to", outcome.Plan.Location.String())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(promoteCmd)
}
