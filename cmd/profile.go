package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/repscan/common"
	"github.com/tranvictor/repscan/scoring"
	"github.com/tranvictor/repscan/util"
)

var (
	ProfileJSON bool
	ProfileRole bool
)

var profileCmd = &cobra.Command{
	Use:   "profile [address]",
	Short: "Show the reputation profile of an address",
	Long: `Builds the reputation profile of an address the same way the HTTP service
does. Token, NFT and governance reads that fail are shown as failed or zero,
a failing chain read fails the whole command.

With --role the profile is also sent to the scoring service and the predicted
role is shown below it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := common.NormalizeAddress(args[0])
		if err != nil {
			return err
		}
		network, err := currentNetwork()
		if err != nil {
			return err
		}

		agg, r := newAggregator(network, nil)
		defer r.Close()

		ctx := cmd.Context()
		stop := func() {}
		if !ProfileJSON {
			stop = appUI.Spinner(fmt.Sprintf("Reading %s on %s...", address, network.GetName()))
		}
		p, err := agg.Aggregate(ctx, address)
		var role *scoring.Result
		if err == nil && ProfileRole {
			role, err = newScorer().CalculateRole(ctx, scoring.FromProfile(p))
		}
		stop()
		if err != nil {
			return err
		}

		if ProfileJSON {
			out := struct {
				Profile *util.ProfileDisplay `json:"profile"`
				Role    *util.RoleDisplay    `json:"role,omitempty"`
			}{Profile: util.ProfileView(p, network)}
			if role != nil {
				out.Role = util.RoleView(role)
			}
			enc := json.NewEncoder(appUI.Writer())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		util.DisplayProfile(appUI, p, network)
		if role != nil {
			util.DisplayRole(appUI, role)
		}
		return nil
	},
}

func init() {
	profileCmd.Flags().BoolVar(&ProfileJSON, "json", false, "print the profile as json")
	profileCmd.Flags().BoolVar(&ProfileRole, "role", false, "also predict the address's role with the scoring service")
	rootCmd.AddCommand(profileCmd)
}
