package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/repscan/networks"
	"github.com/tranvictor/repscan/util"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [query]",
	Short: "List the tokens a profile reads balances of",
	Long: `Lists the ERC20 tokens of the current network. An optional query fuzzy matches
symbols and names, e.g. "repscan tokens usd".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		network, err := currentNetwork()
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		util.DisplayTokens(appUI, network, networks.FindTokens(network, query))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
