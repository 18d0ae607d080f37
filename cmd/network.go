package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/repscan/networks"
	"github.com/tranvictor/repscan/util"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a network to the networks directory",
	Long: `--config takes a network config json file path OR a json string, in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"block_time": 12,
		"node_variable_name": "NETWORK_NAME_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"infura_subdomain": "mainnet",
		"ens_registry": "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e",
		"nft_indexer_url": "https://eth-mainnet.g.alchemy.com/nft/v3",
		"marketplace_url": "https://opensea.io/assets/ethereum",
		"tokens": [
			{"symbol": "DAI", "name": "Dai Stablecoin", "address": "0x6B175474E89094C44Da98b954EedeAC495271d0F"}
		]
	}

The network is saved to REPSCAN_NETWORKS_DIR and loaded by every later command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.NetworksDir == "" {
			return errors.New("REPSCAN_NETWORKS_DIR is not set, there is nowhere to save the network")
		}

		content := []byte(strings.TrimSpace(NetworkConfig))
		if len(content) == 0 {
			return errors.New("--config is required")
		}
		if !strings.HasPrefix(string(content), "{") {
			// not inline json, it is supposed to be a path to a json file
			var err error
			content, err = os.ReadFile(string(content))
			if err != nil {
				return fmt.Errorf("couldn't read the provided json file: %w", err)
			}
		}

		newNetwork, err := networks.NewNetworkFromJSON(content)
		if err != nil {
			return fmt.Errorf("the provided json is not a valid network config: %w", err)
		}

		allNames := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range allNames {
			if _, err := networks.GetNetwork(name); err == nil {
				if !NetworkForce {
					return fmt.Errorf("network with name %s already exists. If you want to replace it, use flag --force", name)
				}
				appUI.Warn("Network with name %s already exists. It will be replaced.", name)
			}
		}

		data, err := newNetwork.MarshalJSON()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(appConfig.NetworksDir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(appConfig.NetworksDir, newNetwork.GetName()+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("couldn't save the network: %w", err)
		}
		appUI.Success("Network %s with chain ID %d saved to %s.", newNetwork.GetName(), newNetwork.GetChainID(), path)
		return nil
	},
}

var networksCmd = &cobra.Command{
	Use:     "networks",
	Aliases: []string{"network"},
	Short:   "Show all supported networks",
	Long:    ``,
	Run: func(cmd *cobra.Command, args []string) {
		util.DisplayNetworks(appUI, networks.GetSupportedNetworks())
		appUI.Info("")
		appUI.Info("To add a network, use: repscan networks add --config <json>")
	},
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "config", "c", "", "path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "replace the network if it already exists")

	networksCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networksCmd)
}
