// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repscan",
	Short: "Build on-chain reputation profiles of Ethereum addresses",
	Long: `Repscan reads what an Ethereum address has done on chain and summarizes it as a
reputation profile:

	1. Native balance, transaction count, whether code lives at the address and its
	verified ENS primary name, read directly from Ethereum nodes.

	2. Balances of a configured list of ERC20 tokens. A token that can't be read is
	still reported, with its error, so one bad token never hides the others.

	3. NFT holdings from an NFT indexer and governance votes from Snapshot. These are
	best effort and read as zero when the providers are down.

Repscan runs as an HTTP service (repscan serve) for the reputation frontend, or
answers one-off questions from the command line (repscan profile <address>).

Configuration is read from the environment and from a .env file in the working
directory (see --env-file). The most useful variables are:
	REPSCAN_NETWORK        network to profile on, mainnet by default
	REPSCAN_NODE_URL       custom node, used before the network defaults
	<NETWORK>_NODE         per network node override, e.g. ETHEREUM_MAINNET_NODE
	INFURA_API_KEY         adds an Infura node for networks Infura serves
	ALCHEMY_API_KEY        enables NFT counts
	SNAPSHOT_URL           Snapshot GraphQL hub
	REPSCAN_LOG_LEVEL      debug, info, warn or error

Note: repscan takes node urls blindly, a bad url only shows up as a failed read
when a profile is built.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&EnvFile, "env-file", ".env", "dotenv file filling in variables the environment leaves unset")
	rootCmd.PersistentFlags().StringVarP(&Network, "network", "k", "", "network to read from. Overrides REPSCAN_NETWORK. See `repscan networks`")
	rootCmd.PersistentFlags().StringVarP(&NodeURL, "node", "n", "", "custom node url. Overrides REPSCAN_NODE_URL")
	rootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "log level. Overrides REPSCAN_LOG_LEVEL")
	rootCmd.PersistentFlags().DurationVarP(&Timeout, "timeout", "t", 0, "deadline for building one profile. Overrides REPSCAN_TIMEOUT")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
