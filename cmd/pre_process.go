package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/repscan/config"
	"github.com/tranvictor/repscan/logger"
	"github.com/tranvictor/repscan/networks"
	"github.com/tranvictor/repscan/ui"
)

var (
	EnvFile  string
	Network  string
	NodeURL  string
	LogLevel string
	Timeout  time.Duration
)

// Every command works with these once flags and the environment
// have been read.
var (
	appConfig *config.Config
	appLog    *zap.Logger
	appUI     ui.UI = ui.NewTerminalUI()
)

// loadRuntime reads the configuration, applies the command line overrides
// and builds the logger.
func loadRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(EnvFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network = Network
	}
	if flags.Changed("node") {
		cfg.NodeURL = NodeURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = LogLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = Timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}

	if cfg.NetworksDir != "" {
		added, err := networks.LoadCustomNetworks(cfg.NetworksDir)
		if err != nil {
			return fmt.Errorf("couldn't load networks from %s: %w", cfg.NetworksDir, err)
		}
		if len(added) > 0 {
			log.Debug("custom networks loaded", zap.Strings("networks", added))
		}
	}

	appConfig = cfg
	appLog = log
	return nil
}

func currentNetwork() (networks.Network, error) {
	network, err := networks.GetNetwork(appConfig.Network)
	if err != nil {
		return nil, fmt.Errorf("%w. Supported networks: %v", err, networks.GetSupportedNetworkNames())
	}
	return network, nil
}
