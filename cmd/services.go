package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tranvictor/repscan/auth"
	"github.com/tranvictor/repscan/networks"
	"github.com/tranvictor/repscan/profile"
	"github.com/tranvictor/repscan/rewards"
	"github.com/tranvictor/repscan/scoring"
	"github.com/tranvictor/repscan/util/account"
	"github.com/tranvictor/repscan/util/broadcaster"
	"github.com/tranvictor/repscan/util/monitor"
	"github.com/tranvictor/repscan/util/providers"
	"github.com/tranvictor/repscan/util/reader"
)

const userAgent = "repscan/" + VERSION

func providerClient() *providers.Client {
	return providers.NewClient(
		providers.WithTimeout(appConfig.Timeout),
		providers.WithRateLimit(appConfig.ProviderRPS, 1),
		providers.WithUserAgent(userAgent),
	)
}

// newAggregator wires the four profile sources of network. The returned
// reader must be closed by the caller.
func newAggregator(network networks.Network, observer profile.Observer) (*profile.Aggregator, *reader.EthReader) {
	nodes := networks.Nodes(network, appConfig.NodeURL, appConfig.InfuraAPIKey)
	r := reader.NewEthReader(network, nodes)
	appLog.Debug("reading chain",
		zap.String("network", network.GetName()),
		zap.Strings("nodes", r.NodeNames()),
	)

	client := providerClient()
	nftURL := appConfig.AlchemyNFTURL
	if nftURL == "" {
		nftURL = network.GetNFTIndexerURL()
	}

	opts := []profile.Option{
		profile.WithTimeout(appConfig.Timeout),
		profile.WithLogger(appLog),
	}
	if observer != nil {
		opts = append(opts, profile.WithObserver(observer))
	}
	agg := profile.NewAggregator(
		profile.NewChainFetcher(r, network.GetNativeTokenDecimal(), appLog),
		profile.NewTokenFetcher(r, network.GetTokens()),
		profile.NewNFTFetcher(providers.NewAlchemyIndexer(nftURL, appConfig.AlchemyAPIKey, client)),
		profile.NewGovernanceFetcher(providers.NewSnapshotHub(appConfig.SnapshotURL, appConfig.SnapshotPageSize, client)),
		opts...,
	)
	return agg, r
}

func newScorer() *scoring.Client {
	return scoring.NewClient(appConfig.ScoringURL, providerClient())
}

// newGitHubAuth returns nil when no OAuth app is configured.
func newGitHubAuth() *auth.GitHubAuth {
	gh := auth.NewGitHubAuth(
		appConfig.GitHubClientID,
		appConfig.GitHubClientSecret,
		appConfig.FrontendURL,
		auth.WithTimeout(appConfig.Timeout),
	)
	if !gh.Configured() {
		return nil
	}
	return gh
}

// newRewards returns nil, nil when no minter key is configured. The
// cleanup function releases the reward network connections.
func newRewards() (*rewards.Service, func(), error) {
	cfg := appConfig.Rewards
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}
	network, err := networks.GetNetwork(cfg.Network)
	if err != nil {
		return nil, nil, fmt.Errorf("rewards network: %w", err)
	}
	minter, err := account.NewPrivateKeyAccount(cfg.PrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("rewards minter: %w", err)
	}

	nodes := networks.Nodes(network, cfg.RPCURL, appConfig.InfuraAPIKey)
	r := reader.NewEthReader(network, nodes)
	b := broadcaster.NewGenericBroadcaster(nodes, appLog)
	cleanup := func() {
		r.Close()
		b.Close()
	}

	svc, err := rewards.NewService(
		rewards.Config{
			ChainID:        network.GetChainID(),
			TokenAddress:   cfg.TokenAddress,
			BadgeAddress:   cfg.BadgeAddress,
			MarketplaceURL: network.GetMarketplaceURL(),
		},
		minter,
		r,
		b,
		monitor.NewGenericTxMonitor(r),
		appLog.Named("rewards"),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	appLog.Info("rewards enabled",
		zap.String("network", network.GetName()),
		zap.String("minter", minter.AddressHex()),
	)
	return svc, cleanup, nil
}
