package networks

var ArbitrumMainnet Network = NewArbitrumMainnet()

// Arbitrum has no ENS registry, profiles there carry no name.
func NewArbitrumMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:               "arbitrum",
		AlternativeNames:   []string{"arb", "arbitrum-one"},
		ChainID:            42161,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          1,
		NodeVariableName:   "ARBITRUM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"arbitrum-public": "https://arb1.arbitrum.io/rpc",
		},
		InfuraSubdomain: "arbitrum-mainnet",
		NFTIndexerURL:   "https://arb-mainnet.g.alchemy.com/nft/v3",
		MarketplaceURL:  "https://opensea.io/assets/arbitrum",
		Tokens: []Token{
			{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"},
			{Symbol: "USDC", Name: "USD Coin", Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"},
		},
	})
}
