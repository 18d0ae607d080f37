package networks

var OptimismMainnet Network = NewOptimismMainnet()

func NewOptimismMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:               "optimism",
		AlternativeNames:   []string{"op", "optimism-mainnet"},
		ChainID:            10,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          2,
		NodeVariableName:   "OPTIMISM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"mainnet-optimism": "https://mainnet.optimism.io",
		},
		InfuraSubdomain: "optimism-mainnet",
		NFTIndexerURL:   "https://opt-mainnet.g.alchemy.com/nft/v3",
		MarketplaceURL:  "https://opensea.io/assets/optimism",
		Tokens: []Token{
			{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"},
			{Symbol: "USDC", Name: "USD Coin", Address: "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"},
		},
	})
}
