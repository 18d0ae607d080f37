package networks

var BaseMainnet Network = NewBaseMainnet()

func NewBaseMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:               "base",
		AlternativeNames:   []string{"base-mainnet"},
		ChainID:            8453,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          2,
		NodeVariableName:   "BASE_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"public-base": "https://mainnet.base.org",
		},
		InfuraSubdomain: "base-mainnet",
		NFTIndexerURL:   "https://base-mainnet.g.alchemy.com/nft/v3",
		MarketplaceURL:  "https://opensea.io/assets/base",
		Tokens: []Token{
			{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb"},
			{Symbol: "USDC", Name: "USD Coin", Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"},
		},
	})
}
