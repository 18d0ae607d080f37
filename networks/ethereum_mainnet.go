package networks

var EthereumMainnet Network = NewEthereumMainnet()

func NewEthereumMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:               "mainnet",
		AlternativeNames:   []string{"ethereum", "eth"},
		ChainID:            1,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          12,
		NodeVariableName:   "ETHEREUM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
			"mainnet-llamarpc":   "https://eth.llamarpc.com",
		},
		InfuraSubdomain: "mainnet",
		ENSRegistry:     ENSRegistryAddress,
		NFTIndexerURL:   "https://eth-mainnet.g.alchemy.com/nft/v3",
		MarketplaceURL:  "https://opensea.io/assets/ethereum",
		Tokens: []Token{
			{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
			{Symbol: "USDC", Name: "USD Coin", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
		},
	})
}
