package networks

var Sepolia Network = NewSepolia()

// Sepolia carries the reward token and role badge contracts. It has no
// tracked token list.
func NewSepolia() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:               "sepolia",
		AlternativeNames:   []string{"sepolia-testnet"},
		ChainID:            11155111,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          12,
		NodeVariableName:   "ETHEREUM_SEPOLIA_NODE",
		DefaultNodes: map[string]string{
			"sepolia-publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
			"sepolia-org":        "https://rpc.sepolia.org",
		},
		InfuraSubdomain: "sepolia",
		ENSRegistry:     ENSRegistryAddress,
		NFTIndexerURL:   "https://eth-sepolia.g.alchemy.com/nft/v3",
		MarketplaceURL:  "https://testnets.opensea.io/assets/sepolia",
	})
}
