package networks

var PolygonMainnet Network = NewPolygonMainnet()

func NewPolygonMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:               "polygon",
		AlternativeNames:   []string{"matic", "polygon-mainnet"},
		ChainID:            137,
		NativeTokenSymbol:  "POL",
		NativeTokenDecimal: 18,
		BlockTime:          2,
		NodeVariableName:   "POLYGON_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"polygon-publicnode": "https://polygon-bor-rpc.publicnode.com",
		},
		InfuraSubdomain: "polygon-mainnet",
		NFTIndexerURL:   "https://polygon-mainnet.g.alchemy.com/nft/v3",
		MarketplaceURL:  "https://opensea.io/assets/matic",
		Tokens: []Token{
			{Symbol: "DAI", Name: "(PoS) Dai Stablecoin", Address: "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063"},
			{Symbol: "USDC", Name: "USD Coin", Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"},
		},
	})
}
