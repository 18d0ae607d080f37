package networks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type GenericNetworkConfig struct {
	Name               string            `json:"name"`
	AlternativeNames   []string          `json:"alternative_names"`
	ChainID            uint64            `json:"chain_id"`
	NativeTokenSymbol  string            `json:"native_token_symbol"`
	NativeTokenDecimal uint64            `json:"native_token_decimal"`
	BlockTime          uint64            `json:"block_time"`
	NodeVariableName   string            `json:"node_variable_name"`
	DefaultNodes       map[string]string `json:"default_nodes"`
	InfuraSubdomain    string            `json:"infura_subdomain"`
	ENSRegistry        string            `json:"ens_registry"`
	NFTIndexerURL      string            `json:"nft_indexer_url"`
	MarketplaceURL     string            `json:"marketplace_url"`
	Tokens             []Token           `json:"tokens"`
}

// GenericNetwork is a network fully described by its config. Built-in
// networks and the ones loaded from json files are all GenericNetworks.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetInfuraNode(apiKey string) string {
	apiKey = strings.TrimSpace(apiKey)
	if gn.config.InfuraSubdomain == "" || apiKey == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.infura.io/v3/%s", gn.config.InfuraSubdomain, apiKey)
}

func (gn *GenericNetwork) GetENSRegistry() string {
	return gn.config.ENSRegistry
}

func (gn *GenericNetwork) GetNFTIndexerURL() string {
	return gn.config.NFTIndexerURL
}

func (gn *GenericNetwork) GetMarketplaceURL() string {
	return gn.config.MarketplaceURL
}

func (gn *GenericNetwork) GetTokens() []Token {
	res := make([]Token, len(gn.config.Tokens))
	copy(res, gn.config.Tokens)
	return res
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}

func (gn *GenericNetwork) validate() error {
	if gn.config.Name == "" {
		return fmt.Errorf("network name is empty")
	}
	if gn.config.ChainID == 0 {
		return fmt.Errorf("network %s: chain id is empty", gn.config.Name)
	}
	if gn.config.NativeTokenSymbol == "" {
		gn.config.NativeTokenSymbol = "ETH"
	}
	if gn.config.NativeTokenDecimal == 0 {
		gn.config.NativeTokenDecimal = 18
	}
	for i, t := range gn.config.Tokens {
		if t.Symbol == "" {
			return fmt.Errorf("network %s: token #%d has no symbol", gn.config.Name, i)
		}
		if _, err := t.checksummed(); err != nil {
			return fmt.Errorf("network %s: token %s: %w", gn.config.Name, t.Symbol, err)
		}
	}
	return nil
}
