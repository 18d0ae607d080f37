package networks

import (
	"time"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
	// GetInfuraNode returns the Infura endpoint for the given project key,
	// or "" when Infura does not serve the network.
	GetInfuraNode(apiKey string) string

	GetENSRegistry() string
	GetNFTIndexerURL() string
	GetMarketplaceURL() string
	GetTokens() []Token

	MarshalJSON() ([]byte, error)
}
