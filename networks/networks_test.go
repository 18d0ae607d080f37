package networks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNetwork(t *testing.T) {
	n, err := GetNetwork("mainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n.GetChainID())

	alt, err := GetNetwork("ethereum")
	require.NoError(t, err)
	assert.Equal(t, "mainnet", alt.GetName())

	s, err := GetNetworkByID(11155111)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", s.GetName())

	_, err = GetNetwork("dogechain")
	assert.True(t, errors.Is(err, ErrNetworkNotFound))
	_, err = GetNetworkByID(424242)
	assert.True(t, errors.Is(err, ErrNetworkNotFound))
}

func TestSupportedNetworksAreListedOnce(t *testing.T) {
	list := GetSupportedNetworks()
	require.GreaterOrEqual(t, len(list), 2)
	assert.Equal(t, "mainnet", list[0].GetName())
	seen := map[uint64]bool{}
	for _, n := range list {
		assert.False(t, seen[n.GetChainID()], n.GetName())
		seen[n.GetChainID()] = true
	}
	assert.Contains(t, GetSupportedNetworkNames(), "sepolia-testnet")
}

func TestMainnetTokens(t *testing.T) {
	tokens := EthereumMainnet.GetTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, "DAI", tokens[0].Symbol)
	assert.Equal(t, "USDC", tokens[1].Symbol)
	for _, tok := range tokens {
		addr, err := tok.checksummed()
		require.NoError(t, err)
		assert.Equal(t, tok.Address, addr)
	}

	tokens[0].Symbol = "XXX"
	assert.Equal(t, "DAI", EthereumMainnet.GetTokens()[0].Symbol)
}

func TestNodes(t *testing.T) {
	t.Setenv(EthereumMainnet.GetNodeVariableName(), "")

	nodes := Nodes(EthereumMainnet, "http://localhost:8545", "key")
	assert.Equal(t, map[string]string{"custom-node": "http://localhost:8545"}, nodes)

	nodes = Nodes(EthereumMainnet, "", "abc")
	assert.Equal(t, map[string]string{"mainnet-infura": "https://mainnet.infura.io/v3/abc"}, nodes)

	nodes = Nodes(EthereumMainnet, "", "")
	assert.Equal(t, EthereumMainnet.GetDefaultNodes(), nodes)

	t.Setenv(EthereumMainnet.GetNodeVariableName(), "http://env-node")
	nodes = Nodes(EthereumMainnet, "", "abc")
	assert.Equal(t, map[string]string{"mainnet-env": "http://env-node"}, nodes)
}

func TestFindTokens(t *testing.T) {
	all := FindTokens(EthereumMainnet, "")
	require.Len(t, all, 2)
	assert.Equal(t, "DAI", all[0].Symbol)

	found := FindTokens(EthereumMainnet, "usdc")
	require.NotEmpty(t, found)
	assert.Equal(t, "USDC", found[0].Symbol)

	assert.Empty(t, FindTokens(EthereumMainnet, "zzzz"))
	assert.Empty(t, FindTokens(Sepolia, "dai"))
}

func TestNewNetworkFromJSON(t *testing.T) {
	n, err := NewNetworkFromJSON([]byte(`{
		"name": "holesky",
		"chain_id": 17000,
		"default_nodes": {"holesky-public": "https://ethereum-holesky-rpc.publicnode.com"},
		"tokens": [{"symbol": "WETH", "address": "0x94373a4919b3240d86ea41593d5eba789fef3848"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "holesky", n.GetName())
	assert.Equal(t, "ETH", n.GetNativeTokenSymbol())
	assert.Equal(t, uint64(18), n.GetNativeTokenDecimal())
	assert.Equal(t, "", n.GetInfuraNode("abc"))

	_, err = NewNetworkFromJSON([]byte(`{"name": "broken"}`))
	assert.Error(t, err)

	_, err = NewNetworkFromJSON([]byte(`{"name": "badtoken", "chain_id": 5, "tokens": [{"symbol": "X", "address": "0x12"}]}`))
	assert.Error(t, err)
}

func TestLoadCustomNetworks(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`{"name": "repscan-devnet", "chain_id": 31337, "default_nodes": {"local": "http://127.0.0.1:8545"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devnet.json"), content, 0o644))

	loaded, err := LoadCustomNetworks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"repscan-devnet"}, loaded)

	n, err := GetNetworkByID(31337)
	require.NoError(t, err)
	assert.Equal(t, "repscan-devnet", n.GetName())
}

func TestBuiltinNetworksAreValid(t *testing.T) {
	for _, n := range supportedNetworks {
		gn, ok := n.(*GenericNetwork)
		require.True(t, ok, n.GetName())
		require.NoError(t, gn.validate(), n.GetName())
		for _, tok := range n.GetTokens() {
			addr, err := tok.checksummed()
			require.NoError(t, err, "%s %s", n.GetName(), tok.Symbol)
			assert.Equal(t, tok.Address, addr)
		}
	}

	l2, err := GetNetwork("matic")
	require.NoError(t, err)
	assert.Equal(t, uint64(137), l2.GetChainID())
	assert.Empty(t, l2.GetENSRegistry())
}
