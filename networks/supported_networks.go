package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	OptimismMainnet,
	PolygonMainnet,
	BaseMainnet,
	ArbitrumMainnet,
	Sepolia,
}

var globalSupportedNetworks = newSupportedNetworks()
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) add(network Network) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if existing, found := n.networks[network.GetName()]; found && existing.GetChainID() != network.GetChainID() {
		return fmt.Errorf("network with name '%s' already exists with chain id %d", network.GetName(), existing.GetChainID())
	}
	n.networks[network.GetName()] = network
	n.networksByID[network.GetChainID()] = network
	for _, an := range network.GetAlternativeNames() {
		if existing, found := n.networks[an]; found && existing.GetName() != network.GetName() {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", an)
		}
		n.networks[an] = network
	}
	return nil
}

func (n *networks) list() []Network {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := make([]Network, 0, len(n.networksByID))
	for _, nw := range n.networksByID {
		res = append(res, nw)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}

func newSupportedNetworks() *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n); err != nil {
			panic(err)
		}
	}
	return result
}

// LoadCustomNetworks registers every *.json network description found in
// dir. A custom network replaces a built-in one with the same name.
// It returns the names of the loaded networks.
func LoadCustomNetworks(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	loaded := []string{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return loaded, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			return loaded, fmt.Errorf("failed to parse network from file %s: %w", file, err)
		}

		if err := globalSupportedNetworks.add(network); err != nil {
			return loaded, err
		}
		loaded = append(loaded, network.GetName())
	}
	return loaded, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}

	network := NewGenericNetwork(networkConfig)
	if err := network.validate(); err != nil {
		return nil, err
	}
	return network, nil
}

// GetSupportedNetworks returns every registered network once, ordered by
// chain id.
func GetSupportedNetworks() []Network {
	return globalSupportedNetworks.list()
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}
