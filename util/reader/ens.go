package reader

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	repcommon "github.com/tranvictor/repscan/common"
)

var ErrNoENSRegistry = errors.New("no ens registry on this network")

func (er *EthReader) ensResolver(ctx context.Context, node common.Hash) (common.Address, error) {
	var resolver common.Address
	err := er.ReadContractWithABI(ctx, &resolver, er.ensRegistry, repcommon.GetENSRegistryABI(), "resolver", node)
	return resolver, err
}

// ReverseName returns the primary ENS name of address, or "" when it has
// none. A reverse record whose name does not resolve back to address is
// treated as no name.
func (er *EthReader) ReverseName(ctx context.Context, address string) (string, error) {
	if er.ensRegistry == "" {
		return "", ErrNoENSRegistry
	}
	addr := common.HexToAddress(address)

	node := repcommon.ReverseNode(addr)
	resolver, err := er.ensResolver(ctx, node)
	if err != nil {
		return "", err
	}
	if resolver == (common.Address{}) {
		return "", nil
	}

	var name string
	if err := er.ReadContractWithABI(ctx, &name, resolver.Hex(), repcommon.GetENSResolverABI(), "name", node); err != nil {
		return "", err
	}
	if name == "" {
		return "", nil
	}

	resolved, err := er.ResolveName(ctx, name)
	if err != nil {
		return "", err
	}
	if resolved != addr {
		return "", nil
	}
	return name, nil
}

// ResolveName returns the address an ENS name points to, or the zero
// address when the name has no resolver.
func (er *EthReader) ResolveName(ctx context.Context, name string) (common.Address, error) {
	if er.ensRegistry == "" {
		return common.Address{}, ErrNoENSRegistry
	}
	node := repcommon.NameHash(name)
	resolver, err := er.ensResolver(ctx, node)
	if err != nil {
		return common.Address{}, err
	}
	if resolver == (common.Address{}) {
		return common.Address{}, nil
	}
	var resolved common.Address
	err = er.ReadContractWithABI(ctx, &resolved, resolver.Hex(), repcommon.GetENSResolverABI(), "addr", node)
	return resolved, err
}
