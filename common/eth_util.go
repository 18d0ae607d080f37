package common

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	erc20ABI       = mustParseABI("erc20", erc20abi)
	ensRegistryABI = mustParseABI("ens registry", ensregistryabi)
	ensResolverABI = mustParseABI("ens resolver", ensresolverabi)
	agentTokenABI  = mustParseABI("agent token", agenttokenabi)
	roleBadgeABI   = mustParseABI("role badge", rolebadgeabi)
)

func mustParseABI(name, raw string) *abi.ABI {
	result, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("couldn't parse %s abi: %s", name, err))
	}
	return &result
}

func GetERC20ABI() *abi.ABI {
	return erc20ABI
}

func GetENSRegistryABI() *abi.ABI {
	return ensRegistryABI
}

func GetENSResolverABI() *abi.ABI {
	return ensResolverABI
}

// GetAgentTokenABI returns the ABI of the mintable/burnable reward token.
func GetAgentTokenABI() *abi.ABI {
	return agentTokenABI
}

// GetRoleBadgeABI returns the ABI of the role badge NFT contract.
func GetRoleBadgeABI() *abi.ABI {
	return roleBadgeABI
}

func PackERC20Data(function string, params ...interface{}) ([]byte, error) {
	return GetERC20ABI().Pack(function, params...)
}

func HexToAddress(hex string) common.Address {
	return common.HexToAddress(hex)
}

func HexToAddresses(hexes []string) []common.Address {
	result := []common.Address{}
	for _, h := range hexes {
		result = append(result, common.HexToAddress(h))
	}
	return result
}

func HexToHash(hex string) common.Hash {
	return common.HexToHash(hex)
}
