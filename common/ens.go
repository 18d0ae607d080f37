package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NameHash implements the ENS namehash algorithm (EIP-137). Names are
// expected to be normalized already; only lower casing is applied here.
func NameHash(name string) common.Hash {
	node := common.Hash{}
	if name == "" {
		return node
	}
	labels := strings.Split(strings.ToLower(name), ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := crypto.Keccak256([]byte(labels[i]))
		node = common.BytesToHash(crypto.Keccak256(node[:], label))
	}
	return node
}

// ReverseNode returns the node of <addr>.addr.reverse used for primary
// name lookups.
func ReverseNode(addr common.Address) common.Hash {
	return NameHash(strings.ToLower(addr.Hex()[2:]) + ".addr.reverse")
}
