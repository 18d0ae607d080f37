package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("invalid ethereum address")

// NormalizeAddress validates s as a 20 byte hex account address and returns
// its EIP-55 checksummed form.
//
// All lower case and all upper case inputs are accepted as they carry no
// checksum. A mixed case input must match its checksum exactly.
func NormalizeAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	checksummed := common.HexToAddress(s).Hex()
	body := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if isMixedCase(body) && body != checksummed[2:] {
		return "", fmt.Errorf("%w: bad checksum for %q", ErrInvalidAddress, s)
	}
	return checksummed, nil
}

func isMixedCase(hex string) bool {
	return strings.ToLower(hex) != hex && strings.ToUpper(hex) != hex
}
