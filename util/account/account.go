package account

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var ErrMissingKey = errors.New("private key is not set")

// Account pairs a signer with the address it signs for.
type Account struct {
	signer  Signer
	address common.Address
}

func NewAccount(signer Signer, address common.Address) *Account {
	return &Account{signer: signer, address: address}
}

// NewPrivateKeyAccount builds an account from a hex encoded private key,
// with or without the 0x prefix.
func NewPrivateKeyAccount(hex string) (*Account, error) {
	if hex == "" {
		return nil, ErrMissingKey
	}
	key, err := PrivateKeyFromHex(hex)
	if err != nil {
		return nil, err
	}
	return &Account{
		signer:  NewKeySigner(key),
		address: AddressFromPrivateKey(key),
	}, nil
}

func (a *Account) Address() common.Address {
	return a.address
}

func (a *Account) AddressHex() string {
	return a.address.Hex()
}

func (a *Account) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signedTx, err := a.signer.SignTx(tx, chainID)
	if err != nil {
		return tx, fmt.Errorf("couldn't sign the tx: %w", err)
	}
	return signedTx, nil
}
