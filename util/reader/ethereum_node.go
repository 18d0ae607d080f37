package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

type EthereumNode interface {
	NodeName() string
	NodeURL() string
	ChainID(ctx context.Context) (*big.Int, error)
	EstimateGas(
		ctx context.Context,
		from, to string,
		value *big.Int,
		data []byte,
	) (gas uint64, err error)
	GetCode(ctx context.Context, address string) (code []byte, err error)
	GetBalance(ctx context.Context, address string) (balance *big.Int, err error)
	GetMinedNonce(ctx context.Context, address string) (nonce uint64, err error)
	GetPendingNonce(ctx context.Context, address string) (nonce uint64, err error)
	TransactionReceipt(ctx context.Context, txHash string) (receipt *types.Receipt, err error)
	SuggestedGasPrice(ctx context.Context) (*big.Int, error)
	ReadContractToBytes(
		ctx context.Context,
		from string,
		caddr string,
		abi *abi.ABI,
		method string,
		args ...interface{},
	) ([]byte, error)
	CurrentBlock(ctx context.Context) (uint64, error)
}
