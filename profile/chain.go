package profile

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/tranvictor/repscan/common"
)

// ChainReader is the slice of the chain rpc reader the chain facts need.
type ChainReader interface {
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	GetMinedNonce(ctx context.Context, address string) (uint64, error)
	GetCode(ctx context.Context, address string) ([]byte, error)
	ReverseName(ctx context.Context, address string) (string, error)
}

type ChainFetcher struct {
	reader         ChainReader
	nativeDecimals uint64
	log            *zap.Logger
}

func NewChainFetcher(reader ChainReader, nativeDecimals uint64, log *zap.Logger) *ChainFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChainFetcher{
		reader:         reader,
		nativeDecimals: nativeDecimals,
		log:            log,
	}
}

// Fetch reads balance, transaction count, code and primary name
// concurrently. Balance and transaction count are required. Code and name
// are best effort: a failed lookup reads as "no code" and "no name".
func (f *ChainFetcher) Fetch(ctx context.Context, address string) (ChainFacts, error) {
	var (
		balance *big.Int
		nonce   uint64
		code    []byte
		name    string
		codeErr error
		nameErr error
	)

	failed, err := common.RunParallel(
		func() (err error) {
			balance, err = f.reader.GetBalance(ctx, address)
			if err != nil {
				return fmt.Errorf("balance: %w", err)
			}
			return nil
		},
		func() (err error) {
			nonce, err = f.reader.GetMinedNonce(ctx, address)
			if err != nil {
				return fmt.Errorf("tx count: %w", err)
			}
			return nil
		},
		func() error {
			code, codeErr = f.reader.GetCode(ctx, address)
			return nil
		},
		func() error {
			name, nameErr = f.reader.ReverseName(ctx, address)
			return nil
		},
	)
	if failed > 0 {
		return ChainFacts{}, fmt.Errorf("%w: %w", ErrChainDataUnavailable, err)
	}

	if codeErr != nil {
		f.log.Debug("code lookup failed", zap.String("address", address), zap.Error(codeErr))
		code = nil
	}
	if nameErr != nil {
		f.log.Debug("reverse name lookup failed", zap.String("address", address), zap.Error(nameErr))
		name = ""
	}

	facts := ChainFacts{
		NativeBalance: common.BigToDecimal(balance, f.nativeDecimals),
		TxCount:       nonce,
		IsContract:    len(code) > 0,
	}
	if name != "" {
		facts.ReverseName = &name
	}
	return facts, nil
}
