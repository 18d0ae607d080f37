package profile

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/repscan/common"
	"github.com/tranvictor/repscan/networks"
)

// TokenReader reads ERC20 state.
type TokenReader interface {
	ERC20Balance(ctx context.Context, caddr string, user string) (*big.Int, error)
	ERC20Decimal(ctx context.Context, caddr string) (uint64, error)
}

type TokenFetcher struct {
	reader TokenReader
	tokens []networks.Token
}

func NewTokenFetcher(reader TokenReader, tokens []networks.Token) *TokenFetcher {
	ts := make([]networks.Token, len(tokens))
	copy(ts, tokens)
	return &TokenFetcher{
		reader: reader,
		tokens: ts,
	}
}

func (f *TokenFetcher) Tokens() []networks.Token {
	res := make([]networks.Token, len(f.tokens))
	copy(res, f.tokens)
	return res
}

// Fetch reads every configured token concurrently. A token whose balance
// or decimals cannot be read is reported with a zero amount and its error;
// the other tokens are unaffected. The result follows the configured
// order.
func (f *TokenFetcher) Fetch(ctx context.Context, address string) ([]TokenBalance, error) {
	result := make([]TokenBalance, len(f.tokens))
	g := errgroup.Group{}
	for i := range f.tokens {
		g.Go(func() error {
			result[i] = f.fetchOne(ctx, f.tokens[i], address)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (f *TokenFetcher) fetchOne(ctx context.Context, token networks.Token, address string) TokenBalance {
	var (
		raw      *big.Int
		decimals uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		raw, err = f.reader.ERC20Balance(gctx, token.Address, address)
		if err != nil {
			return fmt.Errorf("balanceOf: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		decimals, err = f.reader.ERC20Decimal(gctx, token.Address)
		if err != nil {
			return fmt.Errorf("decimals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return FailedToken(token, fmt.Errorf("%w: %s: %w", ErrTokenQueryFailed, token.Symbol, err))
	}
	return TokenBalance{
		Symbol:  token.Symbol,
		Address: token.Address,
		Amount:  common.BigToDecimal(raw, decimals),
	}
}

// FailedToken is the entry reported for a token whose balance is unknown.
func FailedToken(token networks.Token, err error) TokenBalance {
	tb := TokenBalance{
		Symbol:  token.Symbol,
		Address: token.Address,
		Err:     err,
	}
	if err != nil {
		tb.Error = err.Error()
	}
	return tb
}
