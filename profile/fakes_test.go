package profile

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tranvictor/repscan/networks"
)

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

type fakeChain struct {
	balance *big.Int
	nonce   uint64
	code    []byte
	name    string

	balanceErr error
	nonceErr   error
	codeErr    error
	nameErr    error
	delay      time.Duration

	calls atomic.Int32
}

func (f *fakeChain) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return nil, err
	}
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if f.balance == nil {
		return big.NewInt(0), nil
	}
	return f.balance, nil
}

func (f *fakeChain) GetMinedNonce(ctx context.Context, address string) (uint64, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return 0, err
	}
	return f.nonce, f.nonceErr
}

func (f *fakeChain) GetCode(ctx context.Context, address string) ([]byte, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return nil, err
	}
	return f.code, f.codeErr
}

func (f *fakeChain) ReverseName(ctx context.Context, address string) (string, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return "", err
	}
	return f.name, f.nameErr
}

type fakeToken struct {
	raw         *big.Int
	decimals    uint64
	balanceErr  error
	decimalsErr error
}

type fakeTokenReader struct {
	tokens map[string]fakeToken
	delay  time.Duration
	calls  atomic.Int32
}

func (f *fakeTokenReader) ERC20Balance(ctx context.Context, caddr string, user string) (*big.Int, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return nil, err
	}
	t := f.tokens[strings.ToLower(caddr)]
	if t.balanceErr != nil {
		return nil, t.balanceErr
	}
	return t.raw, nil
}

func (f *fakeTokenReader) ERC20Decimal(ctx context.Context, caddr string) (uint64, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return 0, err
	}
	t := f.tokens[strings.ToLower(caddr)]
	return t.decimals, t.decimalsErr
}

type fakeIndexer struct {
	count int
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeIndexer) CountNFTs(ctx context.Context, owner string) (int, error) {
	f.calls.Add(1)
	if err := sleepCtx(ctx, f.delay); err != nil {
		return 0, err
	}
	return f.count, f.err
}

type fakeVotes struct {
	count int
	err   error
	delay time.Duration
	calls atomic.Int32

	mu    sync.Mutex
	voter string
}

func (f *fakeVotes) CountVotes(ctx context.Context, voter string) (int, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.voter = voter
	f.mu.Unlock()
	if err := sleepCtx(ctx, f.delay); err != nil {
		return 0, err
	}
	return f.count, f.err
}

type observation struct {
	source  Source
	outcome Outcome
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) ObserveSource(source Source, outcome Outcome, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{source, outcome})
}

func (r *recordingObserver) outcomes() map[Source]Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := map[Source]Outcome{}
	for _, o := range r.obs {
		res[o.source] = o.outcome
	}
	return res
}

var (
	dai  = networks.Token{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"}
	usdc = networks.Token{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"}
	weth = networks.Token{Symbol: "WETH", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"}
)

// fixture wires an Aggregator on top of healthy fakes. Tests break the
// fakes they care about before calling aggregator().
type fixture struct {
	chain  *fakeChain
	tokens *fakeTokenReader
	nfts   *fakeIndexer
	votes  *fakeVotes
	list   []networks.Token
}

func newFixture() *fixture {
	eth, _ := new(big.Int).SetString("1500000000000000000", 10)
	return &fixture{
		chain: &fakeChain{balance: eth, nonce: 5, name: "alice.eth"},
		tokens: &fakeTokenReader{tokens: map[string]fakeToken{
			strings.ToLower(dai.Address):  {raw: mustBig("12500000000000000000"), decimals: 18},
			strings.ToLower(usdc.Address): {raw: big.NewInt(3_250_000), decimals: 6},
			strings.ToLower(weth.Address): {raw: big.NewInt(0), decimals: 18},
		}},
		nfts:  &fakeIndexer{count: 3},
		votes: &fakeVotes{count: 7},
		list:  []networks.Token{dai, usdc},
	}
}

func (f *fixture) aggregator(opts ...Option) *Aggregator {
	return NewAggregator(
		NewChainFetcher(f.chain, 18, nil),
		NewTokenFetcher(f.tokens, f.list),
		NewNFTFetcher(f.nfts),
		NewGovernanceFetcher(f.votes),
		opts...,
	)
}

func (f *fixture) outboundCalls() int32 {
	return f.chain.calls.Load() + f.tokens.calls.Load() + f.nfts.calls.Load() + f.votes.calls.Load()
}

func mustBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big int " + s)
	}
	return b
}
