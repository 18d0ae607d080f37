package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/repscan/common"
	"github.com/tranvictor/repscan/networks"
)

const (
	alice      = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	aliceLower = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
)

func TestAggregateAllSourcesHealthy(t *testing.T) {
	f := newFixture()
	obs := &recordingObserver{}

	p, err := f.aggregator(WithObserver(obs)).Aggregate(context.Background(), aliceLower)
	require.NoError(t, err)

	assert.Equal(t, alice, p.Address)
	assert.Equal(t, "1.5", p.Chain.NativeBalance.String())
	assert.Equal(t, uint64(5), p.Chain.TxCount)
	assert.False(t, p.Chain.IsContract)
	assert.Equal(t, 0, p.ContractDeployments())
	require.NotNil(t, p.Chain.ReverseName)
	assert.Equal(t, "alice.eth", *p.Chain.ReverseName)

	require.Len(t, p.Tokens, 2)
	assert.Equal(t, "DAI", p.Tokens[0].Symbol)
	assert.Equal(t, "12.5", p.Tokens[0].Amount.String())
	assert.Equal(t, "USDC", p.Tokens[1].Symbol)
	assert.Equal(t, "3.25", p.Tokens[1].Amount.String())
	assert.False(t, p.Tokens[0].Failed())

	assert.Equal(t, NFTSummary{Count: 3, HasAny: true}, p.NFTs)
	assert.Equal(t, 7, p.Governance.VoteCount)
	assert.Empty(t, p.Degraded)

	for _, src := range AllSources {
		assert.Equal(t, OutcomeOK, obs.outcomes()[src], src)
	}
}

func TestAggregateInvalidAddressMakesNoCalls(t *testing.T) {
	inputs := []string{
		"",
		"0x123",
		"not an address",
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD",
	}
	for _, in := range inputs {
		f := newFixture()
		p, err := f.aggregator().Aggregate(context.Background(), in)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, common.ErrInvalidAddress), in)
		assert.False(t, errors.Is(err, ErrAggregationFailed), in)
		assert.Equal(t, int32(0), f.outboundCalls(), in)
	}
}

func TestAggregateChainFailureIsFatal(t *testing.T) {
	t.Run("balance", func(t *testing.T) {
		f := newFixture()
		f.chain.balanceErr = errors.New("node down")
		p, err := f.aggregator().Aggregate(context.Background(), alice)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, ErrAggregationFailed))
		assert.True(t, errors.Is(err, ErrChainDataUnavailable))
		assert.Contains(t, err.Error(), "node down")
	})
	t.Run("tx count", func(t *testing.T) {
		f := newFixture()
		f.chain.nonceErr = errors.New("nonce unavailable")
		p, err := f.aggregator().Aggregate(context.Background(), alice)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, ErrChainDataUnavailable))
	})
}

func TestAggregateDecorativeChainFailures(t *testing.T) {
	f := newFixture()
	f.chain.code = []byte{0x60, 0x80}
	f.chain.codeErr = errors.New("code lookup failed")
	f.chain.nameErr = errors.New("ens down")

	p, err := f.aggregator().Aggregate(context.Background(), alice)
	require.NoError(t, err)
	assert.False(t, p.Chain.IsContract)
	assert.Nil(t, p.Chain.ReverseName)
	assert.Equal(t, uint64(5), p.Chain.TxCount)
	assert.Empty(t, p.Degraded)
}

func TestAggregateEmptyNameIsAbsent(t *testing.T) {
	f := newFixture()
	f.chain.name = ""
	p, err := f.aggregator().Aggregate(context.Background(), alice)
	require.NoError(t, err)
	assert.Nil(t, p.Chain.ReverseName)
}

func TestAggregateTokenFailureIsIsolated(t *testing.T) {
	f := newFixture()
	f.list = []networks.Token{dai, usdc, weth}
	broken := f.tokens.tokens[strings.ToLower(usdc.Address)]
	broken.decimalsErr = errors.New("decimals reverted")
	f.tokens.tokens[strings.ToLower(usdc.Address)] = broken

	p, err := f.aggregator().Aggregate(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, p.Tokens, 3)

	assert.Equal(t, []string{"DAI", "USDC", "WETH"}, []string{p.Tokens[0].Symbol, p.Tokens[1].Symbol, p.Tokens[2].Symbol})
	assert.False(t, p.Tokens[0].Failed())
	assert.False(t, p.Tokens[2].Failed())

	failed := p.Tokens[1]
	assert.True(t, failed.Failed())
	assert.True(t, failed.Amount.IsZero())
	assert.True(t, errors.Is(failed.Err, ErrTokenQueryFailed))
	assert.Contains(t, failed.Error, "decimals reverted")
	assert.False(t, p.IsDegraded(SourceTokens))
}

func TestAggregateNFTFailureDegrades(t *testing.T) {
	f := newFixture()
	f.nfts.err = errors.New("503")
	obs := &recordingObserver{}

	p, err := f.aggregator(WithObserver(obs)).Aggregate(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, NFTSummary{}, p.NFTs)
	assert.False(t, p.NFTs.HasAny)
	assert.Equal(t, []Source{SourceNFT}, p.Degraded)
	assert.Equal(t, OutcomeFailed, obs.outcomes()[SourceNFT])
}

func TestAggregateGovernance(t *testing.T) {
	t.Run("failure degrades to zero", func(t *testing.T) {
		f := newFixture()
		f.votes.err = errors.New("graphql error")
		p, err := f.aggregator().Aggregate(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Governance.VoteCount)
		assert.True(t, p.IsDegraded(SourceGovernance))
	})
	t.Run("no votes is zero", func(t *testing.T) {
		f := newFixture()
		f.votes.count = 0
		p, err := f.aggregator().Aggregate(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Governance.VoteCount)
		assert.Empty(t, p.Degraded)
	})
	t.Run("voter is lower cased", func(t *testing.T) {
		f := newFixture()
		_, err := f.aggregator().Aggregate(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, aliceLower, f.votes.voter)
	})
}

func TestAggregateContractScenario(t *testing.T) {
	f := newFixture()
	f.chain.code = []byte{0x60, 0x80, 0x60, 0x40}
	f.chain.nonce = 5
	broken := f.tokens.tokens[strings.ToLower(dai.Address)]
	broken.balanceErr = errors.New("balanceOf reverted")
	f.tokens.tokens[strings.ToLower(dai.Address)] = broken

	p, err := f.aggregator().Aggregate(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, p.Chain.IsContract)
	assert.Equal(t, 1, p.ContractDeployments())
	assert.Equal(t, uint64(5), p.Chain.TxCount)
	require.Len(t, p.Tokens, 2)
	assert.True(t, p.Tokens[0].Failed())
	assert.False(t, p.Tokens[1].Failed())
}

func TestAggregateRunsSourcesConcurrently(t *testing.T) {
	f := newFixture()
	const latency = 150 * time.Millisecond
	f.chain.delay = latency
	f.tokens.delay = latency
	f.nfts.delay = latency
	f.votes.delay = latency

	start := time.Now()
	_, err := f.aggregator().Aggregate(context.Background(), alice)
	took := time.Since(start)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, took, latency)
	// run one after the other the sources would take at least 4x latency
	assert.Less(t, took, 3*latency)
}

func TestAggregateDeadline(t *testing.T) {
	t.Run("slow nft degrades", func(t *testing.T) {
		f := newFixture()
		f.nfts.delay = 5 * time.Second
		obs := &recordingObserver{}

		start := time.Now()
		p, err := f.aggregator(WithTimeout(100*time.Millisecond), WithObserver(obs)).Aggregate(context.Background(), alice)
		require.NoError(t, err)
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, []Source{SourceNFT}, p.Degraded)
		assert.Equal(t, 0, p.NFTs.Count)
		assert.Equal(t, 7, p.Governance.VoteCount)
		assert.Equal(t, OutcomeTimeout, obs.outcomes()[SourceNFT])
	})
	t.Run("slow tokens are reported as failed", func(t *testing.T) {
		f := newFixture()
		f.tokens.delay = 5 * time.Second

		p, err := f.aggregator(WithTimeout(100*time.Millisecond)).Aggregate(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, p.Tokens, 2)
		for _, tb := range p.Tokens {
			assert.True(t, tb.Failed())
			assert.True(t, errors.Is(tb.Err, ErrSourceTimeout))
			assert.True(t, tb.Amount.IsZero())
		}
		assert.True(t, p.IsDegraded(SourceTokens))
	})
	t.Run("slow chain is fatal", func(t *testing.T) {
		f := newFixture()
		f.chain.delay = 5 * time.Second

		p, err := f.aggregator(WithTimeout(100*time.Millisecond)).Aggregate(context.Background(), alice)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, ErrAggregationFailed))
		assert.True(t, errors.Is(err, ErrSourceTimeout))
	})
}

func TestAggregateCanceledContext(t *testing.T) {
	f := newFixture()
	f.chain.delay = time.Second
	f.tokens.delay = time.Second
	f.nfts.delay = time.Second
	f.votes.delay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	p, err := f.aggregator().Aggregate(ctx, alice)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrAggregationFailed))
}

func TestWithPolicyOverrides(t *testing.T) {
	t.Run("fatal nft", func(t *testing.T) {
		f := newFixture()
		f.nfts.err = errors.New("down")
		agg := f.aggregator(WithPolicy(SourceNFT, PolicyFatal))
		assert.Equal(t, PolicyFatal, agg.Policy(SourceNFT))

		_, err := agg.Aggregate(context.Background(), alice)
		assert.True(t, errors.Is(err, ErrAggregationFailed))
		assert.True(t, errors.Is(err, ErrIndexerUnavailable))
	})
	t.Run("degraded chain", func(t *testing.T) {
		f := newFixture()
		f.chain.balanceErr = errors.New("down")
		p, err := f.aggregator(WithPolicy(SourceChain, PolicyDegrade)).Aggregate(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, ChainFacts{}, p.Chain)
		assert.True(t, p.IsDegraded(SourceChain))
	})
	t.Run("degraded tokens hide the error", func(t *testing.T) {
		f := newFixture()
		f.tokens.delay = time.Second
		p, err := f.aggregator(WithTimeout(50*time.Millisecond), WithPolicy(SourceTokens, PolicyDegrade)).Aggregate(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, p.Tokens, 2)
		assert.False(t, p.Tokens[0].Failed())
		assert.True(t, p.Tokens[0].Amount.IsZero())
	})
}

func TestDefaultPolicies(t *testing.T) {
	p := DefaultPolicies()
	assert.Equal(t, PolicyFatal, p[SourceChain])
	assert.Equal(t, PolicyIsolate, p[SourceTokens])
	assert.Equal(t, PolicyDegrade, p[SourceNFT])
	assert.Equal(t, PolicyDegrade, p[SourceGovernance])

	p[SourceChain] = PolicyDegrade
	assert.Equal(t, PolicyFatal, DefaultPolicies()[SourceChain])
	assert.Equal(t, "isolate", PolicyIsolate.String())
}

func TestDegradedOrder(t *testing.T) {
	f := newFixture()
	f.votes.err = errors.New("down")
	f.nfts.err = errors.New("down")
	p, err := f.aggregator().Aggregate(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []Source{SourceNFT, SourceGovernance}, p.Degraded)
}
