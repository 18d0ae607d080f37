package profile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tranvictor/repscan/common"
)

const DefaultTimeout = 10 * time.Second

type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeTimeout Outcome = "timeout"
)

// Observer is told how every source of every aggregation went.
type Observer interface {
	ObserveSource(source Source, outcome Outcome, took time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveSource(Source, Outcome, time.Duration) {}

// Aggregator builds profiles by running all sources concurrently under a
// single deadline and applying the policy table to whatever failed.
type Aggregator struct {
	chain      *ChainFetcher
	tokens     *TokenFetcher
	nfts       *NFTFetcher
	governance *GovernanceFetcher

	timeout  time.Duration
	policies map[Source]Policy
	log      *zap.Logger
	observer Observer
	tracer   trace.Tracer
}

type Option func(*Aggregator)

// WithTimeout sets the deadline shared by all sources of one aggregation.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithPolicy overrides the failure policy of one source.
func WithPolicy(source Source, policy Policy) Option {
	return func(a *Aggregator) {
		a.policies[source] = policy
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

func WithObserver(o Observer) Option {
	return func(a *Aggregator) {
		if o != nil {
			a.observer = o
		}
	}
}

func NewAggregator(
	chain *ChainFetcher,
	tokens *TokenFetcher,
	nfts *NFTFetcher,
	governance *GovernanceFetcher,
	opts ...Option,
) *Aggregator {
	a := &Aggregator{
		chain:      chain,
		tokens:     tokens,
		nfts:       nfts,
		governance: governance,
		timeout:    DefaultTimeout,
		policies:   DefaultPolicies(),
		log:        zap.NewNop(),
		observer:   nopObserver{},
		tracer:     otel.Tracer("github.com/tranvictor/repscan/profile"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Timeout() time.Duration {
	return a.timeout
}

func (a *Aggregator) Policy(source Source) Policy {
	p, found := a.policies[source]
	if !found {
		return PolicyFatal
	}
	return p
}

// task is one source of a profile. run returns a function merging its
// result into the profile; fallback fills the profile when run failed.
type task struct {
	source   Source
	run      func(ctx context.Context, address string) (func(*Profile), error)
	fallback func(p *Profile, err error, policy Policy)
}

type taskResult struct {
	source Source
	assign func(*Profile)
	err    error
	took   time.Duration
}

func (a *Aggregator) tasks() []task {
	return []task{
		{
			source: SourceChain,
			run: func(ctx context.Context, address string) (func(*Profile), error) {
				facts, err := a.chain.Fetch(ctx, address)
				return func(p *Profile) { p.Chain = facts }, err
			},
			fallback: func(p *Profile, _ error, _ Policy) { p.Chain = ChainFacts{} },
		},
		{
			source: SourceTokens,
			run: func(ctx context.Context, address string) (func(*Profile), error) {
				balances, err := a.tokens.Fetch(ctx, address)
				return func(p *Profile) { p.Tokens = balances }, err
			},
			fallback: func(p *Profile, err error, policy Policy) {
				tokens := a.tokens.Tokens()
				p.Tokens = make([]TokenBalance, len(tokens))
				for i, t := range tokens {
					if policy == PolicyIsolate {
						p.Tokens[i] = FailedToken(t, fmt.Errorf("%w: %s: %w", ErrTokenQueryFailed, t.Symbol, err))
					} else {
						p.Tokens[i] = FailedToken(t, nil)
					}
				}
			},
		},
		{
			source: SourceNFT,
			run: func(ctx context.Context, address string) (func(*Profile), error) {
				summary, err := a.nfts.Fetch(ctx, address)
				return func(p *Profile) { p.NFTs = summary }, err
			},
			fallback: func(p *Profile, _ error, _ Policy) { p.NFTs = NFTSummary{} },
		},
		{
			source: SourceGovernance,
			run: func(ctx context.Context, address string) (func(*Profile), error) {
				summary, err := a.governance.Fetch(ctx, address)
				return func(p *Profile) { p.Governance = summary }, err
			},
			fallback: func(p *Profile, _ error, _ Policy) { p.Governance = GovernanceSummary{} },
		},
	}
}

func (a *Aggregator) runTask(ctx context.Context, t task, address string, results chan<- taskResult) {
	ctx, span := a.tracer.Start(ctx, "profile.fetch."+string(t.source),
		trace.WithAttributes(attribute.String("source", string(t.source))),
	)
	defer span.End()

	start := time.Now()
	assign, err := t.run(ctx, address)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	results <- taskResult{
		source: t.source,
		assign: assign,
		err:    err,
		took:   time.Since(start),
	}
}

// Aggregate validates address and builds its profile. Invalid input fails
// with common.ErrInvalidAddress before any source is queried. A failing
// source with a fatal policy fails the whole call with
// ErrAggregationFailed; any other failure leaves its fallback in the
// profile and is listed in Profile.Degraded. Sources still running at the
// deadline are treated as failed with ErrSourceTimeout.
func (a *Aggregator) Aggregate(ctx context.Context, address string) (*Profile, error) {
	address, err := common.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	ctx, span := a.tracer.Start(ctx, "profile.Aggregate",
		trace.WithAttributes(attribute.String("address", address)),
	)
	defer span.End()

	// cancelled on return so that late sources stop their calls
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := a.tasks()
	pending := make(map[Source]task, len(tasks))
	// buffered so late senders never block after we stop listening
	results := make(chan taskResult, len(tasks))
	for _, t := range tasks {
		pending[t.source] = t
		go a.runTask(fetchCtx, t, address, results)
	}

	deadline := time.NewTimer(a.timeout)
	defer deadline.Stop()

	profile := &Profile{Address: address}
	for len(pending) > 0 {
		select {
		case r := <-results:
			t := pending[r.source]
			delete(pending, r.source)
			if r.err == nil {
				a.observer.ObserveSource(r.source, OutcomeOK, r.took)
				r.assign(profile)
				continue
			}
			a.observer.ObserveSource(r.source, OutcomeFailed, r.took)
			if err := a.fail(profile, t, r.err); err != nil {
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
		case <-deadline.C:
			for _, src := range AllSources {
				t, found := pending[src]
				if !found {
					continue
				}
				delete(pending, src)
				a.observer.ObserveSource(src, OutcomeTimeout, a.timeout)
				if err := a.fail(profile, t, fmt.Errorf("%s after %s: %w", src, a.timeout, ErrSourceTimeout)); err != nil {
					span.SetStatus(codes.Error, err.Error())
					return nil, err
				}
			}
		case <-ctx.Done():
			err := fmt.Errorf("%w: %w", ErrAggregationFailed, ctx.Err())
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	sortSources(profile.Degraded)
	return profile, nil
}

func (a *Aggregator) fail(p *Profile, t task, err error) error {
	policy := a.Policy(t.source)
	if policy == PolicyFatal {
		a.log.Error("source failed, dropping profile",
			zap.String("address", p.Address),
			zap.String("source", string(t.source)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrAggregationFailed, err)
	}
	a.log.Warn("source degraded",
		zap.String("address", p.Address),
		zap.String("source", string(t.source)),
		zap.Stringer("policy", policy),
		zap.Error(err),
	)
	t.fallback(p, err, policy)
	p.Degraded = append(p.Degraded, t.source)
	return nil
}

func sortSources(sources []Source) {
	rank := map[Source]int{}
	for i, s := range AllSources {
		rank[s] = i
	}
	sort.Slice(sources, func(i, j int) bool { return rank[sources[i]] < rank[sources[j]] })
}
