package profile

import (
	"context"
	"fmt"
	"strings"
)

// VoteCounter counts the governance votes cast by an address.
type VoteCounter interface {
	CountVotes(ctx context.Context, voter string) (int, error)
}

type GovernanceFetcher struct {
	counter VoteCounter
}

func NewGovernanceFetcher(counter VoteCounter) *GovernanceFetcher {
	return &GovernanceFetcher{counter: counter}
}

// Fetch counts votes of the lower cased address. No votes is a valid
// answer and yields a zero count.
func (f *GovernanceFetcher) Fetch(ctx context.Context, address string) (GovernanceSummary, error) {
	count, err := f.counter.CountVotes(ctx, strings.ToLower(address))
	if err != nil {
		return GovernanceSummary{}, fmt.Errorf("%w: %w", ErrGovernanceUnavailable, err)
	}
	return GovernanceSummary{VoteCount: count}, nil
}
