package profile

import "errors"

var (
	// ErrAggregationFailed is returned by Aggregate when a source with a
	// fatal policy failed. It wraps the source error.
	ErrAggregationFailed = errors.New("aggregation failed")

	ErrChainDataUnavailable  = errors.New("chain data unavailable")
	ErrTokenQueryFailed      = errors.New("token query failed")
	ErrIndexerUnavailable    = errors.New("nft indexer unavailable")
	ErrGovernanceUnavailable = errors.New("governance data unavailable")
	ErrSourceTimeout         = errors.New("source timed out")
)
