package profile

import (
	"context"
	"fmt"
)

// NFTIndexer counts the NFTs an address owns.
type NFTIndexer interface {
	CountNFTs(ctx context.Context, owner string) (int, error)
}

type NFTFetcher struct {
	indexer NFTIndexer
}

func NewNFTFetcher(indexer NFTIndexer) *NFTFetcher {
	return &NFTFetcher{indexer: indexer}
}

func (f *NFTFetcher) Fetch(ctx context.Context, address string) (NFTSummary, error) {
	count, err := f.indexer.CountNFTs(ctx, address)
	if err != nil {
		return NFTSummary{}, fmt.Errorf("%w: %w", ErrIndexerUnavailable, err)
	}
	if count < 0 {
		count = 0
	}
	return NFTSummary{Count: count, HasAny: count > 0}, nil
}
