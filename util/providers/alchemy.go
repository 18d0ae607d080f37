package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMissingAPIKey = errors.New("missing api key")

// AlchemyIndexer counts NFTs through Alchemy's NFT API.
type AlchemyIndexer struct {
	baseURL string
	apiKey  string
	client  *Client
}

func NewAlchemyIndexer(baseURL, apiKey string, client *Client) *AlchemyIndexer {
	return &AlchemyIndexer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}
}

type ownedNFTsResponse struct {
	OwnedNfts  []struct{} `json:"ownedNfts"`
	TotalCount *int       `json:"totalCount"`
}

func (ai *AlchemyIndexer) getNFTsForOwnerURL(owner string) string {
	q := url.Values{}
	q.Set("owner", owner)
	q.Set("withMetadata", "false")
	q.Set("pageSize", "100")
	return fmt.Sprintf("%s/%s/getNFTsForOwner?%s", ai.baseURL, url.PathEscape(ai.apiKey), q.Encode())
}

// CountNFTs returns how many NFTs owner holds. The provider's total count
// is used when present, otherwise the size of the first page.
func (ai *AlchemyIndexer) CountNFTs(ctx context.Context, owner string) (int, error) {
	if ai.apiKey == "" {
		return 0, fmt.Errorf("alchemy: %w", ErrMissingAPIKey)
	}
	resp := ownedNFTsResponse{}
	if err := ai.client.GetJSON(ctx, ai.getNFTsForOwnerURL(owner), &resp); err != nil {
		return 0, fmt.Errorf("alchemy getNFTsForOwner: %w", err)
	}
	if resp.TotalCount != nil {
		return *resp.TotalCount, nil
	}
	return len(resp.OwnedNfts), nil
}
