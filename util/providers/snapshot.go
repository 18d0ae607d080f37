package providers

import (
	"context"
	"fmt"
	"strings"
)

const votesQuery = `query Votes($voter: String!, $first: Int!) {
  votes(first: $first, where: {voter: $voter}) {
    id
  }
}`

// SnapshotHub counts governance votes on a Snapshot GraphQL hub.
type SnapshotHub struct {
	url      string
	pageSize int
	client   *Client
}

func NewSnapshotHub(url string, pageSize int, client *Client) *SnapshotHub {
	return &SnapshotHub{
		url:      url,
		pageSize: pageSize,
		client:   client,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type votesResponse struct {
	Data struct {
		Votes []struct {
			ID string `json:"id"`
		} `json:"votes"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// CountVotes returns the number of votes cast by voter, capped at the
// hub page size. Snapshot stores voters lower cased.
func (sh *SnapshotHub) CountVotes(ctx context.Context, voter string) (int, error) {
	req := graphQLRequest{
		Query: votesQuery,
		Variables: map[string]interface{}{
			"voter": strings.ToLower(voter),
			"first": sh.pageSize,
		},
	}
	resp := votesResponse{}
	if err := sh.client.PostJSON(ctx, sh.url, req, &resp); err != nil {
		return 0, fmt.Errorf("snapshot votes: %w", err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return 0, fmt.Errorf("snapshot votes: %s", strings.Join(msgs, "; "))
	}
	return len(resp.Data.Votes), nil
}
