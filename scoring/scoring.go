// Package scoring forwards a combined GitHub and on-chain profile to the
// role scoring service.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/tranvictor/repscan/profile"
	"github.com/tranvictor/repscan/util/providers"
)

var ErrInvalidScore = errors.New("scoring service returned no role")

type TokenBalance struct {
	Symbol  string  `json:"symbol"`
	Balance float64 `json:"balance"`
	Error   string  `json:"error,omitempty"`
}

// Request is the fixed set of signals the scoring model accepts. Fields
// sent by clients outside this set are dropped.
type Request struct {
	TotalContributions        int `json:"totalContributions"`
	PullRequests              int `json:"pullRequests"`
	Issues                    int `json:"issues"`
	RepositoriesContributedTo int `json:"repositoriesContributedTo"`
	Followers                 int `json:"followers"`
	Repositories              int `json:"repositories"`

	EthBalance          float64        `json:"ethBalance"`
	TxCount             uint64         `json:"txCount"`
	IsContractDeployer  bool           `json:"isContractDeployer"`
	ContractDeployments int            `json:"contractDeployments"`
	TokenBalances       []TokenBalance `json:"tokenBalances"`
	NFTCount            int            `json:"nftCount"`
	DAOVotes            int            `json:"daoVotes"`
	HasNFTs             bool           `json:"hasNFTs"`
}

// FromProfile fills the on-chain half of a request. GitHub signals are
// left zero.
func FromProfile(p *profile.Profile) Request {
	tokens := make([]TokenBalance, 0, len(p.Tokens))
	for _, t := range p.Tokens {
		tokens = append(tokens, TokenBalance{
			Symbol:  t.Symbol,
			Balance: t.Amount.InexactFloat64(),
			Error:   t.Error,
		})
	}
	return Request{
		EthBalance:          p.Chain.NativeBalance.InexactFloat64(),
		TxCount:             p.Chain.TxCount,
		IsContractDeployer:  p.Chain.IsContract,
		ContractDeployments: p.ContractDeployments(),
		TokenBalances:       tokens,
		NFTCount:            p.NFTs.Count,
		DAOVotes:            p.Governance.VoteCount,
		HasNFTs:             p.NFTs.HasAny,
	}
}

type Result struct {
	Role         string  `json:"role"`
	GitHubScore  float64 `json:"githubScore"`
	OnchainScore float64 `json:"onchainScore"`
}

type predictResponse struct {
	Role         string  `json:"role"`
	GitHubScore  float64 `json:"github_score"`
	OnchainScore float64 `json:"onchain_score"`
}

type Client struct {
	url  string
	http *providers.Client
}

func NewClient(url string, http *providers.Client) *Client {
	return &Client{url: url, http: http}
}

func (c *Client) CalculateRole(ctx context.Context, req Request) (*Result, error) {
	if req.TokenBalances == nil {
		req.TokenBalances = []TokenBalance{}
	}
	resp := predictResponse{}
	if err := c.http.PostJSON(ctx, c.url, req, &resp); err != nil {
		return nil, fmt.Errorf("scoring request: %w", err)
	}
	if resp.Role == "" {
		return nil, ErrInvalidScore
	}
	return &Result{
		Role:         resp.Role,
		GitHubScore:  resp.GitHubScore,
		OnchainScore: resp.OnchainScore,
	}, nil
}
