package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tranvictor/repscan/common"
	"github.com/tranvictor/repscan/profile"
)

const (
	msgInvalidAddress  = "Invalid Ethereum address"
	msgProfileFailed   = "Failed to fetch onchain data"
	msgRoleFailed      = "Failed to calculate role"
	msgInvalidBody     = "Invalid request body"
	msgGitHubAuthError = "GitHub auth failed"
)

type errorResponse struct {
	Error string `json:"error"`
}

type tokenBalanceResponse struct {
	Symbol  string  `json:"symbol"`
	Balance float64 `json:"balance"`
	Error   string  `json:"error,omitempty"`
}

type profileResponse struct {
	Address             string                 `json:"address"`
	Name                *string                `json:"name"`
	EthBalance          float64                `json:"ethBalance"`
	TxCount             uint64                 `json:"txCount"`
	IsContractDeployer  bool                   `json:"isContractDeployer"`
	ContractDeployments int                    `json:"contractDeployments"`
	TokenBalances       []tokenBalanceResponse `json:"tokenBalances"`
	NFTCount            int                    `json:"nftCount"`
	HasNFTs             bool                   `json:"hasNFTs"`
	DAOVotes            int                    `json:"daoVotes"`
}

// renderProfile maps a profile to its wire shape. Amounts are exact
// decimals internally and become JSON numbers here.
func renderProfile(p *profile.Profile) profileResponse {
	tokens := make([]tokenBalanceResponse, 0, len(p.Tokens))
	for _, t := range p.Tokens {
		tokens = append(tokens, tokenBalanceResponse{
			Symbol:  t.Symbol,
			Balance: t.Amount.InexactFloat64(),
			Error:   t.Error,
		})
	}
	return profileResponse{
		Address:             p.Address,
		Name:                p.Chain.ReverseName,
		EthBalance:          p.Chain.NativeBalance.InexactFloat64(),
		TxCount:             p.Chain.TxCount,
		IsContractDeployer:  p.Chain.IsContract,
		ContractDeployments: p.ContractDeployments(),
		TokenBalances:       tokens,
		NFTCount:            p.NFTs.Count,
		HasNFTs:             p.NFTs.HasAny,
		DAOVotes:            p.Governance.VoteCount,
	}
}

// renderError maps an aggregation error to a status and body. Internal
// details never reach the client.
func renderError(err error) (int, errorResponse) {
	if errors.Is(err, common.ErrInvalidAddress) {
		return http.StatusBadRequest, errorResponse{Error: msgInvalidAddress}
	}
	return http.StatusInternalServerError, errorResponse{Error: msgProfileFailed}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
