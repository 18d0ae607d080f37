package util

import "github.com/tranvictor/repscan/ui"

// TokenDisplay is the human-readable view-model for one token balance.
// A failed read keeps its row with the error instead of a balance.
type TokenDisplay struct {
	Symbol  string        `json:"symbol"`
	Balance ui.StyledText `json:"balance"` // serializes as string
	Error   string        `json:"error,omitempty"`
}

// ProfileDisplay is the complete human-readable view-model for a profile.
// StyledText fields carry Severity annotations used only by the terminal
// print phase.
type ProfileDisplay struct {
	Address     string        `json:"address"`
	Network     string        `json:"network"`
	Name        ui.StyledText `json:"name"`
	Balance     ui.StyledText `json:"balance"`
	TxCount     string        `json:"tx_count"`
	AccountType ui.StyledText `json:"account_type"`
	// Deployments is a heuristic, see profile.Profile.ContractDeployments.
	Deployments string         `json:"contract_deployments"`
	Tokens      []TokenDisplay `json:"tokens"`
	NFTs        ui.StyledText  `json:"nfts"`
	DAOVotes    ui.StyledText  `json:"dao_votes"`
	Degraded    []string       `json:"degraded,omitempty"`
}

type RoleDisplay struct {
	Role         ui.StyledText `json:"role"`
	GitHubScore  string        `json:"github_score"`
	OnchainScore string        `json:"onchain_score"`
}

type NetworkDisplay struct {
	Name         string   `json:"name"`
	ChainID      string   `json:"chain_id"`
	NativeToken  string   `json:"native_token"`
	Alternatives []string `json:"alternative_names,omitempty"`
	Tokens       int      `json:"tokens"`
}
