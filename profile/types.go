package profile

import (
	"github.com/shopspring/decimal"
)

// Source names one of the independent data sources a profile is built
// from.
type Source string

const (
	SourceChain      Source = "chain"
	SourceTokens     Source = "tokens"
	SourceNFT        Source = "nft"
	SourceGovernance Source = "governance"
)

// AllSources lists every source in the order they are reported.
var AllSources = []Source{SourceChain, SourceTokens, SourceNFT, SourceGovernance}

type ChainFacts struct {
	NativeBalance decimal.Decimal
	TxCount       uint64
	IsContract    bool
	// ReverseName is nil when the address has no verified primary name or
	// the lookup failed.
	ReverseName *string
}

type TokenBalance struct {
	Symbol  string
	Address string
	Amount  decimal.Decimal
	// Error is empty when the balance was read successfully.
	Error string
	Err   error
}

func (tb TokenBalance) Failed() bool {
	return tb.Error != ""
}

type NFTSummary struct {
	Count  int
	HasAny bool
}

type GovernanceSummary struct {
	VoteCount int
}

// Profile is the reputation profile of one address. It is rebuilt on
// every request.
type Profile struct {
	Address    string
	Chain      ChainFacts
	Tokens     []TokenBalance
	NFTs       NFTSummary
	Governance GovernanceSummary
	// Degraded lists the sources whose values are fallbacks.
	Degraded []Source
}

// ContractDeployments is a heuristic: 1 when code lives at the address,
// 0 otherwise. Deployments made by an EOA are not counted.
func (p *Profile) ContractDeployments() int {
	if p.Chain.IsContract {
		return 1
	}
	return 0
}

func (p *Profile) IsDegraded(s Source) bool {
	for _, d := range p.Degraded {
		if d == s {
			return true
		}
	}
	return false
}
