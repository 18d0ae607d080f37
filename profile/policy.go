package profile

import "fmt"

// Policy decides what a source failure does to the whole profile.
type Policy int

const (
	// PolicyFatal aborts the profile.
	PolicyFatal Policy = iota
	// PolicyIsolate keeps the profile and reports the error next to the
	// affected values.
	PolicyIsolate
	// PolicyDegrade keeps the profile and substitutes neutral zero values.
	PolicyDegrade
)

func (p Policy) String() string {
	switch p {
	case PolicyFatal:
		return "fatal"
	case PolicyIsolate:
		return "isolate"
	case PolicyDegrade:
		return "degrade"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// DefaultPolicies returns a fresh copy of the default policy table.
func DefaultPolicies() map[Source]Policy {
	return map[Source]Policy{
		SourceChain:      PolicyFatal,
		SourceTokens:     PolicyIsolate,
		SourceNFT:        PolicyDegrade,
		SourceGovernance: PolicyDegrade,
	}
}
