package networks

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/tranvictor/repscan/common"
)

// Token is an ERC20 token whose balance is part of a profile.
type Token struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (t Token) checksummed() (string, error) {
	return common.NormalizeAddress(t.Address)
}

type TokenSource []Token

func (self TokenSource) Len() int {
	return len(self)
}

func (self TokenSource) String(i int) string {
	return fmt.Sprintf("%s_%s_%s", self[i].Symbol, strings.ReplaceAll(self[i].Name, " ", "_"), self[i].Address)
}

// FindTokens fuzzy matches query against the symbol, name and address of
// the network's tokens, best match first. An empty query returns them all
// in configured order.
func FindTokens(n Network, query string) []Token {
	source := TokenSource(n.GetTokens())
	if strings.TrimSpace(query) == "" {
		return source
	}
	matches := fuzzy.FindFrom(query, source)
	res := make([]Token, 0, len(matches))
	for _, m := range matches {
		res = append(res, source[m.Index])
	}
	return res
}
