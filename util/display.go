package util

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tranvictor/repscan/networks"
	"github.com/tranvictor/repscan/profile"
	"github.com/tranvictor/repscan/scoring"
	"github.com/tranvictor/repscan/ui"
)

const displayPrecision = 6

var printer = message.NewPrinter(language.English)

// FormatAmount rounds d for display and groups the integer digits:
// 1234567.1234567 reads as 1,234,567.123457.
func FormatAmount(d decimal.Decimal) string {
	rounded := d.Round(displayPrecision)
	intPart := rounded.Truncate(0)
	frac := strings.TrimPrefix(rounded.Sub(intPart).Abs().String(), "0")
	if !intPart.BigInt().IsInt64() {
		return rounded.String()
	}
	sign := ""
	if rounded.IsNegative() && intPart.IsZero() {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", intPart.IntPart()) + frac
}

func FormatCount(n uint64) string {
	return printer.Sprintf("%d", n)
}

// ── Build phase (pure: no UI side-effects) ──────────────────────────────────

func buildProfileDisplay(p *profile.Profile, network networks.Network) *ProfileDisplay {
	d := &ProfileDisplay{
		Address:     p.Address,
		Network:     network.GetName(),
		Name:        ui.StyledText{Text: "-"},
		Balance:     ui.StyledText{Text: FormatAmount(p.Chain.NativeBalance) + " " + network.GetNativeTokenSymbol()},
		TxCount:     FormatCount(p.Chain.TxCount),
		AccountType: ui.StyledText{Text: "EOA"},
		Deployments: fmt.Sprintf("%d", p.ContractDeployments()),
		NFTs:        ui.StyledText{Text: fmt.Sprintf("%d", p.NFTs.Count)},
		DAOVotes:    ui.StyledText{Text: fmt.Sprintf("%d", p.Governance.VoteCount)},
	}
	if p.Chain.ReverseName != nil {
		d.Name = ui.StyledText{Text: *p.Chain.ReverseName, Severity: ui.SeveritySuccess}
	}
	if p.Chain.IsContract {
		d.AccountType = ui.StyledText{Text: "contract", Severity: ui.SeverityCritical}
	}
	if p.IsDegraded(profile.SourceNFT) {
		d.NFTs = ui.StyledText{Text: "unavailable", Severity: ui.SeverityWarn}
	}
	if p.IsDegraded(profile.SourceGovernance) {
		d.DAOVotes = ui.StyledText{Text: "unavailable", Severity: ui.SeverityWarn}
	}
	for _, t := range p.Tokens {
		td := TokenDisplay{Symbol: t.Symbol, Error: t.Error}
		if t.Failed() {
			td.Balance = ui.StyledText{Text: "failed", Severity: ui.SeverityError}
		} else {
			td.Balance = ui.StyledText{Text: FormatAmount(t.Amount)}
		}
		d.Tokens = append(d.Tokens, td)
	}
	for _, s := range p.Degraded {
		d.Degraded = append(d.Degraded, string(s))
	}
	return d
}

func buildRoleDisplay(r *scoring.Result) *RoleDisplay {
	return &RoleDisplay{
		Role:         ui.StyledText{Text: r.Role, Severity: ui.SeveritySuccess},
		GitHubScore:  fmt.Sprintf("%.2f", r.GitHubScore),
		OnchainScore: fmt.Sprintf("%.2f", r.OnchainScore),
	}
}

func buildNetworkDisplay(n networks.Network) NetworkDisplay {
	return NetworkDisplay{
		Name:         n.GetName(),
		ChainID:      fmt.Sprintf("%d", n.GetChainID()),
		NativeToken:  n.GetNativeTokenSymbol(),
		Alternatives: n.GetAlternativeNames(),
		Tokens:       len(n.GetTokens()),
	}
}

// ── Print phase (reads only from the display struct, colours via u.Style) ────

func printProfileDisplay(u ui.UI, d *ProfileDisplay) {
	u.Section("Profile")
	u.KeyValue([][2]string{
		{"Address", d.Address},
		{"Network", d.Network},
		{"Name", u.Style(d.Name)},
		{"Balance", u.Style(d.Balance)},
		{"Tx count", d.TxCount},
		{"Account", u.Style(d.AccountType)},
		{"Deployments", d.Deployments},
		{"NFTs", u.Style(d.NFTs)},
		{"DAO votes", u.Style(d.DAOVotes)},
	})

	if len(d.Tokens) > 0 {
		u.Section("Tokens")
		rows := make([][]string, 0, len(d.Tokens))
		for _, t := range d.Tokens {
			rows = append(rows, []string{t.Symbol, u.Style(t.Balance), t.Error})
		}
		u.Table([]string{"Token", "Balance", "Error"}, rows)
	}

	if len(d.Degraded) > 0 {
		u.Warn("Some sources were unavailable, their values are fallbacks: %s", strings.Join(d.Degraded, ", "))
	}
}

func printRoleDisplay(u ui.UI, d *RoleDisplay) {
	u.Section("Role")
	u.KeyValue([][2]string{
		{"Role", u.Style(d.Role)},
		{"GitHub score", d.GitHubScore},
		{"Onchain score", d.OnchainScore},
	})
}

// ── Public API ───────────────────────────────────────────────────────────────

// ProfileView builds the view-model of p without printing it, for json
// output.
func ProfileView(p *profile.Profile, network networks.Network) *ProfileDisplay {
	return buildProfileDisplay(p, network)
}

func RoleView(r *scoring.Result) *RoleDisplay {
	return buildRoleDisplay(r)
}

// DisplayProfile prints p and returns the view-model it printed.
func DisplayProfile(u ui.UI, p *profile.Profile, network networks.Network) *ProfileDisplay {
	d := buildProfileDisplay(p, network)
	printProfileDisplay(u, d)
	return d
}

func DisplayRole(u ui.UI, r *scoring.Result) *RoleDisplay {
	d := buildRoleDisplay(r)
	printRoleDisplay(u, d)
	return d
}

// DisplayTokens prints the token list of a network, one row per token.
func DisplayTokens(u ui.UI, network networks.Network, tokens []networks.Token) {
	if len(tokens) == 0 {
		u.Warn("No tokens found on %s", network.GetName())
		return
	}
	rows := make([][]string, 0, len(tokens))
	for _, t := range tokens {
		rows = append(rows, []string{t.Symbol, t.Name, t.Address})
	}
	u.Table([]string{"Symbol", "Name", "Address"}, rows)
}

func DisplayNetworks(u ui.UI, list []networks.Network) []NetworkDisplay {
	displays := make([]NetworkDisplay, 0, len(list))
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		d := buildNetworkDisplay(n)
		displays = append(displays, d)
		rows = append(rows, []string{d.Name, d.ChainID, d.NativeToken, strings.Join(d.Alternatives, ", "), fmt.Sprintf("%d", d.Tokens)})
	}
	u.Table([]string{"Network", "Chain ID", "Native", "Aliases", "Tokens"}, rows)
	return displays
}
