package networks

import (
	"fmt"
	"os"
	"strings"
)

const ENSRegistryAddress = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

// Nodes resolves the node set for a network. An explicit override wins,
// then the network's own env variable, then Infura when a key is given,
// then the built-in public nodes.
func Nodes(n Network, override string, infuraKey string) map[string]string {
	if url := strings.TrimSpace(override); url != "" {
		return map[string]string{"custom-node": url}
	}
	if url := strings.TrimSpace(os.Getenv(n.GetNodeVariableName())); url != "" {
		return map[string]string{fmt.Sprintf("%s-env", n.GetName()): url}
	}
	if url := n.GetInfuraNode(infuraKey); url != "" {
		return map[string]string{fmt.Sprintf("%s-infura", n.GetName()): url}
	}
	res := map[string]string{}
	for name, url := range n.GetDefaultNodes() {
		res[name] = url
	}
	return res
}
