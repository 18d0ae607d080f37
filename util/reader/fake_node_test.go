package reader

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type contractCall func(input []byte) ([]byte, error)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fakeNode is a minimal JSON-RPC node serving the handful of methods the
// reader uses.
type fakeNode struct {
	mu        sync.Mutex
	balance   *big.Int
	nonce     uint64
	code      []byte
	contracts map[string]contractCall // lower(to) + ":" + hex selector
	failAll   bool
	calls     map[string]int
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		balance:   big.NewInt(0),
		contracts: map[string]contractCall{},
		calls:     map[string]int{},
	}
}

func (f *fakeNode) handle(to string, selector []byte, call contractCall) {
	f.contracts[strings.ToLower(to)+":"+hex.EncodeToString(selector)] = call
}

func (f *fakeNode) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeNode) start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv.URL
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.calls[req.Method]++
	f.mu.Unlock()

	result, rerr := f.dispatch(req.Method, req.Params)
	resp := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
	}
	if rerr != nil {
		resp["error"] = rerr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeNode) dispatch(method string, params []json.RawMessage) (interface{}, *rpcError) {
	if f.failAll {
		return nil, &rpcError{Code: -32000, Message: "node is down"}
	}
	switch method {
	case "eth_chainId":
		return "0x1", nil
	case "eth_blockNumber":
		return "0x10", nil
	case "eth_gasPrice":
		return hexutil.EncodeBig(big.NewInt(2_000_000_000)), nil
	case "eth_getBalance":
		return hexutil.EncodeBig(f.balance), nil
	case "eth_getTransactionCount":
		return hexutil.EncodeUint64(f.nonce), nil
	case "eth_getCode":
		return hexutil.Encode(f.code), nil
	case "eth_call":
		var msg struct {
			To    string        `json:"to"`
			Input hexutil.Bytes `json:"input"`
			Data  hexutil.Bytes `json:"data"`
		}
		if len(params) == 0 || json.Unmarshal(params[0], &msg) != nil {
			return nil, &rpcError{Code: -32602, Message: "invalid params"}
		}
		input := msg.Input
		if len(input) == 0 {
			input = msg.Data
		}
		if len(input) < 4 {
			return nil, &rpcError{Code: -32000, Message: "execution reverted"}
		}
		call, ok := f.contracts[strings.ToLower(msg.To)+":"+hex.EncodeToString(input[:4])]
		if !ok {
			return nil, &rpcError{Code: -32000, Message: "execution reverted"}
		}
		out, err := call(input)
		if err != nil {
			return nil, &rpcError{Code: -32000, Message: err.Error()}
		}
		return hexutil.Encode(out), nil
	}
	return nil, &rpcError{Code: -32601, Message: "method not found: " + method}
}
