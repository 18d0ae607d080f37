package broadcaster

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcNode struct {
	fail  bool
	calls atomic.Int32
}

func (n *rpcNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	n.calls.Add(1)
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if n.fail || req.Method != "eth_sendRawTransaction" {
		resp["error"] = map[string]interface{}{"code": -32000, "message": "nonce too low"}
	} else {
		resp["result"] = "0x"
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func signedTx(t *testing.T) *types.Transaction {
	t.Helper()
	to := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	return types.NewTx(&types.LegacyTx{Nonce: 1, GasPrice: big.NewInt(1), Gas: 21000, To: &to, Value: big.NewInt(0)})
}

func TestBroadcastTxReachesOneNode(t *testing.T) {
	good, bad := &rpcNode{}, &rpcNode{fail: true}
	goodSrv, badSrv := httptest.NewServer(good), httptest.NewServer(bad)
	t.Cleanup(goodSrv.Close)
	t.Cleanup(badSrv.Close)

	b := NewGenericBroadcaster(map[string]string{"good": goodSrv.URL, "bad": badSrv.URL}, nil)
	t.Cleanup(b.Close)
	tx := signedTx(t)

	hash, ok, err := b.BroadcastTx(context.Background(), tx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tx.Hash().Hex(), hash)
	assert.EqualValues(t, 1, good.calls.Load())
	assert.EqualValues(t, 1, bad.calls.Load())
}

func TestBroadcastTxAllNodesFail(t *testing.T) {
	bad := &rpcNode{fail: true}
	srv := httptest.NewServer(bad)
	t.Cleanup(srv.Close)

	b := NewGenericBroadcaster(map[string]string{"bad": srv.URL}, nil)
	_, ok, err := b.BroadcastTx(context.Background(), signedTx(t))
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonce too low")
}

func TestBroadcastTxWithoutNodes(t *testing.T) {
	b := NewGenericBroadcaster(nil, nil)
	_, ok, err := b.BroadcastTx(context.Background(), signedTx(t))
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNoClients)
}
