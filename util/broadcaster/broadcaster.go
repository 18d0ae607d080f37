package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/tranvictor/repscan/common"
)

var ErrNoClients = errors.New("no node to broadcast to")

const TIMEOUT = 4 * time.Second

// Broadcaster takes a signed tx and try to broadcast it to all
// nodes that it manages as fast as possible. It reports whether
// the tx reached at least 1 node.
type Broadcaster struct {
	clients map[string]*rpc.Client
}

func (b *Broadcaster) GetNodes() map[string]*rpc.Client {
	return b.clients
}

func (b *Broadcaster) Close() {
	for _, c := range b.clients {
		c.Close()
	}
}

func (b *Broadcaster) broadcast(ctx context.Context, client *rpc.Client, data string) error {
	return client.CallContext(ctx, nil, "eth_sendRawTransaction", data)
}

func (b *Broadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", false, fmt.Errorf("tx is not valid, couldn't use rlp to encode it: %w", err)
	}
	hash := tx.Hash().Hex()
	if len(b.clients) == 0 {
		return hash, false, ErrNoClients
	}

	encoded := hexutil.Encode(data)
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	parallelTasks := []func() error{}
	for name, cli := range b.clients {
		parallelTasks = append(parallelTasks, func() error {
			if err := b.broadcast(timeout, cli, encoded); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	numErrs, err := common.RunParallel(parallelTasks...)
	if numErrs == len(b.clients) {
		return hash, false, err
	}
	return hash, true, nil
}

// NewGenericBroadcaster dials every node. Nodes that can't be dialed are
// logged and skipped.
func NewGenericBroadcaster(nodes map[string]string, log *zap.Logger) *Broadcaster {
	if log == nil {
		log = zap.NewNop()
	}
	clients := map[string]*rpc.Client{}
	for name, url := range nodes {
		client, err := rpc.Dial(url)
		if err != nil {
			log.Warn("couldn't connect to node", zap.String("node", name), zap.Error(err))
			continue
		}
		clients[name] = client
	}
	return &Broadcaster{
		clients: clients,
	}
}
