package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

type Status string

const (
	StatusDone     Status = "done"
	StatusReverted Status = "reverted"
	StatusLost     Status = "lost"
)

const (
	DefaultInterval  = 5 * time.Second
	DefaultLostAfter = 3 * time.Minute
)

type TxInfo struct {
	Hash    string
	Status  Status
	Receipt *types.Receipt
}

// ReceiptReader is satisfied by *reader.EthReader.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error)
}

type TxMonitor struct {
	reader    ReceiptReader
	interval  time.Duration
	lostAfter time.Duration
}

type Option func(*TxMonitor)

func WithInterval(d time.Duration) Option {
	return func(m *TxMonitor) { m.interval = d }
}

// WithLostAfter sets how long a tx may stay unknown to every node before
// it is reported lost.
func WithLostAfter(d time.Duration) Option {
	return func(m *TxMonitor) { m.lostAfter = d }
}

func NewGenericTxMonitor(r ReceiptReader, opts ...Option) *TxMonitor {
	m := &TxMonitor{
		reader:    r,
		interval:  DefaultInterval,
		lostAfter: DefaultLostAfter,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TxMonitor) periodicCheck(ctx context.Context, tx string, info chan<- TxInfo) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	startTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			receipt, err := m.reader.TransactionReceipt(ctx, tx)
			switch {
			case errors.Is(err, ethereum.NotFound):
				if t.Sub(startTime) > m.lostAfter {
					info <- TxInfo{Hash: tx, Status: StatusLost}
					return
				}
			case err != nil:
				// node hiccup, try again on the next tick
			case receipt.Status == types.ReceiptStatusFailed:
				info <- TxInfo{Hash: tx, Status: StatusReverted, Receipt: receipt}
				return
			default:
				info <- TxInfo{Hash: tx, Status: StatusDone, Receipt: receipt}
				return
			}
		}
	}
}

func (m *TxMonitor) MakeWaitChannel(ctx context.Context, tx string) <-chan TxInfo {
	result := make(chan TxInfo, 1)
	go m.periodicCheck(ctx, tx, result)
	return result
}

// BlockingWait polls until the tx is mined, reverted or lost, or until ctx
// is done.
func (m *TxMonitor) BlockingWait(ctx context.Context, tx string) (TxInfo, error) {
	select {
	case info := <-m.MakeWaitChannel(ctx, tx):
		return info, nil
	case <-ctx.Done():
		return TxInfo{Hash: tx}, ctx.Err()
	}
}
