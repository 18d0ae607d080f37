package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	repcommon "github.com/tranvictor/repscan/common"
	"github.com/tranvictor/repscan/networks"
)

var DEFAULT_ADDRESS string = "0x0000000000000000000000000000000000000000"

var ErrNoNodes = errors.New("no nodes configured")

// EthReader reads chain state from a set of nodes serving the same chain.
// Every read is sent to all nodes at once and the first successful answer
// wins. It is safe for concurrent use.
type EthReader struct {
	nodes       map[string]EthereumNode
	ensRegistry string
}

func NewEthReaderGeneric(nodes map[string]string, ensRegistry string) *EthReader {
	ns := map[string]EthereumNode{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c)
	}
	return &EthReader{
		nodes:       ns,
		ensRegistry: ensRegistry,
	}
}

func NewEthReader(network networks.Network, nodes map[string]string) *EthReader {
	return NewEthReaderGeneric(nodes, network.GetENSRegistry())
}

// NodeNames returns the configured node names, sorted.
func (er *EthReader) NodeNames() []string {
	res := make([]string, 0, len(er.nodes))
	for name := range er.nodes {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (er *EthReader) Close() {
	for _, n := range er.nodes {
		if c, ok := n.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResponse[T any] struct {
	Value T
	Error error
}

// readFromAnyNode runs read against every node concurrently and returns
// the first successful value. When all nodes fail, their errors are joined.
func readFromAnyNode[T any](er *EthReader, read func(n EthereumNode) (T, error)) (T, error) {
	var zero T
	if len(er.nodes) == 0 {
		return zero, ErrNoNodes
	}
	resCh := make(chan nodeResponse[T], len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			v, err := read(n)
			resCh <- nodeResponse[T]{
				Value: v,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ChainID(ctx context.Context) (*big.Int, error) {
	return readFromAnyNode(er, func(n EthereumNode) (*big.Int, error) {
		return n.ChainID(ctx)
	})
}

func (er *EthReader) EstimateGas(ctx context.Context, from, to string, value *big.Int, data []byte) (uint64, error) {
	return readFromAnyNode(er, func(n EthereumNode) (uint64, error) {
		return n.EstimateGas(ctx, from, to, value, data)
	})
}

func (er *EthReader) GetCode(ctx context.Context, address string) ([]byte, error) {
	return readFromAnyNode(er, func(n EthereumNode) ([]byte, error) {
		return n.GetCode(ctx, address)
	})
}

func (er *EthReader) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return readFromAnyNode(er, func(n EthereumNode) (*big.Int, error) {
		return n.GetBalance(ctx, address)
	})
}

func (er *EthReader) GetMinedNonce(ctx context.Context, address string) (uint64, error) {
	return readFromAnyNode(er, func(n EthereumNode) (uint64, error) {
		return n.GetMinedNonce(ctx, address)
	})
}

func (er *EthReader) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	return readFromAnyNode(er, func(n EthereumNode) (uint64, error) {
		return n.GetPendingNonce(ctx, address)
	})
}

func (er *EthReader) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	return readFromAnyNode(er, func(n EthereumNode) (*types.Receipt, error) {
		return n.TransactionReceipt(ctx, txHash)
	})
}

func (er *EthReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return readFromAnyNode(er, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasPrice(ctx)
	})
}

func (er *EthReader) CurrentBlock(ctx context.Context) (uint64, error) {
	return readFromAnyNode(er, func(n EthereumNode) (uint64, error) {
		return n.CurrentBlock(ctx)
	})
}

func (er *EthReader) ReadContractToBytes(
	ctx context.Context,
	from string,
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	return readFromAnyNode(er, func(n EthereumNode) ([]byte, error) {
		return n.ReadContractToBytes(ctx, from, caddr, abi, method, args...)
	})
}

func (er *EthReader) ReadContractWithABI(
	ctx context.Context,
	result interface{},
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(ctx, DEFAULT_ADDRESS, caddr, abi, method, args...)
	if err != nil {
		return err
	}
	return abi.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) ERC20Symbol(ctx context.Context, caddr string) (string, error) {
	var result string
	err := er.ReadContractWithABI(ctx, &result, caddr, repcommon.GetERC20ABI(), "symbol")
	return result, err
}

func (er *EthReader) ERC20Balance(ctx context.Context, caddr string, user string) (*big.Int, error) {
	result := big.NewInt(0)
	err := er.ReadContractWithABI(ctx, &result, caddr, repcommon.GetERC20ABI(), "balanceOf", repcommon.HexToAddress(user))
	return result, err
}

func (er *EthReader) ERC20Decimal(ctx context.Context, caddr string) (uint64, error) {
	var result uint8
	err := er.ReadContractWithABI(ctx, &result, caddr, repcommon.GetERC20ABI(), "decimals")
	return uint64(result), err
}
