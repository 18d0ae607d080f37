// Package rewards mints reward tokens and role badges from the service
// wallet.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	repcommon "github.com/tranvictor/repscan/common"
	"github.com/tranvictor/repscan/util/monitor"
)

const TokenDecimals = 18

// BadgePrice is the amount of reward tokens burnt for one badge.
var BadgePrice = big.NewInt(8)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrWrongChain     = errors.New("node is on a different chain")
	ErrNotBroadcasted = errors.New("tx was not accepted by any node")
	ErrTxReverted     = errors.New("tx reverted")
	ErrTxLost         = errors.New("tx was lost")
)

type ChainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	GetPendingNonce(ctx context.Context, address string) (uint64, error)
	SuggestedGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, from, to string, value *big.Int, data []byte) (uint64, error)
	ReadContractWithABI(ctx context.Context, result interface{}, caddr string, abi *abi.ABI, method string, args ...interface{}) error
}

type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

type Broadcaster interface {
	BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error)
}

type Waiter interface {
	BlockingWait(ctx context.Context, tx string) (monitor.TxInfo, error)
}

type Config struct {
	ChainID        uint64
	TokenAddress   string
	BadgeAddress   string
	MarketplaceURL string
}

type BadgeRequest struct {
	Address string
	Role    string
	IPFSCid string
}

type BadgeMint struct {
	BurnTxHash string
	MintTxHash string
	TokenID    string
	OpenSeaURL string
}

type BadgeStatus struct {
	HasBadge bool
	// TokenID is nil when HasBadge is false.
	TokenID *string
}

type Service struct {
	chainID     *big.Int
	token       common.Address
	badge       common.Address
	marketplace string

	signer      Signer
	reader      ChainReader
	broadcaster Broadcaster
	waiter      Waiter
	log         *zap.Logger

	// one tx in flight at a time keeps pending nonces consistent
	mu sync.Mutex
}

func NewService(
	cfg Config,
	signer Signer,
	reader ChainReader,
	broadcaster Broadcaster,
	waiter Waiter,
	log *zap.Logger,
) (*Service, error) {
	token, err := repcommon.NormalizeAddress(cfg.TokenAddress)
	if err != nil {
		return nil, fmt.Errorf("reward token address: %w", err)
	}
	badge, err := repcommon.NormalizeAddress(cfg.BadgeAddress)
	if err != nil {
		return nil, fmt.Errorf("role badge address: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		chainID:     new(big.Int).SetUint64(cfg.ChainID),
		token:       common.HexToAddress(token),
		badge:       common.HexToAddress(badge),
		marketplace: strings.TrimRight(cfg.MarketplaceURL, "/"),
		signer:      signer,
		reader:      reader,
		broadcaster: broadcaster,
		waiter:      waiter,
		log:         log,
	}, nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func recipient(address string) (common.Address, error) {
	if strings.TrimSpace(address) == "" {
		return common.Address{}, invalid("address is required")
	}
	normalized, err := repcommon.NormalizeAddress(address)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return common.HexToAddress(normalized), nil
}

// Reward mints amount whole reward tokens to address and waits for the tx
// to be mined.
func (s *Service) Reward(ctx context.Context, address string, amount string) (string, error) {
	to, err := recipient(address)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(amount) == "" {
		return "", invalid("amount is required")
	}
	raw, err := repcommon.StringToDecimalBig(amount, TokenDecimals)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if raw.Sign() <= 0 {
		return "", invalid("amount must be positive")
	}

	data, err := repcommon.GetAgentTokenABI().Pack("mint", to, raw)
	if err != nil {
		return "", err
	}
	hash, err := s.transact(ctx, s.token, data)
	if err != nil {
		return hash, fmt.Errorf("mint: %w", err)
	}
	s.log.Info("reward minted",
		zap.String("to", to.Hex()),
		zap.String("amount", amount),
		zap.String("tx", hash),
	)
	return hash, nil
}

// MintBadge burns the badge price from the recipient, then mints the badge
// pointing at the IPFS metadata.
func (s *Service) MintBadge(ctx context.Context, req BadgeRequest) (*BadgeMint, error) {
	to, err := recipient(req.Address)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.IPFSCid) == "" {
		return nil, invalid("role and ipfsCid are required")
	}

	price := new(big.Int).Mul(BadgePrice, new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil))
	burnData, err := repcommon.GetAgentTokenABI().Pack("burnFrom", to, price)
	if err != nil {
		return nil, err
	}
	burnHash, err := s.transact(ctx, s.token, burnData)
	if err != nil {
		return nil, fmt.Errorf("burn: %w", err)
	}

	mintData, err := repcommon.GetRoleBadgeABI().Pack("mintBadge", to, "ipfs://"+req.IPFSCid)
	if err != nil {
		return nil, err
	}
	mintHash, err := s.transact(ctx, s.badge, mintData)
	if err != nil {
		return nil, fmt.Errorf("mint badge: %w", err)
	}

	tokenID, err := s.lastTokenID(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("badge minted",
		zap.String("to", to.Hex()),
		zap.String("role", req.Role),
		zap.String("token_id", tokenID),
	)
	return &BadgeMint{
		BurnTxHash: burnHash,
		MintTxHash: mintHash,
		TokenID:    tokenID,
		OpenSeaURL: fmt.Sprintf("%s/%s/%s", s.marketplace, s.badge.Hex(), tokenID),
	}, nil
}

// CheckBadge reports whether address holds a role badge. The badge
// contract has no owner enumeration so the id reported is the last one
// minted.
func (s *Service) CheckBadge(ctx context.Context, address string) (*BadgeStatus, error) {
	owner, err := recipient(address)
	if err != nil {
		return nil, err
	}
	balance := big.NewInt(0)
	err = s.reader.ReadContractWithABI(ctx, &balance, s.badge.Hex(), repcommon.GetRoleBadgeABI(), "balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("badge balance: %w", err)
	}
	if balance.Sign() <= 0 {
		return &BadgeStatus{}, nil
	}
	tokenID, err := s.lastTokenID(ctx)
	if err != nil {
		return nil, err
	}
	return &BadgeStatus{HasBadge: true, TokenID: &tokenID}, nil
}

func (s *Service) lastTokenID(ctx context.Context) (string, error) {
	counter := big.NewInt(0)
	err := s.reader.ReadContractWithABI(ctx, &counter, s.badge.Hex(), repcommon.GetRoleBadgeABI(), "tokenCounter")
	if err != nil {
		return "", fmt.Errorf("token counter: %w", err)
	}
	if counter.Sign() <= 0 {
		return "", errors.New("token counter: no badge minted yet")
	}
	return new(big.Int).Sub(counter, big.NewInt(1)).String(), nil
}

// transact builds, signs and broadcasts a legacy tx calling contract, then
// waits for it to be mined.
func (s *Service) transact(ctx context.Context, contract common.Address, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.buildTx(ctx, contract, data)
	if err != nil {
		return "", err
	}
	signed, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return "", err
	}
	hash, broadcasted, err := s.broadcaster.BroadcastTx(ctx, signed)
	if !broadcasted {
		return hash, fmt.Errorf("%w: %w", ErrNotBroadcasted, err)
	}
	s.log.Debug("tx broadcasted", zap.String("tx", hash), zap.String("to", contract.Hex()))

	info, err := s.waiter.BlockingWait(ctx, hash)
	if err != nil {
		return hash, fmt.Errorf("waiting for %s: %w", hash, err)
	}
	switch info.Status {
	case monitor.StatusReverted:
		return hash, fmt.Errorf("%w: %s", ErrTxReverted, hash)
	case monitor.StatusLost:
		return hash, fmt.Errorf("%w: %s", ErrTxLost, hash)
	}
	return hash, nil
}

func (s *Service) buildTx(ctx context.Context, contract common.Address, data []byte) (*types.Transaction, error) {
	chainID, err := s.reader.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	if chainID.Cmp(s.chainID) != 0 {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrWrongChain, s.chainID, chainID)
	}
	from := s.signer.Address().Hex()
	nonce, err := s.reader.GetPendingNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	gasPrice, err := s.reader.SuggestedGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("gas price: %w", err)
	}
	gas, err := s.reader.EstimateGas(ctx, from, contract.Hex(), big.NewInt(0), data)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas * 12 / 10,
		To:       &contract,
		Value:    big.NewInt(0),
		Data:     data,
	}), nil
}
