// Package ethereum implements the chain gateway on go-ethereum clients.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"bam-donation/internal/config"
	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	domainService "bam-donation/internal/domain/service"
	"bam-donation/internal/pkg/apperrors"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.ChainGateway = (*Gateway)(nil)

// backend is the part of *ethclient.Client the gateway relies on.
type backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

type dialFunc func(ctx context.Context, rawURL string) (backend, error)

func dialEthclient(ctx context.Context, rawURL string) (backend, error) {
	c, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Gateway talks to one RPC endpoint per configured chain and signs with the
// configured wallet key.
type Gateway struct {
	rpcURLs map[int64]string
	key     *ecdsa.PrivateKey
	account common.Address
	poll    time.Duration
	dial    dialFunc
	logger  *zap.Logger

	mu      sync.Mutex
	clients map[int64]backend

	// one signer, one nonce sequence
	submitMu sync.Mutex
}

// NewGateway creates a gateway from config. An empty wallet key yields a
// read-only gateway whose Account reports not connected.
func NewGateway(cfg config.Config, logger *zap.Logger) (*Gateway, error) {
	g := &Gateway{
		rpcURLs: make(map[int64]string, len(cfg.Networks)),
		poll:    cfg.Watcher.GetPollInterval(),
		dial:    dialEthclient,
		logger:  logger.Named("EthereumGateway"),
		clients: make(map[int64]backend),
	}

	for _, n := range cfg.Networks {
		if len(n.RPCURLs) > 0 {
			g.rpcURLs[n.ChainID] = n.RPCURLs[0]
		}
	}

	if raw := strings.TrimPrefix(strings.TrimSpace(cfg.Wallet.PrivateKey), "0x"); raw != "" {
		key, err := crypto.HexToECDSA(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: wallet private key: %v", apperrors.ErrInvalidInput, err)
		}
		g.key = key
		g.account = crypto.PubkeyToAddress(key.PublicKey)
		g.logger.Info("Wallet connected", zap.Stringer("account", g.account))
	} else {
		g.logger.Info("No wallet key configured, running read-only")
	}

	return g, nil
}

// Account returns the signer address derived from the wallet key.
func (g *Gateway) Account() (common.Address, bool) {
	return g.account, g.key != nil
}

// ChainID asks the endpoint configured for chainID which chain it serves.
func (g *Gateway) ChainID(ctx context.Context, chainID int64) (int64, error) {
	client, err := g.client(ctx, chainID)
	if err != nil {
		return 0, err
	}
	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: eth_chainId on chain %d: %w", apperrors.ErrExternalServiceFailure, chainID, err)
	}
	return id.Int64(), nil
}

// Call executes a view function through a bound contract.
func (g *Gateway) Call(ctx context.Context, chainID int64, req contracts.CallRequest) ([]any, error) {
	bound, err := g.bound(ctx, chainID, req.Address, req.Method)
	if err != nil {
		return nil, err
	}

	var out []any
	opts := &bind.CallOpts{Context: ctx, From: g.account}
	if err := bound.Call(opts, &out, req.Method.Name, req.Args...); err != nil {
		return nil, fmt.Errorf("%w: %s on chain %d: %w", apperrors.ErrExternalServiceFailure, req.Method, chainID, err)
	}
	return out, nil
}

// Submit signs and broadcasts req, returning the transaction hash.
func (g *Gateway) Submit(ctx context.Context, chainID int64, req contracts.TransactionRequest) (common.Hash, error) {
	if g.key == nil {
		return common.Hash{}, domain.ErrWalletNotConnected
	}

	bound, err := g.bound(ctx, chainID, req.Address, req.Method)
	if err != nil {
		return common.Hash{}, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(g.key, big.NewInt(chainID))
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: transactor: %v", apperrors.ErrInternal, err)
	}
	opts.Context = ctx
	opts.Value = req.Value

	g.submitMu.Lock()
	tx, err := bound.Transact(opts, req.Method.Name, req.Args...)
	g.submitMu.Unlock()
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %s on chain %d: %w", apperrors.ErrExternalServiceFailure, req.Method, chainID, err)
	}

	g.logger.Debug("Transaction broadcast",
		zap.Stringer("hash", tx.Hash()), zap.Stringer("method", req.Method), zap.Uint64("nonce", tx.Nonce()),
	)
	return tx.Hash(), nil
}

// WaitReceipt polls for the receipt of hash until it is mined or ctx ends.
// A mined transaction with failed status returns the receipt and domain.ErrTransactionReverted.
func (g *Gateway) WaitReceipt(ctx context.Context, chainID int64, hash common.Hash) (*types.Receipt, error) {
	client, err := g.client(ctx, chainID)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(g.poll)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, hash.Hex())
			}
			return receipt, nil
		case errors.Is(err, goethereum.NotFound):
			g.logger.Debug("Receipt not yet available", zap.Stringer("hash", hash))
		default:
			return nil, fmt.Errorf("%w: receipt of %s: %w", apperrors.ErrExternalServiceFailure, hash.Hex(), err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close releases every dialed client.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, c := range g.clients {
		c.Close()
		delete(g.clients, id)
	}
}

func (g *Gateway) bound(ctx context.Context, chainID int64, address common.Address, m contracts.Method) (*bind.BoundContract, error) {
	parsed, err := contracts.ABI(m.Contract)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	client, err := g.client(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, parsed, client, client, client), nil
}

func (g *Gateway) client(ctx context.Context, chainID int64) (backend, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[chainID]; ok {
		return c, nil
	}

	url, ok := g.rpcURLs[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: no RPC configured for chain %d", domain.ErrNoRPCsAvailable, chainID)
	}

	c, err := g.dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial chain %d: %v", apperrors.ErrExternalServiceFailure, chainID, err)
	}
	g.logger.Info("Connected to RPC", zap.Int64("chainId", chainID), zap.String("url", url))
	g.clients[chainID] = c
	return c, nil
}
