package application

import (
	"context"
	"fmt"

	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/domain/network"
	domainService "bam-donation/internal/domain/service"
	"bam-donation/internal/pkg/async"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// TxBuilder turns the addresses of a supported network into the transaction to
// send. It returns domain.ErrContractNotResolved when the target is missing.
type TxBuilder func(entity.NetworkAddressSet) (contracts.TransactionRequest, error)

// Orchestrator submits state-changing transactions and tracks their lifecycle.
// Only the most recent Submit is tracked; results of superseded attempts are dropped.
type Orchestrator struct {
	gateway domainService.ChainGateway
	logger  *zap.Logger
	cell    *async.Cell[entity.TransactionStatus]
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(gateway domainService.ChainGateway, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		gateway: gateway,
		logger:  logger.Named("WriteOrchestrator"),
		cell:    async.NewCell[entity.TransactionStatus](),
	}
	o.cell.Set(async.Idle, entity.TransactionStatus{State: entity.TxIdle}, nil)
	return o
}

// Submit checks preconditions, flips to pending and sends the transaction in
// the background. Precondition failures leave the status untouched.
func (o *Orchestrator) Submit(ctx context.Context, session entity.Session, build TxBuilder) error {
	if !session.Connected {
		o.logger.Error("Wallet not connected", zap.Int64("chainId", session.ChainID))
		return domain.ErrWalletNotConnected
	}

	set, err := network.RequireSupported(session.ChainID)
	if err != nil {
		o.logger.Error("Network not supported or contract address not found", zap.Int64("chainId", session.ChainID))
		return err
	}

	req, err := build(set)
	if err != nil {
		o.logger.Error("Transaction could not be prepared",
			zap.Int64("chainId", session.ChainID), zap.Error(err),
		)
		return err
	}

	pending := o.cell.Set(async.Loading, entity.TransactionStatus{
		State:              entity.TxPending,
		IsNetworkSupported: true,
	}, nil)

	o.logger.Info("Submitting transaction",
		zap.Stringer("method", req.Method),
		zap.Stringer("to", req.Address),
		zap.Int64("chainId", session.ChainID),
		zap.Stringer("from", session.Account),
	)

	go o.run(context.WithoutCancel(ctx), session.ChainID, req, pending)
	return nil
}

func (o *Orchestrator) run(ctx context.Context, chainID int64, req contracts.TransactionRequest, pending async.Snapshot[entity.TransactionStatus]) {
	hash, err := o.gateway.Submit(ctx, chainID, req)
	if err != nil {
		o.logger.Warn("Transaction submission failed", zap.Stringer("method", req.Method), zap.Error(err))
		o.fail(pending, err)
		return
	}

	status := pending.Value
	status.TransactionHash = &hash
	submitted, ok := o.cell.CompareAndSet(pending.Version, async.Loading, status, nil)
	if !ok {
		o.logger.Debug("Dropping superseded submission", zap.Stringer("hash", hash))
		return
	}

	receipt, err := o.gateway.WaitReceipt(ctx, chainID, hash)
	if err == nil && (receipt == nil || receipt.Status != types.ReceiptStatusSuccessful) {
		err = fmt.Errorf("%w: %s", domain.ErrTransactionReverted, hash.Hex())
	}
	if err != nil {
		o.logger.Warn("Transaction failed", zap.Stringer("hash", hash), zap.Error(err))
		o.fail(submitted, err)
		return
	}

	status.State = entity.TxConfirmed
	status.BlockNumber = blockNumber(receipt)
	if _, ok := o.cell.CompareAndSet(submitted.Version, async.Success, status, nil); ok {
		o.logger.Info("Transaction confirmed", zap.Stringer("hash", hash), zap.Uint64("block", status.BlockNumber))
	}
}

func (o *Orchestrator) fail(from async.Snapshot[entity.TransactionStatus], err error) {
	status := from.Value
	status.State = entity.TxFailed
	status.Error = err
	o.cell.CompareAndSet(from.Version, async.Error, status, err)
}

// Status returns the current transaction status.
func (o *Orchestrator) Status() entity.TransactionStatus {
	return o.cell.Get().Value
}

// Hash returns the hash of the tracked transaction, if one was issued.
func (o *Orchestrator) Hash() (common.Hash, bool) {
	s := o.Status()
	if s.TransactionHash == nil {
		return common.Hash{}, false
	}
	return *s.TransactionHash, true
}

// Subscribe streams status changes; the current status is delivered first.
func (o *Orchestrator) Subscribe() (<-chan async.Snapshot[entity.TransactionStatus], func()) {
	return o.cell.Subscribe()
}

// Wait blocks until the tracked attempt is confirmed or failed.
func (o *Orchestrator) Wait(ctx context.Context) (entity.TransactionStatus, error) {
	snap, err := o.cell.Wait(ctx, func(s async.Snapshot[entity.TransactionStatus]) bool {
		return s.Value.State.Terminal()
	})
	return snap.Value, err
}

func blockNumber(r *types.Receipt) uint64 {
	if r == nil || r.BlockNumber == nil {
		return 0
	}
	return r.BlockNumber.Uint64()
}
