package service

import (
	"context"

	"bam-donation/internal/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainGateway is the wallet and RPC collaborator the donation layer runs on.
type ChainGateway interface {
	// Account returns the connected signer, if any.
	Account() (common.Address, bool)

	// ChainID queries the chain identifier reported by the endpoint serving chainID.
	ChainID(ctx context.Context, chainID int64) (int64, error)

	// Call executes a read-only contract call and returns the unpacked outputs.
	Call(ctx context.Context, chainID int64, req contracts.CallRequest) ([]any, error)

	// Submit signs and sends a transaction, returning its hash once accepted by the node.
	Submit(ctx context.Context, chainID int64, req contracts.TransactionRequest) (common.Hash, error)

	// WaitReceipt blocks until the transaction is mined or ctx ends.
	WaitReceipt(ctx context.Context, chainID int64, hash common.Hash) (*types.Receipt, error)
}
