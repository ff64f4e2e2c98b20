package service

import (
	"context"
	"time"

	"bam-donation/internal/domain/entity"
)

// RPCProbe is the outcome of a single endpoint check.
type RPCProbe struct {
	Working bool
	Latency time.Duration
	ChainID int64
}

// RPCChecker defines the interface for checking RPC endpoint status.
type RPCChecker interface {
	CheckRPC(ctx context.Context, rpcURL entity.RPCURL) (RPCProbe, error)
}
