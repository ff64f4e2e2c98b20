package repository

import (
	"context"
	"time"

	"bam-donation/internal/domain/entity"
)

// CacheRepository defines the in-memory cache used by readers and the network service.
type CacheRepository interface {
	// GetRead retrieves the raw outputs of a cached contract read.
	GetRead(ctx context.Context, key string) ([]any, bool, error)

	// SetRead stores the raw outputs of a contract read with a specified TTL.
	SetRead(ctx context.Context, key string, out []any, ttl time.Duration) error

	// GetChains retrieves the cached chain metadata list.
	GetChains(ctx context.Context) ([]entity.ChainMetadata, bool, error)

	// SetChains stores the chain metadata list with a specified TTL.
	SetChains(ctx context.Context, chains []entity.ChainMetadata, ttl time.Duration) error

	// GetChainCheckedRPCs retrieves the cached list of checked RPC details for a specific chain ID.
	GetChainCheckedRPCs(ctx context.Context, chainID int64) ([]entity.RPCDetail, bool, error)

	// SetChainCheckedRPCs stores the list of checked RPC details for a specific chain ID in the cache with a specified TTL.
	SetChainCheckedRPCs(ctx context.Context, chainID int64, rpcs []entity.RPCDetail, ttl time.Duration) error
}
