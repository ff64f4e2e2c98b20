package memory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bam-donation/internal/config"
	"bam-donation/internal/domain/entity"
	domainRepo "bam-donation/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const (
	readKeyPrefix             = "read_"
	allChainsKey              = "chain_metadata"
	chainCheckedRPCsKeyPrefix = "chain_checked_rpcs_"
)

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger

	// Fallback TTLs for callers passing ttl <= 0.
	readTTL, chainsTTL, rpcsTTL time.Duration
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.Config, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.Reader.GetCacheTTL()
	cleanupInterval := cfg.Reader.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:     c,
		logger:    logger.Named("MemoryCacheStorage"),
		readTTL:   defaultExpiration,
		chainsTTL: cfg.Chainlist.GetCacheTTL(),
		rpcsTTL:   cfg.Checker.GetCacheTTL(),
	}
}

// GetRead retrieves the cached outputs of a contract read.
func (r *CacheRepository) GetRead(_ context.Context, key string) ([]any, bool, error) {
	return get[[]any](r, readKeyPrefix+key)
}

// SetRead caches the outputs of a contract read. A non-positive ttl uses the reader default.
func (r *CacheRepository) SetRead(_ context.Context, key string, out []any, ttl time.Duration) error {
	r.set(readKeyPrefix+key, out, orDefault(ttl, r.readTTL))
	return nil
}

// GetChains retrieves the cached chain metadata list.
func (r *CacheRepository) GetChains(_ context.Context) ([]entity.ChainMetadata, bool, error) {
	return get[[]entity.ChainMetadata](r, allChainsKey)
}

// SetChains caches the chain metadata list with a given TTL.
func (r *CacheRepository) SetChains(_ context.Context, chains []entity.ChainMetadata, ttl time.Duration) error {
	r.set(allChainsKey, chains, orDefault(ttl, r.chainsTTL))
	return nil
}

// GetChainCheckedRPCs retrieves cached checked RPCs for a chain, returning found status.
func (r *CacheRepository) GetChainCheckedRPCs(_ context.Context, chainID int64) ([]entity.RPCDetail, bool, error) {
	return get[[]entity.RPCDetail](r, checkedRPCsKey(chainID))
}

// SetChainCheckedRPCs caches the checked RPCs for a specific chain with a given TTL.
func (r *CacheRepository) SetChainCheckedRPCs(
	_ context.Context,
	chainID int64,
	rpcs []entity.RPCDetail,
	ttl time.Duration,
) error {
	r.set(checkedRPCsKey(chainID), rpcs, orDefault(ttl, r.rpcsTTL))
	return nil
}

func (r *CacheRepository) set(key string, v any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.cache.Set(key, v, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", key), zap.Duration("ttl", ttl))
}

func get[T any](r *CacheRepository, key string) (T, bool, error) {
	var zero T
	x, found := r.cache.Get(key)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", key))
		return zero, false, nil
	}
	v, ok := x.(T)
	if !ok {
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", key), zap.String("type", fmt.Sprintf("%T", x)),
		)
		return zero, false, nil
	}
	r.logger.Debug("Memory cache hit", zap.String("key", key))
	return v, true, nil
}

func checkedRPCsKey(chainID int64) string {
	return chainCheckedRPCsKeyPrefix + strconv.FormatInt(chainID, 10)
}

func orDefault(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}
