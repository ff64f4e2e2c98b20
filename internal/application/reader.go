package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"bam-donation/internal/application/port"
	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/domain/network"
	domainRepo "bam-donation/internal/domain/repository"
	domainService "bam-donation/internal/domain/service"
	"bam-donation/internal/pkg/apperrors"
	"bam-donation/internal/pkg/async"

	"go.uber.org/zap"
)

// ReadQuery describes one contract view call.
type ReadQuery[T any] struct {
	// Request builds the call for the resolved network. Returning false means
	// the target or an argument is missing and the read must not be dispatched.
	Request func(entity.NetworkAddressSet) (contracts.CallRequest, bool)
	Decode  func([]any) (T, error)
}

// ReadResult is the observable outcome of a Reader.
type ReadResult[T any] struct {
	Value              T
	IsLoading          bool
	IsSuccess          bool
	IsError            bool
	Err                error
	IsNetworkSupported bool
}

// readDeps groups what every reader needs.
type readDeps struct {
	gateway domainService.ChainGateway
	cache   domainRepo.CacheRepository
	logger  *zap.Logger
	ttl     time.Duration
}

// Reader fetches the current value of a contract view function for a session.
type Reader[T any] struct {
	readDeps
	session entity.Session
	query   ReadQuery[T]
	cell    *async.Cell[T]
}

// NewReader creates a reader bound to session.
func NewReader[T any](
	gateway domainService.ChainGateway,
	cache domainRepo.CacheRepository,
	logger *zap.Logger,
	ttl time.Duration,
	session entity.Session,
	query ReadQuery[T],
) *Reader[T] {
	return newReader(readDeps{gateway: gateway, cache: cache, logger: logger.Named("Reader"), ttl: ttl}, session, query)
}

func newReader[T any](deps readDeps, session entity.Session, query ReadQuery[T]) *Reader[T] {
	return &Reader[T]{
		readDeps: deps,
		session:  session,
		query:    query,
		cell:     async.NewCell[T](),
	}
}

// Read returns the value, serving it from cache while fresh.
func (r *Reader[T]) Read(ctx context.Context) (T, error) {
	return r.read(ctx, false)
}

// Refetch forces a fresh call, bypassing the cache.
func (r *Reader[T]) Refetch(ctx context.Context) (T, error) {
	return r.read(ctx, true)
}

// Result returns the latest observable state.
func (r *Reader[T]) Result() ReadResult[T] {
	snap := r.cell.Get()
	return ReadResult[T]{
		Value:              snap.Value,
		IsLoading:          snap.State == async.Loading,
		IsSuccess:          snap.State == async.Success,
		IsError:            snap.State == async.Error,
		Err:                snap.Err,
		IsNetworkSupported: network.Resolve(r.session.ChainID).IsSupported,
	}
}

// Subscribe streams snapshots of the reader state.
func (r *Reader[T]) Subscribe() (<-chan async.Snapshot[T], func()) {
	return r.cell.Subscribe()
}

func (r *Reader[T]) read(ctx context.Context, bypass bool) (T, error) {
	var zero T

	set := network.Resolve(r.session.ChainID)
	if !set.IsSupported {
		err := fmt.Errorf("%w: chain %d", domain.ErrUnsupportedNetwork, r.session.ChainID)
		r.cell.Set(async.Error, zero, err)
		return zero, err
	}

	req, enabled := r.query.Request(set)
	if !enabled {
		return r.cell.Get().Value, nil
	}

	key, err := readKey(r.session.ChainID, req)
	if err != nil {
		r.cell.Set(async.Error, zero, err)
		return zero, err
	}

	if !bypass {
		out, found, cacheErr := r.cache.GetRead(ctx, key)
		if cacheErr != nil {
			r.logger.Warn("Read cache error", zap.String("key", key), zap.Error(cacheErr))
		}
		if found {
			return r.settle(r.cell.Get().Version, req, out)
		}
	}

	loading := r.cell.Set(async.Loading, r.cell.Get().Value, nil)

	out, err := r.gateway.Call(ctx, r.session.ChainID, req)
	if err != nil {
		r.logger.Debug("Contract read failed",
			zap.Stringer("method", req.Method), zap.Int64("chainId", r.session.ChainID), zap.Error(err),
		)
		r.cell.CompareAndSet(loading.Version, async.Error, loading.Value, err)
		return zero, err
	}

	if err := r.cache.SetRead(ctx, key, out, r.ttl); err != nil {
		r.logger.Warn("Failed to cache read result", zap.String("key", key), zap.Error(err))
	}
	return r.settle(loading.Version, req, out)
}

func (r *Reader[T]) settle(version uint64, req contracts.CallRequest, out []any) (T, error) {
	value, err := r.query.Decode(out)
	if err != nil {
		err = fmt.Errorf("decode %s: %w", req.Method, err)
		r.cell.CompareAndSet(version, async.Error, value, err)
		return value, err
	}
	r.cell.CompareAndSet(version, async.Success, value, nil)
	return value, nil
}

// readKey identifies a call by chain, target and calldata.
func readKey(chainID int64, req contracts.CallRequest) (string, error) {
	data, err := req.Pack()
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	return strconv.FormatInt(chainID, 10) + ":" + req.Address.Hex() + ":" + hex.EncodeToString(data), nil
}

// runRead performs a read or refetch as requested by opts.
func runRead[T any](ctx context.Context, r *Reader[T], opts []port.ReadOption) (T, error) {
	if port.ApplyReadOptions(opts).Refetch {
		return r.Refetch(ctx)
	}
	return r.Read(ctx)
}
