package memory

import (
	"context"
	"fmt"

	"bam-donation/internal/config"
	domainRepo "bam-donation/internal/domain/repository"
	"bam-donation/internal/pkg/apperrors"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.TrackerRepository = (*TrackerRepository)(nil)

// TrackerRepository keeps submitted transactions addressable for a retention window.
type TrackerRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
}

// NewTrackerRepository creates a tracker whose entries expire after cfg.Retention.
func NewTrackerRepository(cfg config.TrackerConfig, logger *zap.Logger) *TrackerRepository {
	return &TrackerRepository{
		cache:  cache.New(cfg.Retention, cfg.CleanupInterval),
		logger: logger.Named("TransactionTracker"),
	}
}

// Save registers tx under its id. Ids must be unique.
func (r *TrackerRepository) Save(_ context.Context, tx domainRepo.TrackedTransaction) error {
	if tx.ID == "" || tx.Source == nil {
		return fmt.Errorf("%w: tracked transaction needs an id and a status source", apperrors.ErrInvalidInput)
	}
	if err := r.cache.Add(tx.ID, tx, cache.DefaultExpiration); err != nil {
		return fmt.Errorf("%w: transaction %s already tracked", apperrors.ErrInvalidInput, tx.ID)
	}
	r.logger.Debug("Tracking transaction", zap.String("id", tx.ID), zap.String("method", tx.Method))
	return nil
}

// Get looks up a tracked transaction by id.
func (r *TrackerRepository) Get(_ context.Context, id string) (domainRepo.TrackedTransaction, bool, error) {
	x, found := r.cache.Get(id)
	if !found {
		return domainRepo.TrackedTransaction{}, false, nil
	}
	tx, ok := x.(domainRepo.TrackedTransaction)
	if !ok {
		r.logger.Warn("Tracker data type mismatch", zap.String("id", id))
		return domainRepo.TrackedTransaction{}, false, nil
	}
	return tx, true, nil
}
