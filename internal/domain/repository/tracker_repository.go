package repository

import (
	"context"

	"bam-donation/internal/domain/entity"
)

// StatusSource is anything that can report the current status of a write flow.
type StatusSource interface {
	Status() entity.TransactionStatus
}

// TrackedTransaction is a write flow registered for later status lookups.
type TrackedTransaction struct {
	ID      string
	ChainID int64
	Method  string
	Source  StatusSource
}

// TrackerRepository keeps submitted write flows addressable by id.
type TrackerRepository interface {
	Save(ctx context.Context, tx TrackedTransaction) error
	Get(ctx context.Context, id string) (TrackedTransaction, bool, error)
}
