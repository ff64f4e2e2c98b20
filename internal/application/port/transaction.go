package port

import (
	"context"

	"bam-donation/internal/domain/entity"
	"bam-donation/internal/pkg/async"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction is a submitted write flow whose lifecycle can be observed.
type Transaction interface {
	Status() entity.TransactionStatus
	Hash() (common.Hash, bool)
	Subscribe() (<-chan async.Snapshot[entity.TransactionStatus], func())
	Wait(ctx context.Context) (entity.TransactionStatus, error)
}
