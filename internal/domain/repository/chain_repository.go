package repository

import (
	"context"

	"bam-donation/internal/domain/entity"
)

// ChainRepository defines the interface for accessing public chain metadata.
type ChainRepository interface {
	// GetAllChains retrieves the list of all chains from the underlying data source.
	GetAllChains(ctx context.Context) ([]entity.ChainMetadata, error)
}
