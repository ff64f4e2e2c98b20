package port

import (
	"context"

	"bam-donation/internal/domain/entity"
)

// NetworkService describes supported networks and the health of their endpoints.
type NetworkService interface {
	// NetworkInfo reports name, support and explorer of chainID.
	NetworkInfo(ctx context.Context, chainID int64) entity.NetworkInfo

	// Networks lists every supported network.
	Networks(ctx context.Context) []entity.NetworkInfo

	// CheckedRPCs probes the configured and public endpoints of a supported chain.
	CheckedRPCs(ctx context.Context, chainID int64) ([]entity.RPCDetail, error)
}
