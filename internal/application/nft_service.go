package application

import (
	"context"
	"fmt"
	"math/big"

	"bam-donation/internal/application/port"
	"bam-donation/internal/config"
	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/domain/network"
	domainRepo "bam-donation/internal/domain/repository"
	domainService "bam-donation/internal/domain/service"
	"bam-donation/internal/pkg/apperrors"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compile-time check to ensure nftService implements NFTService
var _ port.NFTService = (*nftService)(nil)

type nftService struct {
	deps   readDeps
	logger *zap.Logger
}

// NewNFTService creates a new instance of the NFT service.
func NewNFTService(
	gateway domainService.ChainGateway,
	cacheRepo domainRepo.CacheRepository,
	logger *zap.Logger,
	cfg config.ReaderConfig,
) port.NFTService {
	named := logger.Named("NFTService")
	return &nftService{
		deps: readDeps{
			gateway: gateway,
			cache:   cacheRepo,
			logger:  named,
			ttl:     cfg.GetCacheTTL(),
		},
		logger: named,
	}
}

// ClaimNFT sends claimNFT(donationIndex) to the tracker contract.
func (s *nftService) ClaimNFT(ctx context.Context, sess entity.Session, donationIndex *big.Int) (port.Transaction, error) {
	orch := NewOrchestrator(s.deps.gateway, s.logger)
	err := orch.Submit(ctx, sess, func(set entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
		if set.NFTTrackerContract == nil {
			return contracts.TransactionRequest{}, fmt.Errorf("nft tracker: %w", domain.ErrContractNotResolved)
		}
		if donationIndex == nil || donationIndex.Sign() < 0 {
			return contracts.TransactionRequest{}, fmt.Errorf("%w: donation index must be non-negative", apperrors.ErrInvalidInput)
		}
		return contracts.ClaimNFTTx(*set.NFTTrackerContract, donationIndex), nil
	})
	if err != nil {
		return nil, err
	}
	return orch, nil
}

// DonationsByDonor projects the donor's donation indices onto the full donation list.
func (s *nftService) DonationsByDonor(
	ctx context.Context,
	sess entity.Session,
	donor common.Address,
	opts ...port.ReadOption,
) (entity.DonorDonations, error) {
	view := newDonorDonationsView(s.deps, sess, donor)
	if err := view.Load(ctx, opts...); err != nil {
		return view.Result(), err
	}
	return view.Result(), nil
}

// HasReceivedNFT reports whether user already holds a donation NFT.
func (s *nftService) HasReceivedNFT(
	ctx context.Context,
	sess entity.Session,
	user common.Address,
	opts ...port.ReadOption,
) (bool, error) {
	return runRead(ctx, newReader(s.deps, sess, ReadQuery[bool]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if user == (common.Address{}) || set.NFTContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.HasReceivedNFTCall(*set.NFTContract, user), true
		},
		Decode: contracts.DecodeBool,
	}), opts)
}

// IsDonationClaimed reports whether the NFT for donationIndex was claimed.
func (s *nftService) IsDonationClaimed(
	ctx context.Context,
	sess entity.Session,
	donationIndex *big.Int,
	opts ...port.ReadOption,
) (bool, error) {
	if donationIndex != nil && donationIndex.Sign() < 0 {
		return false, fmt.Errorf("%w: donation index must be non-negative", apperrors.ErrInvalidInput)
	}
	return runRead(ctx, newReader(s.deps, sess, ReadQuery[bool]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if donationIndex == nil || set.NFTTrackerContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.IsDonationClaimedCall(*set.NFTTrackerContract, donationIndex), true
		},
		Decode: contracts.DecodeBool,
	}), opts)
}

// UserNFTBalance returns how many donation NFTs user holds.
func (s *nftService) UserNFTBalance(
	ctx context.Context,
	sess entity.Session,
	user common.Address,
	opts ...port.ReadOption,
) (uint64, error) {
	v, err := runRead(ctx, newReader(s.deps, sess, ReadQuery[*big.Int]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if user == (common.Address{}) || set.NFTContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.NFTBalanceOfCall(*set.NFTContract, user), true
		},
		Decode: contracts.DecodeBigInt,
	}), opts)
	if err != nil || v == nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: nft balance %s does not fit uint64", apperrors.ErrExternalServiceFailure, v)
	}
	return v.Uint64(), nil
}

// donorDonationsView composes the donor's index list with the global donation list.
type donorDonationsView struct {
	indices *Reader[[]*big.Int]
	all     *Reader[[]entity.Donation]
	chainID int64
	logger  *zap.Logger
}

// newDonorDonationsView builds the two readers behind a donor projection.
func newDonorDonationsView(deps readDeps, sess entity.Session, donor common.Address) *donorDonationsView {
	return &donorDonationsView{
		indices: newReader(deps, sess, ReadQuery[[]*big.Int]{
			Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
				if donor == (common.Address{}) || set.NFTTrackerContract == nil {
					return contracts.CallRequest{}, false
				}
				return contracts.GetDonationIndicesCall(*set.NFTTrackerContract, donor), true
			},
			Decode: contracts.DecodeBigInts,
		}),
		all:     allDonationsReader(deps, sess),
		chainID: sess.ChainID,
		logger:  deps.logger,
	}
}

// Load runs both reads concurrently.
func (v *donorDonationsView) Load(ctx context.Context, opts ...port.ReadOption) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := runRead(gctx, v.indices, opts)
		return err
	})
	g.Go(func() error {
		_, err := runRead(gctx, v.all, opts)
		return err
	})
	return g.Wait()
}

// Result projects whatever has loaded so far. Donations stay empty until the
// global list is loaded.
func (v *donorDonationsView) Result() entity.DonorDonations {
	ir := v.indices.Result()
	ar := v.all.Result()

	indices := ir.Value
	if indices == nil {
		indices = []*big.Int{}
	}

	var all []entity.Donation
	if ar.IsSuccess {
		all = ar.Value
	}

	return entity.DonorDonations{
		Donations:          ProjectDonations(indices, all, v.logger),
		DonationIndices:    indices,
		IsLoading:          ir.IsLoading || ar.IsLoading,
		IsNetworkSupported: network.Resolve(v.chainID).IsSupported,
	}
}

// ProjectDonations gathers all[i] for every index. A nil all yields an empty
// slice; indices outside all are skipped.
func ProjectDonations(indices []*big.Int, all []entity.Donation, logger *zap.Logger) []entity.Donation {
	out := make([]entity.Donation, 0, len(indices))
	if all == nil {
		return out
	}
	for _, idx := range indices {
		if idx == nil || !idx.IsInt64() || idx.Sign() < 0 || idx.Int64() >= int64(len(all)) {
			logger.Warn("Donation index out of range",
				zap.Stringer("index", idx), zap.Int("donationCount", len(all)),
			)
			continue
		}
		out = append(out, all[idx.Int64()])
	}
	return out
}
