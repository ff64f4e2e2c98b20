package port

import (
	"context"
	"math/big"

	"bam-donation/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// NFTService drives the NFT claim flow and ownership reads.
type NFTService interface {
	ClaimNFT(ctx context.Context, sess entity.Session, donationIndex *big.Int) (Transaction, error)
	DonationsByDonor(ctx context.Context, sess entity.Session, donor common.Address, opts ...ReadOption) (entity.DonorDonations, error)
	HasReceivedNFT(ctx context.Context, sess entity.Session, user common.Address, opts ...ReadOption) (bool, error)
	IsDonationClaimed(ctx context.Context, sess entity.Session, donationIndex *big.Int, opts ...ReadOption) (bool, error)
	UserNFTBalance(ctx context.Context, sess entity.Session, user common.Address, opts ...ReadOption) (uint64, error)
}
