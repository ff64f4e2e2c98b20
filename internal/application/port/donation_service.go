package port

import (
	"context"
	"math/big"

	"bam-donation/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// DonationService drives native and token donations and their read companions.
type DonationService interface {
	// DonateNative donates amount (decimal ether string) with an optional message.
	DonateNative(ctx context.Context, sess entity.Session, amount string, opts ...TxOption) (Transaction, error)

	// DonateToken donates amount of token, scaled by the token's decimals.
	DonateToken(ctx context.Context, sess entity.Session, token common.Address, amount string, opts ...TxOption) (Transaction, error)

	// ApproveToken lets the donation contract spend amount of token on the caller's behalf.
	ApproveToken(ctx context.Context, sess entity.Session, token common.Address, amount string, opts ...TxOption) (Transaction, error)

	TokenAllowance(ctx context.Context, sess entity.Session, token, owner common.Address, opts ...ReadOption) (*big.Int, error)
	AllDonations(ctx context.Context, sess entity.Session, opts ...ReadOption) ([]entity.Donation, error)
	ContractBalance(ctx context.Context, sess entity.Session, opts ...ReadOption) (entity.Balance, error)
	ContractTokenBalance(ctx context.Context, sess entity.Session, token common.Address, opts ...ReadOption) (*big.Int, error)
}
