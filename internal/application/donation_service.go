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
	domainRepo "bam-donation/internal/domain/repository"
	domainService "bam-donation/internal/domain/service"
	"bam-donation/internal/pkg/apperrors"
	"bam-donation/internal/pkg/format"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Compile-time check to ensure donationService implements DonationService
var _ port.DonationService = (*donationService)(nil)

var errTokenRequired = fmt.Errorf("%w: token address is required", apperrors.ErrInvalidInput)

// donationService implements port.DonationService on top of the read accessor and write orchestrator.
type donationService struct {
	deps   readDeps
	logger *zap.Logger
}

// NewDonationService creates a new instance of the donation service.
func NewDonationService(
	gateway domainService.ChainGateway,
	cacheRepo domainRepo.CacheRepository,
	logger *zap.Logger,
	cfg config.ReaderConfig,
) port.DonationService {
	named := logger.Named("DonationService")
	return &donationService{
		deps: readDeps{
			gateway: gateway,
			cache:   cacheRepo,
			logger:  named,
			ttl:     cfg.GetCacheTTL(),
		},
		logger: named,
	}
}

// DonateNative sends donate(message) with amount ether attached.
func (s *donationService) DonateNative(
	ctx context.Context,
	sess entity.Session,
	amount string,
	opts ...port.TxOption,
) (port.Transaction, error) {
	o := port.ApplyTxOptions(opts)
	return s.submit(ctx, sess, func(set entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
		if set.DonationContract == nil {
			return contracts.TransactionRequest{}, domain.ErrContractNotResolved
		}
		value, err := format.ParseEther(amount)
		if err != nil {
			return contracts.TransactionRequest{}, err
		}
		return contracts.DonateTx(*set.DonationContract, o.Message, value), nil
	})
}

// DonateToken sends donateToken(token, scaledAmount, message).
func (s *donationService) DonateToken(
	ctx context.Context,
	sess entity.Session,
	token common.Address,
	amount string,
	opts ...port.TxOption,
) (port.Transaction, error) {
	o := port.ApplyTxOptions(opts)
	return s.submit(ctx, sess, func(set entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
		if set.DonationContract == nil {
			return contracts.TransactionRequest{}, domain.ErrContractNotResolved
		}
		if token == (common.Address{}) {
			return contracts.TransactionRequest{}, errTokenRequired
		}
		scaled, err := s.scale(ctx, sess, token, amount, o)
		if err != nil {
			return contracts.TransactionRequest{}, err
		}
		return contracts.DonateTokenTx(*set.DonationContract, token, scaled, o.Message), nil
	})
}

// ApproveToken sends approve(donationContract, scaledAmount) to the token contract.
func (s *donationService) ApproveToken(
	ctx context.Context,
	sess entity.Session,
	token common.Address,
	amount string,
	opts ...port.TxOption,
) (port.Transaction, error) {
	o := port.ApplyTxOptions(opts)
	return s.submit(ctx, sess, func(set entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
		if set.DonationContract == nil {
			return contracts.TransactionRequest{}, domain.ErrContractNotResolved
		}
		if token == (common.Address{}) {
			return contracts.TransactionRequest{}, errTokenRequired
		}
		scaled, err := s.scale(ctx, sess, token, amount, o)
		if err != nil {
			return contracts.TransactionRequest{}, err
		}
		return contracts.ApproveTx(token, *set.DonationContract, scaled), nil
	})
}

func (s *donationService) submit(ctx context.Context, sess entity.Session, build TxBuilder) (port.Transaction, error) {
	orch := NewOrchestrator(s.deps.gateway, s.logger)
	if err := orch.Submit(ctx, sess, build); err != nil {
		return nil, err
	}
	return orch, nil
}

// scale converts amount to token base units, asking the token for its
// decimals unless the caller supplied them.
func (s *donationService) scale(
	ctx context.Context,
	sess entity.Session,
	token common.Address,
	amount string,
	o port.TxOptions,
) (*big.Int, error) {
	if o.Decimals != nil {
		return format.ParseUnits(amount, *o.Decimals)
	}

	decimals, err := newReader(s.deps, sess, ReadQuery[uint8]{
		Request: func(entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			return contracts.DecimalsCall(token), true
		},
		Decode: contracts.DecodeUint8,
	}).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("token %s decimals lookup: %w", token.Hex(), err)
	}
	s.logger.Debug("Resolved token decimals on-chain", zap.Stringer("token", token), zap.Uint8("decimals", decimals))
	return format.ParseUnits(amount, decimals)
}

// TokenAllowance reads allowance(owner, donationContract) on token.
func (s *donationService) TokenAllowance(
	ctx context.Context,
	sess entity.Session,
	token, owner common.Address,
	opts ...port.ReadOption,
) (*big.Int, error) {
	v, err := runRead(ctx, newReader(s.deps, sess, ReadQuery[*big.Int]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if token == (common.Address{}) || owner == (common.Address{}) || set.DonationContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.AllowanceCall(token, owner, *set.DonationContract), true
		},
		Decode: contracts.DecodeBigInt,
	}), opts)
	return orZero(v), err
}

// AllDonations reads the full donation list.
func (s *donationService) AllDonations(
	ctx context.Context,
	sess entity.Session,
	opts ...port.ReadOption,
) ([]entity.Donation, error) {
	return runRead(ctx, allDonationsReader(s.deps, sess), opts)
}

func allDonationsReader(deps readDeps, sess entity.Session) *Reader[[]entity.Donation] {
	return newReader(deps, sess, ReadQuery[[]entity.Donation]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if set.DonationContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.GetAllDonationsCall(*set.DonationContract), true
		},
		Decode: contracts.DecodeDonations,
	})
}

// ContractBalance reads the donation contract's native balance.
func (s *donationService) ContractBalance(
	ctx context.Context,
	sess entity.Session,
	opts ...port.ReadOption,
) (entity.Balance, error) {
	wei, err := runRead(ctx, newReader(s.deps, sess, ReadQuery[*big.Int]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if set.DonationContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.GetNativeBalanceCall(*set.DonationContract), true
		},
		Decode: contracts.DecodeBigInt,
	}), opts)
	if err != nil || wei == nil {
		return entity.Balance{Formatted: "0"}, err
	}
	return entity.Balance{Wei: wei, Formatted: format.FormatEther(wei)}, nil
}

// ContractTokenBalance reads how much of token the donation contract holds.
func (s *donationService) ContractTokenBalance(
	ctx context.Context,
	sess entity.Session,
	token common.Address,
	opts ...port.ReadOption,
) (*big.Int, error) {
	v, err := runRead(ctx, newReader(s.deps, sess, ReadQuery[*big.Int]{
		Request: func(set entity.NetworkAddressSet) (contracts.CallRequest, bool) {
			if token == (common.Address{}) || set.DonationContract == nil {
				return contracts.CallRequest{}, false
			}
			return contracts.GetTokenBalanceCall(*set.DonationContract, token), true
		},
		Decode: contracts.DecodeBigInt,
	}), opts)
	return orZero(v), err
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
