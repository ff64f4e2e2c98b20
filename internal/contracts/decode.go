package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"bam-donation/internal/domain/entity"
)

// donationTuple mirrors the BAMDonation.Donation struct returned by getAllDonations.
type donationTuple struct {
	Donor        common.Address
	Amount       *big.Int
	AssetType    uint8
	TokenAddress common.Address
	Message      string
	Timestamp    *big.Int
}

// DecodeDonations converts getAllDonations output into entities. The token
// address of native donations is dropped.
func DecodeDonations(out []any) (donations []entity.Donation, err error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("getAllDonations: empty output")
	}
	defer func() {
		// abi.ConvertType panics on shape mismatch.
		if r := recover(); r != nil {
			donations, err = nil, fmt.Errorf("getAllDonations: unexpected output shape: %v", r)
		}
	}()
	tuples := *abi.ConvertType(out[0], new([]donationTuple)).(*[]donationTuple)

	donations = make([]entity.Donation, 0, len(tuples))
	for _, t := range tuples {
		d := entity.Donation{
			Donor:     t.Donor,
			Amount:    t.Amount,
			AssetType: entity.AssetType(t.AssetType),
			Message:   t.Message,
		}
		if d.Amount == nil {
			d.Amount = new(big.Int)
		}
		if t.Timestamp != nil {
			d.Timestamp = t.Timestamp.Uint64()
		}
		if d.AssetType == entity.AssetToken {
			token := t.TokenAddress
			d.TokenAddress = &token
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// DecodeBigInt reads a single uint256 output.
func DecodeBigInt(out []any) (*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("expected uint256 output, got none")
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("expected uint256 output, got %T", out[0])
	}
	return v, nil
}

// DecodeBool reads a single bool output.
func DecodeBool(out []any) (bool, error) {
	if len(out) == 0 {
		return false, fmt.Errorf("expected bool output, got none")
	}
	v, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("expected bool output, got %T", out[0])
	}
	return v, nil
}

// DecodeBigInts reads a single uint256[] output.
func DecodeBigInts(out []any) ([]*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("expected uint256[] output, got none")
	}
	v, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("expected uint256[] output, got %T", out[0])
	}
	return v, nil
}

// DecodeUint8 reads a single uint8 output.
func DecodeUint8(out []any) (uint8, error) {
	if len(out) == 0 {
		return 0, fmt.Errorf("expected uint8 output, got none")
	}
	v, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("expected uint8 output, got %T", out[0])
	}
	return v, nil
}
