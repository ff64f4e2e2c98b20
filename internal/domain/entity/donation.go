package entity

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AssetType is the on-chain asset discriminator of a donation record.
type AssetType uint8

const (
	AssetNative AssetType = 0
	AssetToken  AssetType = 1
)

// String returns the lowercase asset name.
func (a AssetType) String() string {
	switch a {
	case AssetNative:
		return "native"
	case AssetToken:
		return "token"
	default:
		return "unknown"
	}
}

// Donation is a donation record as stored by the donation contract.
// TokenAddress is set iff AssetType is AssetToken.
type Donation struct {
	Donor        common.Address
	Amount       *big.Int
	AssetType    AssetType
	TokenAddress *common.Address
	Message      string
	Timestamp    uint64
}

// FormattedDonation is the presentation form of a Donation.
type FormattedDonation struct {
	Donor           common.Address  `json:"donor"`
	Amount          *big.Int        `json:"amount"`
	FormattedAmount string          `json:"formattedAmount"`
	Timestamp       time.Time       `json:"timestamp"`
	Message         string          `json:"message"`
	TokenAddress    *common.Address `json:"tokenAddress,omitempty"`
	AssetType       AssetType       `json:"assetType"`
	IsNative        bool            `json:"isNative"`
	IsToken         bool            `json:"isToken"`
}

// DonorDonations is the projection of a donor's indices onto the global donation list.
type DonorDonations struct {
	Donations          []Donation `json:"donations"`
	DonationIndices    []*big.Int `json:"donationIndices"`
	IsLoading          bool       `json:"isLoading"`
	IsNetworkSupported bool       `json:"isNetworkSupported"`
}

// Balance is a native balance in wei alongside its ether rendering.
type Balance struct {
	Wei       *big.Int `json:"wei"`
	Formatted string   `json:"formatted"`
}
