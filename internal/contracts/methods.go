// Package contracts describes the donation-domain contracts: their ABIs, a
// typed table of the functions this module calls, and request constructors
// that fix each function's argument types at compile time.
package contracts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Kind names one of the contract interfaces.
type Kind string

const (
	KindDonation   Kind = "BAMDonation"
	KindNFTTracker Kind = "BAMDonationNFTTracker"
	KindNFT        Kind = "BAMDonationNFT"
	KindERC20      Kind = "IERC20"
)

// Mutability is the state mutability of a contract function.
type Mutability string

const (
	View       Mutability = "view"
	NonPayable Mutability = "nonpayable"
	Payable    Mutability = "payable"
)

// Method identifies a function on a contract interface.
type Method struct {
	Contract   Kind
	Name       string
	Mutability Mutability
}

func (m Method) String() string {
	return string(m.Contract) + "." + m.Name
}

// IsWrite reports whether calling the method needs a transaction.
func (m Method) IsWrite() bool {
	return m.Mutability != View
}

var (
	MethodDonate           = Method{KindDonation, "donate", Payable}
	MethodDonateToken      = Method{KindDonation, "donateToken", NonPayable}
	MethodGetAllDonations  = Method{KindDonation, "getAllDonations", View}
	MethodGetNativeBalance = Method{KindDonation, "getNativeBalance", View}
	MethodGetTokenBalance  = Method{KindDonation, "getTokenBalance", View}

	MethodClaimNFT           = Method{KindNFTTracker, "claimNFT", NonPayable}
	MethodGetDonationIndices = Method{KindNFTTracker, "getDonationIndices", View}
	MethodIsDonationClaimed  = Method{KindNFTTracker, "isDonationClaimed", View}

	MethodHasReceivedNFT = Method{KindNFT, "hasReceivedNFT", View}
	MethodNFTBalanceOf   = Method{KindNFT, "balanceOf", View}

	MethodApprove        = Method{KindERC20, "approve", NonPayable}
	MethodAllowance      = Method{KindERC20, "allowance", View}
	MethodTokenBalanceOf = Method{KindERC20, "balanceOf", View}
	MethodDecimals       = Method{KindERC20, "decimals", View}
)

// Methods is every function the module calls.
var Methods = []Method{
	MethodDonate, MethodDonateToken, MethodGetAllDonations, MethodGetNativeBalance, MethodGetTokenBalance,
	MethodClaimNFT, MethodGetDonationIndices, MethodIsDonationClaimed,
	MethodHasReceivedNFT, MethodNFTBalanceOf,
	MethodApprove, MethodAllowance, MethodTokenBalanceOf, MethodDecimals,
}

var rawABIs = map[Kind]string{
	KindDonation:   DonationABI,
	KindNFTTracker: NFTTrackerABI,
	KindNFT:        NFTABI,
	KindERC20:      ERC20ABI,
}

var (
	parseOnce sync.Once
	parsed    map[Kind]abi.ABI
	parseErr  error
)

func parseAll() {
	parsed = make(map[Kind]abi.ABI, len(rawABIs))
	for kind, raw := range rawABIs {
		a, err := abi.JSON(strings.NewReader(raw))
		if err != nil {
			parseErr = fmt.Errorf("parse %s abi: %w", kind, err)
			return
		}
		parsed[kind] = a
	}
}

// ABI returns the parsed interface of kind.
func ABI(kind Kind) (abi.ABI, error) {
	parseOnce.Do(parseAll)
	if parseErr != nil {
		return abi.ABI{}, parseErr
	}
	a, ok := parsed[kind]
	if !ok {
		return abi.ABI{}, fmt.Errorf("unknown contract kind %q", kind)
	}
	return a, nil
}

// Validate checks that every entry of Methods exists in its ABI with the
// declared mutability.
func Validate() error {
	for _, m := range Methods {
		a, err := ABI(m.Contract)
		if err != nil {
			return err
		}
		am, ok := a.Methods[m.Name]
		if !ok {
			return fmt.Errorf("%s: not in abi", m)
		}
		if Mutability(am.StateMutability) != m.Mutability {
			return fmt.Errorf("%s: abi mutability %q, table says %q", m, am.StateMutability, m.Mutability)
		}
	}
	return nil
}
