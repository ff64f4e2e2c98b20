package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallRequest is a read against a view function.
type CallRequest struct {
	Address common.Address
	Method  Method
	Args    []any
}

// TransactionRequest is a state-changing call. Value is the native amount
// attached to payable functions and is nil otherwise.
type TransactionRequest struct {
	Address common.Address
	Method  Method
	Args    []any
	Value   *big.Int
}

// Pack ABI-encodes the call data of the request.
func (r CallRequest) Pack() ([]byte, error) {
	return pack(r.Method, r.Args)
}

// Pack ABI-encodes the call data of the request.
func (r TransactionRequest) Pack() ([]byte, error) {
	return pack(r.Method, r.Args)
}

func pack(m Method, args []any) ([]byte, error) {
	a, err := ABI(m.Contract)
	if err != nil {
		return nil, err
	}
	data, err := a.Pack(m.Name, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", m, err)
	}
	return data, nil
}

// DonateTx donates native currency with an attached message.
func DonateTx(donation common.Address, message string, value *big.Int) TransactionRequest {
	return TransactionRequest{Address: donation, Method: MethodDonate, Args: []any{message}, Value: value}
}

// DonateTokenTx donates amount base units of token. The donation contract
// must already hold an allowance of at least amount.
func DonateTokenTx(donation, token common.Address, amount *big.Int, message string) TransactionRequest {
	return TransactionRequest{Address: donation, Method: MethodDonateToken, Args: []any{token, amount, message}}
}

// ApproveTx targets the token contract itself, not the donation contract.
func ApproveTx(token, spender common.Address, amount *big.Int) TransactionRequest {
	return TransactionRequest{Address: token, Method: MethodApprove, Args: []any{spender, amount}}
}

// ClaimNFTTx claims the NFT for the donation at index.
func ClaimNFTTx(tracker common.Address, index *big.Int) TransactionRequest {
	return TransactionRequest{Address: tracker, Method: MethodClaimNFT, Args: []any{index}}
}

func GetAllDonationsCall(donation common.Address) CallRequest {
	return CallRequest{Address: donation, Method: MethodGetAllDonations}
}

func GetNativeBalanceCall(donation common.Address) CallRequest {
	return CallRequest{Address: donation, Method: MethodGetNativeBalance}
}

func GetTokenBalanceCall(donation, token common.Address) CallRequest {
	return CallRequest{Address: donation, Method: MethodGetTokenBalance, Args: []any{token}}
}

func GetDonationIndicesCall(tracker, donor common.Address) CallRequest {
	return CallRequest{Address: tracker, Method: MethodGetDonationIndices, Args: []any{donor}}
}

func IsDonationClaimedCall(tracker common.Address, index *big.Int) CallRequest {
	return CallRequest{Address: tracker, Method: MethodIsDonationClaimed, Args: []any{index}}
}

func HasReceivedNFTCall(nft, user common.Address) CallRequest {
	return CallRequest{Address: nft, Method: MethodHasReceivedNFT, Args: []any{user}}
}

func NFTBalanceOfCall(nft, owner common.Address) CallRequest {
	return CallRequest{Address: nft, Method: MethodNFTBalanceOf, Args: []any{owner}}
}

func AllowanceCall(token, owner, spender common.Address) CallRequest {
	return CallRequest{Address: token, Method: MethodAllowance, Args: []any{owner, spender}}
}

func TokenBalanceOfCall(token, account common.Address) CallRequest {
	return CallRequest{Address: token, Method: MethodTokenBalanceOf, Args: []any{account}}
}

func DecimalsCall(token common.Address) CallRequest {
	return CallRequest{Address: token, Method: MethodDecimals}
}
