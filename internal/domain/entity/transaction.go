package entity

import "github.com/ethereum/go-ethereum/common"

// TxState is the lifecycle position of a tracked transaction.
type TxState string

const (
	TxIdle      TxState = "idle"
	TxPending   TxState = "pending"
	TxConfirmed TxState = "confirmed"
	TxFailed    TxState = "failed"
)

// Terminal reports whether no further transitions can happen for the current attempt.
func (s TxState) Terminal() bool {
	return s == TxConfirmed || s == TxFailed
}

// TransactionStatus is the observable status of a write flow.
// TransactionHash is nil until the wallet returns one.
type TransactionStatus struct {
	State              TxState      `json:"state"`
	TransactionHash    *common.Hash `json:"transactionHash,omitempty"`
	BlockNumber        uint64       `json:"blockNumber,omitempty"`
	Error              error        `json:"-"`
	IsNetworkSupported bool         `json:"isNetworkSupported"`
}

// IsLoading is true while the transaction awaits signature or confirmation.
func (s TransactionStatus) IsLoading() bool { return s.State == TxPending }

// IsSuccess is true once the receipt confirmed the transaction.
func (s TransactionStatus) IsSuccess() bool { return s.State == TxConfirmed }

// IsError is true when submission or confirmation failed.
func (s TransactionStatus) IsError() bool { return s.State == TxFailed }
