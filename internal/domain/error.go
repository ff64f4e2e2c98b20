package domain

import "errors"

var (
	// ErrUnsupportedNetwork means the chain identifier is not in the network registry.
	ErrUnsupportedNetwork = errors.New("network not supported")

	// ErrWalletNotConnected means there is no active account to sign with.
	ErrWalletNotConnected = errors.New("wallet not connected")

	// ErrContractNotResolved means the registry has no address for the target contract.
	ErrContractNotResolved = errors.New("contract address not found")

	// ErrInvalidAmount means a caller-supplied amount could not be converted to base units.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTransactionReverted means the transaction was mined but its receipt reports failure.
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrChainNotFound means the requested chain was not found in the metadata source.
	ErrChainNotFound = errors.New("chain not found")

	// ErrNoRPCsAvailable means there are no available or working RPCs for the chain.
	ErrNoRPCsAvailable = errors.New("no RPCs available for the chain")
)
