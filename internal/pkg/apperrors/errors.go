// Package apperrors holds the error categories shared by every adapter.
// Adapters wrap one of these with %w; the HTTP layer maps them to status codes.
package apperrors

import "errors"

var (
	// ErrNotFound: the chain metadata, transaction or record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput: a chain id, address, index or amount failed validation.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrExternalServiceFailure: an RPC node, chainlist or contract call failed.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	ErrTimeout = errors.New("operation timed out")

	// ErrInternal: a bug or broken invariant on our side.
	ErrInternal = errors.New("internal system error")
)
