package port

// ReadOption tunes a single contract read.
type ReadOption func(*ReadOptions)

// ReadOptions is the resolved set of ReadOption values.
type ReadOptions struct {
	Refetch bool
}

// WithRefetch bypasses any cached value and reads from the chain.
func WithRefetch() ReadOption {
	return func(o *ReadOptions) { o.Refetch = true }
}

// ApplyReadOptions folds opts into ReadOptions.
func ApplyReadOptions(opts []ReadOption) ReadOptions {
	var o ReadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TxOption tunes a donation or approval.
type TxOption func(*TxOptions)

// TxOptions is the resolved set of TxOption values. A nil Decimals means the
// token's decimals are looked up on-chain.
type TxOptions struct {
	Decimals *uint8
	Message  string
}

// WithDecimals scales token amounts by 10^d instead of asking the token.
func WithDecimals(d uint8) TxOption {
	return func(o *TxOptions) { o.Decimals = &d }
}

// WithMessage attaches a message to a donation.
func WithMessage(m string) TxOption {
	return func(o *TxOptions) { o.Message = m }
}

// ApplyTxOptions folds opts into TxOptions.
func ApplyTxOptions(opts []TxOption) TxOptions {
	var o TxOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
