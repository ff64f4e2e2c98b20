// Package format holds pure conversions between on-chain integers and the
// strings shown to donors. Nothing here performs I/O.
package format

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"bam-donation/internal/domain"
)

// EtherDecimals is the fixed-point precision of native currency amounts.
const EtherDecimals uint8 = 18

// ParseUnits converts a human-readable decimal amount into base units scaled
// by 10^decimals. Negative amounts and amounts with more fractional digits
// than decimals are rejected with domain.ErrInvalidAmount.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	raw := strings.TrimSpace(amount)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty amount", domain.ErrInvalidAmount)
	}
	if strings.HasPrefix(raw, "-") {
		return nil, fmt.Errorf("%w: %q is negative", domain.ErrInvalidAmount, amount)
	}
	if !plainDecimal(raw) {
		return nil, fmt.Errorf("%w: %q is not a plain decimal number", domain.ErrInvalidAmount, amount)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a decimal number", domain.ErrInvalidAmount, amount)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", domain.ErrInvalidAmount, amount, decimals)
	}
	return scaled.BigInt(), nil
}

// plainDecimal allows digits and at most one dot. Signs and exponents are rejected.
func plainDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// ParseEther is ParseUnits with 18 decimals.
func ParseEther(amount string) (*big.Int, error) {
	return ParseUnits(amount, EtherDecimals)
}

// FormatUnits renders base units as a decimal string without trailing zeros.
// A nil value renders as "0".
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

// FormatEther is FormatUnits with 18 decimals.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}
