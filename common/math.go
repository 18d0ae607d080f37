package common

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// BigToDecimal converts a raw integer amount to a decimal according to its
// number of decimal digits. The conversion is exact.
// Example:
// - BigToDecimal(1100, 3) = 1.1
// - BigToDecimal(1100, 2) = 11
// - BigToDecimal(1100, 5) = 0.011
func BigToDecimal(b *big.Int, decimals uint64) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(b, -int32(decimals))
}

// DecimalToBig converts a human amount to its raw integer representation
// with the given number of decimal digits. Digits beyond that precision are
// truncated.
// Example:
// - DecimalToBig(1.234, 4) = 12340
// - DecimalToBig(8, 18) = 8000000000000000000
func DecimalToBig(d decimal.Decimal, decimals uint64) *big.Int {
	return d.Shift(int32(decimals)).BigInt()
}

// StringToDecimalBig parses a human readable amount such as "1.5" and
// converts it with DecimalToBig.
func StringToDecimalBig(value string, decimals uint64) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %q as a number: %w", value, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount %q must not be negative", value)
	}
	return DecimalToBig(d, decimals), nil
}
