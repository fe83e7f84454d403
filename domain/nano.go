package domain

import (
	"fmt"
	"math/big"
	"regexp"

	"github.com/shopspring/decimal"
)

// NanoDigits is the fixed fractional precision of every monetary amount in
// the system: one unit is 10^9 nano-units.
const NanoDigits = 9

var ErrorInvalidNumeral = fmt.Errorf("not a plain unsigned decimal numeral")

var numeralRE = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ToNano converts a plain unsigned decimal numeral into an integer count of
// nano-units. Signs, exponents and any stray character are rejected; a
// fractional part is padded or truncated to exactly nine digits first.
func ToNano(value string) (*big.Int, error) {
	if !numeralRE.MatchString(value) {
		return nil, fmt.Errorf("%w: %q", ErrorInvalidNumeral, value)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrorInvalidNumeral, value)
	}
	return d.Truncate(NanoDigits).Shift(NanoDigits).BigInt(), nil
}

// FromNano is the display-side inverse of ToNano.
func FromNano(value *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(value, -NanoDigits)
}

// Round9 rounds an amount to the system's nano-unit precision. Conversions
// apply it at the point of computation, not only at display time, so
// repeated accumulation matches a bit-exact nano-unit ledger.
func Round9(value decimal.Decimal) decimal.Decimal {
	return value.Round(NanoDigits)
}
