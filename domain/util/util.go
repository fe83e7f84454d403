package util

import (
	"fmt"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

func NanoToTonString(nano *big.Int) string {
	value, _ := new(big.Float).SetInt(nano).Float64()
	return fmt.Sprintf("%v Ton", humanize.Commaf(value/1000000000))
}

func UsdtString(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return fmt.Sprintf("%v Usdt", humanize.Commaf(value))
}

func DctString(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return fmt.Sprintf("%v Dct", humanize.Commaf(value))
}
