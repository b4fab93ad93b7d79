package main

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// formatAmount renders base units with the configured number of decimals
func formatAmount(amount uint64, decimals int32) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals)
	return d.StringFixed(decimals)
}

// parseAmount converts a display amount such as "1.25" into base units
func parseAmount(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if d.Sign() < 0 {
		return 0, errors.New("amount cannot be negative")
	}

	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}

	n := units.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("amount %q is too large", s)
	}

	return n.Uint64(), nil
}
