package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type StrategyKind string

const (
	// StrategySavings pays a low fixed rate on the whole balance.
	StrategySavings StrategyKind = "savings"
	// StrategyFixedDeposit pays a higher fixed rate on the whole balance.
	StrategyFixedDeposit StrategyKind = "fixed_deposit"
	// StrategyCurrent pays no interest.
	StrategyCurrent StrategyKind = "current"
)

var ErrUnknownStrategy = errors.New("unknown interest strategy")

var (
	savingsRate      = decimal.NewFromFloat(0.02)
	fixedDepositRate = decimal.NewFromFloat(0.05)
)

// Calculate returns the yearly interest for the given balance. Results are
// rounded to 2 decimal places, round half up (the system-wide rounding rule).
// The zero value of StrategyKind yields zero interest, so an account without
// an assigned strategy earns nothing.
func (k StrategyKind) Calculate(balance decimal.Decimal) decimal.Decimal {
	switch k {
	case StrategySavings:
		return balance.Mul(savingsRate).Round(2)
	case StrategyFixedDeposit:
		return balance.Mul(fixedDepositRate).Round(2)
	default:
		return decimal.Zero
	}
}

func ParseStrategyKind(s string) (StrategyKind, error) {
	switch StrategyKind(s) {
	case StrategySavings, StrategyFixedDeposit, StrategyCurrent:
		return StrategyKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}
