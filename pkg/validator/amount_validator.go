package validator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeBalance = errors.New("negative initial balance")
)

// maxTransactionAmount caps a single deposit or withdrawal.
var maxTransactionAmount = decimal.NewFromInt(1_000_000)

type AmountValidator struct{}

func NewAmountValidator() *AmountValidator {
	return &AmountValidator{}
}

// ValidateAmount rejects non-positive and oversized transaction amounts
// before any state is touched.
func (v *AmountValidator) ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(maxTransactionAmount) {
		return fmt.Errorf("%w: amount exceeds maximum limit %s", ErrInvalidAmount, maxTransactionAmount)
	}
	return nil
}

// ValidateInitialBalance allows zero but not negative opening balances.
func (v *AmountValidator) ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeBalance, balance)
	}
	return nil
}
