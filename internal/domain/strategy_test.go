package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStrategyKind_Calculate_Rates(t *testing.T) {
	balance := decimal.NewFromInt(1000)

	tests := []struct {
		kind StrategyKind
		want string
	}{
		{StrategySavings, "20.00"},
		{StrategyFixedDeposit, "50.00"},
		{StrategyCurrent, "0.00"},
		{StrategyKind(""), "0.00"},
	}

	for _, tt := range tests {
		got := tt.kind.Calculate(balance)
		if got.StringFixed(2) != tt.want {
			t.Errorf("%s.Calculate(1000): expected %s, got %s", tt.kind, tt.want, got.StringFixed(2))
		}
	}
}

func TestStrategyKind_Calculate_RoundsHalfUp(t *testing.T) {
	// 333.33 * 0.02 = 6.6666 -> 6.67
	got := StrategySavings.Calculate(decimal.RequireFromString("333.33"))
	if got.StringFixed(2) != "6.67" {
		t.Errorf("expected 6.67, got %s", got.StringFixed(2))
	}

	// 100.50 * 0.05 = 5.025 -> 5.03 (half rounds up)
	got = StrategyFixedDeposit.Calculate(decimal.RequireFromString("100.50"))
	if got.StringFixed(2) != "5.03" {
		t.Errorf("expected 5.03, got %s", got.StringFixed(2))
	}
}

func TestParseStrategyKind(t *testing.T) {
	kind, err := ParseStrategyKind("fixed_deposit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != StrategyFixedDeposit {
		t.Errorf("expected fixed_deposit, got %s", kind)
	}

	_, err = ParseStrategyKind("crypto_staking")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}
