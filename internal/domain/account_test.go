package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_Deposit_AccumulatesBalance(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))

	account.Deposit(decimal.RequireFromString("50.25"))
	account.Deposit(decimal.RequireFromString("49.75"))

	if got := account.Balance().StringFixed(2); got != "200.00" {
		t.Errorf("expected balance 200.00, got %s", got)
	}
}

func TestAccount_Withdraw_Success(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))

	previous, ok := account.Withdraw(decimal.NewFromInt(40))

	if !ok {
		t.Fatal("expected withdrawal to succeed")
	}
	if previous.StringFixed(2) != "100.00" {
		t.Errorf("expected snapshot 100.00, got %s", previous.StringFixed(2))
	}
	if got := account.Balance().StringFixed(2); got != "60.00" {
		t.Errorf("expected balance 60.00, got %s", got)
	}
}

func TestAccount_Withdraw_InsufficientFunds(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))
	customer := NewCustomer("c1")
	account.Attach(customer)

	_, ok := account.Withdraw(decimal.NewFromInt(500))

	if ok {
		t.Fatal("expected withdrawal to fail")
	}
	if got := account.Balance().StringFixed(2); got != "100.00" {
		t.Errorf("expected balance unchanged at 100.00, got %s", got)
	}
	notifications := customer.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0] != "Withdrawal of $500.00 FAILED. Insufficient funds: $100.00" {
		t.Errorf("unexpected message: %s", notifications[0])
	}
}

func TestAccount_Attach_Idempotent(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))
	customer := NewCustomer("c1")

	account.Attach(customer)
	account.Attach(customer)
	account.Deposit(decimal.NewFromInt(10))

	if got := len(customer.Notifications()); got != 1 {
		t.Errorf("expected 1 notification after double attach, got %d", got)
	}
}

func TestAccount_Notify_DeliversInAttachmentOrder(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))

	var order []string
	first := &orderProbe{name: "first", order: &order}
	second := &orderProbe{name: "second", order: &order}
	third := &orderProbe{name: "third", order: &order}
	account.Attach(first)
	account.Attach(second)
	account.Attach(third)

	account.Notify("hello")

	if len(order) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("expected delivery in attachment order, got %v", order)
	}
}

type orderProbe struct {
	name  string
	order *[]string
}

func (p *orderProbe) Name() string { return p.name }

func (p *orderProbe) Update(message string) {
	*p.order = append(*p.order, p.name)
}

func TestAccount_DepositMessage(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(1000))
	customer := NewCustomer("c1")
	account.Attach(customer)

	account.Deposit(decimal.NewFromInt(200))

	notifications := customer.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0] != "Deposit of $200.00 successful. New balance: $1200.00" {
		t.Errorf("unexpected message: %s", notifications[0])
	}
}

func TestAccount_YearlyInterest_DoesNotMutateBalance(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(1000))

	if got := account.YearlyInterest().StringFixed(2); got != "0.00" {
		t.Errorf("expected 0.00 without a strategy, got %s", got)
	}

	account.SetInterestStrategy(StrategyFixedDeposit)
	if got := account.YearlyInterest().StringFixed(2); got != "50.00" {
		t.Errorf("expected 50.00, got %s", got)
	}

	account.SetInterestStrategy(StrategySavings)
	if got := account.YearlyInterest().StringFixed(2); got != "20.00" {
		t.Errorf("expected 20.00 after swap, got %s", got)
	}

	if got := account.Balance().StringFixed(2); got != "1000.00" {
		t.Errorf("expected balance untouched at 1000.00, got %s", got)
	}
}
