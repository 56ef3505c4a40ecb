package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDepositCommand_ExecuteThenUndo_RestoresBalance(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(1000))
	cmd := NewDepositCommand(account, decimal.NewFromInt(200))

	result := cmd.Execute()
	if !result.Success {
		t.Fatalf("expected execute to succeed, got %+v", result)
	}
	if cmd.Status() != CommandExecuted {
		t.Errorf("expected status executed, got %s", cmd.Status())
	}
	if got := account.Balance().StringFixed(2); got != "1200.00" {
		t.Errorf("expected balance 1200.00, got %s", got)
	}

	result = cmd.Undo()
	if !result.Success {
		t.Fatalf("expected undo to succeed, got %+v", result)
	}
	if cmd.Status() != CommandUndone {
		t.Errorf("expected status undone, got %s", cmd.Status())
	}
	if got := account.Balance().StringFixed(2); got != "1000.00" {
		t.Errorf("expected balance restored to 1000.00, got %s", got)
	}
}

func TestWithdrawCommand_ExecuteThenUndo_RestoresBalance(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(1000))
	cmd := NewWithdrawCommand(account, decimal.RequireFromString("250.50"))

	if result := cmd.Execute(); !result.Success {
		t.Fatalf("expected execute to succeed, got %+v", result)
	}
	if got := account.Balance().StringFixed(2); got != "749.50" {
		t.Errorf("expected balance 749.50, got %s", got)
	}

	if result := cmd.Undo(); !result.Success {
		t.Fatalf("expected undo to succeed, got %+v", result)
	}
	if got := account.Balance().StringFixed(2); got != "1000.00" {
		t.Errorf("expected balance restored to 1000.00, got %s", got)
	}
}

func TestWithdrawCommand_InsufficientFunds_StaysCreated(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))
	cmd := NewWithdrawCommand(account, decimal.NewFromInt(5000))

	result := cmd.Execute()

	if result.Success {
		t.Fatal("expected execute to report failure")
	}
	if cmd.Status() != CommandCreated {
		t.Errorf("expected status created after failed execute, got %s", cmd.Status())
	}
	if got := account.Balance().StringFixed(2); got != "100.00" {
		t.Errorf("expected balance unchanged at 100.00, got %s", got)
	}
}

func TestCommand_UndoBeforeExecute_IsNoOp(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))
	cmd := NewDepositCommand(account, decimal.NewFromInt(10))

	result := cmd.Undo()

	if result.Success {
		t.Fatal("expected undo on a created command to report failure")
	}
	if result.Message != "nothing to undo" {
		t.Errorf("unexpected message: %s", result.Message)
	}
	if got := account.Balance().StringFixed(2); got != "100.00" {
		t.Errorf("expected balance unchanged, got %s", got)
	}
}

func TestCommand_NoReexecutionAfterUndo(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(100))
	cmd := NewDepositCommand(account, decimal.NewFromInt(10))

	_ = cmd.Execute()
	_ = cmd.Undo()

	if result := cmd.Execute(); result.Success {
		t.Fatal("expected re-execution of an undone command to be rejected")
	}
	if result := cmd.Undo(); result.Success {
		t.Fatal("expected second undo to be rejected")
	}
	if got := account.Balance().StringFixed(2); got != "100.00" {
		t.Errorf("expected balance unchanged, got %s", got)
	}
}

func TestCommand_AppendsTransactionHistory(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(1000))

	deposit := NewDepositCommand(account, decimal.NewFromInt(200))
	_ = deposit.Execute()
	withdraw := NewWithdrawCommand(account, decimal.NewFromInt(50))
	_ = withdraw.Execute()
	_ = withdraw.Undo()

	history := account.History()
	expected := []string{
		"Deposit +$200.00",
		"Withdrawal -$50.00",
		"Withdrawal UNDO +$50.00",
	}
	if len(history) != len(expected) {
		t.Fatalf("expected %d history entries, got %d: %v", len(expected), len(history), history)
	}
	for i, want := range expected {
		if history[i] != want {
			t.Errorf("history[%d]: expected %q, got %q", i, want, history[i])
		}
	}
}

func TestCommand_UndoNotifiesObservers(t *testing.T) {
	account := NewAccount("a1", "Test", decimal.NewFromInt(1000))
	customer := NewCustomer("c1")
	account.Attach(customer)

	cmd := NewDepositCommand(account, decimal.NewFromInt(200))
	_ = cmd.Execute()
	_ = cmd.Undo()

	notifications := customer.Notifications()
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	if notifications[1] != "Undo of deposit of $200.00. Balance restored to $1000.00" {
		t.Errorf("unexpected undo message: %s", notifications[1])
	}
}
