package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
)

func TestAccountRepository_SaveAndGetByID(t *testing.T) {
	repo := NewAccountRepository()
	account := domain.NewAccount("acc1", "Test Account", decimal.NewFromInt(100))

	err := repo.Save(context.Background(), account)
	if err != nil {
		t.Fatalf("unexpected error on Save: %v", err)
	}
	got, err := repo.GetByID(context.Background(), "acc1")

	if err != nil {
		t.Fatalf("unexpected error on GetByID: %v", err)
	}
	if got.ID() != account.ID() || got.Balance().StringFixed(2) != "100.00" {
		t.Errorf("expected account %s with balance 100.00, got %s with %s",
			account.ID(), got.ID(), got.Balance().StringFixed(2))
	}
}

func TestAccountRepository_Save_Duplicate(t *testing.T) {
	repo := NewAccountRepository()
	_ = repo.Save(context.Background(), domain.NewAccount("acc1", "First", decimal.Zero))

	err := repo.Save(context.Background(), domain.NewAccount("acc1", "Second", decimal.Zero))

	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	repo := NewAccountRepository()

	_, err := repo.GetByID(context.Background(), "missing")

	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_GetAll_SortedByID(t *testing.T) {
	repo := NewAccountRepository()
	_ = repo.Save(context.Background(), domain.NewAccount("b2", "Second", decimal.Zero))
	_ = repo.Save(context.Background(), domain.NewAccount("a1", "First", decimal.Zero))

	accounts, err := repo.GetAll(context.Background())

	if err != nil {
		t.Fatalf("unexpected error on GetAll: %v", err)
	}
	if len(accounts) != 2 || accounts[0].ID() != "a1" || accounts[1].ID() != "b2" {
		t.Errorf("expected accounts sorted by ID, got %v", accounts)
	}
}

func TestCustomerRepository_SaveAndGetByName(t *testing.T) {
	repo := NewCustomerRepository()
	customer := domain.NewCustomer("Alice")

	err := repo.Save(context.Background(), customer)
	if err != nil {
		t.Fatalf("unexpected error on Save: %v", err)
	}
	got, err := repo.GetByName(context.Background(), "Alice")

	if err != nil {
		t.Fatalf("unexpected error on GetByName: %v", err)
	}
	if got != customer {
		t.Errorf("expected the same customer instance back")
	}
}

func TestCustomerRepository_Save_Duplicate(t *testing.T) {
	repo := NewCustomerRepository()
	_ = repo.Save(context.Background(), domain.NewCustomer("Alice"))

	err := repo.Save(context.Background(), domain.NewCustomer("Alice"))

	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}
