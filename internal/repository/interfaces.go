package repository

import (
	"context"
	"errors"

	"bank_ledger/internal/domain"
)

type AccountRepository interface {
	Save(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetAll(ctx context.Context) ([]*domain.Account, error)
}

type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) error
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	GetAll(ctx context.Context) ([]*domain.Customer, error)
}

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)
