package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.Name()]; exists {
		return fmt.Errorf("%w: customer %s", repository.ErrDuplicate, customer.Name())
	}

	r.customers[customer.Name()] = customer
	return nil
}

func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[name]
	if !exists {
		return nil, fmt.Errorf("%w: customer %s", repository.ErrNotFound, name)
	}
	return customer, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})

	return result, nil
}
