package domain

import (
	"sync"
)

// Observer receives textual notifications about account state changes.
// Implementations must not block: delivery happens inline with the
// balance mutation that triggered it.
type Observer interface {
	Name() string
	Update(message string)
}

// Customer is a named observer that keeps an append-only log of every
// notification it has received, oldest first.
type Customer struct {
	mu            sync.RWMutex
	name          string
	notifications []string
}

func NewCustomer(name string) *Customer {
	return &Customer{name: name}
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Update(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, message)
}

// Notifications returns a copy of the received messages in delivery order.
func (c *Customer) Notifications() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, len(c.notifications))
	copy(result, c.notifications)
	return result
}
