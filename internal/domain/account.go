package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Account holds a balance, the observers interested in it and the interest
// strategy assigned to it. The balance changes only through Deposit, Withdraw
// and command undo; every change notifies all attached observers in
// attachment order. All methods are safe for concurrent use: the account
// mutex covers each read-modify-write together with its notification fan-out.
type Account struct {
	mu        sync.Mutex
	id        string
	name      string
	balance   decimal.Decimal
	observers []Observer
	strategy  StrategyKind
	history   []string
}

func NewAccount(id, name string, initialBalance decimal.Decimal) *Account {
	return &Account{
		id:      id,
		name:    name,
		balance: initialBalance,
	}
}

func (a *Account) ID() string {
	return a.id
}

func (a *Account) Name() string {
	return a.name
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Attach registers an observer. Attaching the same observer twice has no
// additional effect; identity is pointer equality.
func (a *Account) Attach(observer Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.observers {
		if existing == observer {
			return
		}
	}
	a.observers = append(a.observers, observer)
}

// Notify delivers message to every attached observer in attachment order.
func (a *Account) Notify(message string) {
	a.mu.Lock()
	observers := a.snapshotObservers()
	a.mu.Unlock()

	deliver(observers, message)
}

// Deposit adds amount to the balance and notifies observers. It always
// succeeds and returns the balance as it was before the deposit. The caller
// is responsible for rejecting non-positive amounts before getting here.
func (a *Account) Deposit(amount decimal.Decimal) decimal.Decimal {
	a.mu.Lock()
	previous := a.balance
	a.balance = a.balance.Add(amount)
	message := fmt.Sprintf("Deposit of $%s successful. New balance: $%s",
		amount.StringFixed(2), a.balance.StringFixed(2))
	observers := a.snapshotObservers()
	a.mu.Unlock()

	deliver(observers, message)
	return previous
}

// Withdraw removes amount from the balance if it is covered. Insufficient
// funds is a business outcome, not an error: the balance stays untouched,
// observers are told, and ok is false. It returns the balance as it was
// before the call.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, bool) {
	a.mu.Lock()
	previous := a.balance
	var message string
	ok := a.balance.GreaterThanOrEqual(amount)
	if ok {
		a.balance = a.balance.Sub(amount)
		message = fmt.Sprintf("Withdrawal of $%s successful. New balance: $%s",
			amount.StringFixed(2), a.balance.StringFixed(2))
	} else {
		message = fmt.Sprintf("Withdrawal of $%s FAILED. Insufficient funds: $%s",
			amount.StringFixed(2), a.balance.StringFixed(2))
	}
	observers := a.snapshotObservers()
	a.mu.Unlock()

	deliver(observers, message)
	return previous, ok
}

func (a *Account) SetInterestStrategy(kind StrategyKind) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.strategy = kind
}

func (a *Account) InterestStrategy() StrategyKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.strategy
}

// YearlyInterest is a pure function of the current balance and strategy.
// It never changes the balance. Without an assigned strategy it returns zero.
func (a *Account) YearlyInterest() decimal.Decimal {
	a.mu.Lock()
	balance, strategy := a.balance, a.strategy
	a.mu.Unlock()

	return strategy.Calculate(balance)
}

// History returns a copy of the account's transaction log, oldest first.
func (a *Account) History() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]string, len(a.history))
	copy(result, a.history)
	return result
}

func (a *Account) appendHistory(entry string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, entry)
}

// restoreBalance puts the balance back to an earlier snapshot. Only command
// undo calls this; it is correct because all mutation of one account is
// serialized through the invoker, so no other change can interleave between
// a command's execution and its undo.
func (a *Account) restoreBalance(balance decimal.Decimal, message string) {
	a.mu.Lock()
	a.balance = balance
	observers := a.snapshotObservers()
	a.mu.Unlock()

	deliver(observers, message)
}

// snapshotObservers copies the observer list so delivery iterates a stable
// view even if Attach runs mid-notification. Callers must hold a.mu.
func (a *Account) snapshotObservers() []Observer {
	observers := make([]Observer, len(a.observers))
	copy(observers, a.observers)
	return observers
}

func deliver(observers []Observer, message string) {
	for _, observer := range observers {
		observer.Update(message)
	}
}
