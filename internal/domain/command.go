package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CommandStatus string

const (
	CommandCreated  CommandStatus = "created"
	CommandExecuted CommandStatus = "executed"
	CommandUndone   CommandStatus = "undone"
)

// Result carries the outcome of executing or undoing a command. A false
// Success is a business outcome (insufficient funds, nothing to undo), never
// a system error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command is a reified, undoable request against exactly one account.
// The lifecycle is created -> executed -> undone: a command that never
// executed cannot be undone, and an undone command cannot run again.
type Command interface {
	Execute() Result
	Undo() Result
	ID() string
	AccountID() string
	Status() CommandStatus
}

// DepositCommand adds a fixed amount to one account.
type DepositCommand struct {
	id       string
	account  *Account
	amount   decimal.Decimal
	snapshot decimal.Decimal
	status   CommandStatus
}

func NewDepositCommand(account *Account, amount decimal.Decimal) *DepositCommand {
	return &DepositCommand{
		id:      uuid.NewString(),
		account: account,
		amount:  amount,
		status:  CommandCreated,
	}
}

func (c *DepositCommand) ID() string {
	return c.id
}

func (c *DepositCommand) AccountID() string {
	return c.account.ID()
}

func (c *DepositCommand) Status() CommandStatus {
	return c.status
}

// Execute deposits the amount. A deposit always succeeds, so the command
// always reaches the executed state.
func (c *DepositCommand) Execute() Result {
	if c.status != CommandCreated {
		return Result{Message: fmt.Sprintf("deposit command already %s", c.status)}
	}

	c.snapshot = c.account.Deposit(c.amount)
	c.status = CommandExecuted
	c.account.appendHistory(fmt.Sprintf("Deposit +$%s", c.amount.StringFixed(2)))
	return Result{
		Success: true,
		Message: fmt.Sprintf("Deposit of $%s executed.", c.amount.StringFixed(2)),
	}
}

// Undo restores the balance recorded just before execution.
func (c *DepositCommand) Undo() Result {
	if c.status != CommandExecuted {
		return Result{Message: "nothing to undo"}
	}

	c.account.restoreBalance(c.snapshot, fmt.Sprintf(
		"Undo of deposit of $%s. Balance restored to $%s",
		c.amount.StringFixed(2), c.snapshot.StringFixed(2)))
	c.status = CommandUndone
	c.account.appendHistory(fmt.Sprintf("Deposit UNDO -$%s", c.amount.StringFixed(2)))
	return Result{
		Success: true,
		Message: fmt.Sprintf("Deposit of $%s undone.", c.amount.StringFixed(2)),
	}
}

// WithdrawCommand removes a fixed amount from one account.
type WithdrawCommand struct {
	id       string
	account  *Account
	amount   decimal.Decimal
	snapshot decimal.Decimal
	status   CommandStatus
}

func NewWithdrawCommand(account *Account, amount decimal.Decimal) *WithdrawCommand {
	return &WithdrawCommand{
		id:      uuid.NewString(),
		account: account,
		amount:  amount,
		status:  CommandCreated,
	}
}

func (c *WithdrawCommand) ID() string {
	return c.id
}

func (c *WithdrawCommand) AccountID() string {
	return c.account.ID()
}

func (c *WithdrawCommand) Status() CommandStatus {
	return c.status
}

// Execute attempts the withdrawal. On insufficient funds the account is
// untouched and the command stays in the created state, so it never enters
// the undo history.
func (c *WithdrawCommand) Execute() Result {
	if c.status != CommandCreated {
		return Result{Message: fmt.Sprintf("withdraw command already %s", c.status)}
	}

	snapshot, ok := c.account.Withdraw(c.amount)
	if !ok {
		return Result{Message: "Withdrawal failed due to insufficient funds."}
	}

	c.snapshot = snapshot
	c.status = CommandExecuted
	c.account.appendHistory(fmt.Sprintf("Withdrawal -$%s", c.amount.StringFixed(2)))
	return Result{
		Success: true,
		Message: fmt.Sprintf("Withdrawal of $%s executed.", c.amount.StringFixed(2)),
	}
}

// Undo restores the balance recorded just before execution.
func (c *WithdrawCommand) Undo() Result {
	if c.status != CommandExecuted {
		return Result{Message: "nothing to undo"}
	}

	c.account.restoreBalance(c.snapshot, fmt.Sprintf(
		"Undo of withdrawal of $%s. Balance restored to $%s",
		c.amount.StringFixed(2), c.snapshot.StringFixed(2)))
	c.status = CommandUndone
	c.account.appendHistory(fmt.Sprintf("Withdrawal UNDO +$%s", c.amount.StringFixed(2)))
	return Result{
		Success: true,
		Message: fmt.Sprintf("Withdrawal of $%s undone.", c.amount.StringFixed(2)),
	}
}
