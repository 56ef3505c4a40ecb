package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
	"bank_ledger/pkg/validator"
)

// TransactionEngine is the invoker: it validates requests, builds commands,
// executes them against accounts and keeps the undo history. The history is
// strictly LIFO and only holds commands that actually executed.
type TransactionEngine struct {
	accountRepo  repository.AccountRepository
	customerRepo repository.CustomerRepository
	validator    *validator.AmountValidator
	mu           sync.Mutex
	history      []domain.Command
	counters     map[string]int
	logger       *slog.Logger
}

func NewTransactionEngine(
	accountRepo repository.AccountRepository,
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) *TransactionEngine {
	if logger == nil {
		logger = slog.Default()
	}

	return &TransactionEngine{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		validator:    validator.NewAmountValidator(),
		counters:     make(map[string]int),
		logger:       logger,
	}
}

func (e *TransactionEngine) CreateAccount(ctx context.Context, id, name string, initialBalance decimal.Decimal) (*domain.Account, error) {
	if err := e.validator.ValidateInitialBalance(initialBalance); err != nil {
		return nil, err
	}

	account := domain.NewAccount(id, name, initialBalance)
	if err := e.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Account created",
		slog.String("account_id", id),
		slog.String("balance", initialBalance.StringFixed(2)))
	return account, nil
}

func (e *TransactionEngine) CreateCustomer(ctx context.Context, name string) (*domain.Customer, error) {
	customer := domain.NewCustomer(name)
	if err := e.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Customer created", slog.String("customer", name))
	return customer, nil
}

// AttachCustomer subscribes a registered customer to an account's
// notifications. Attaching twice is a no-op.
func (e *TransactionEngine) AttachCustomer(ctx context.Context, accountID, customerName string) error {
	account, err := e.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	customer, err := e.customerRepo.GetByName(ctx, customerName)
	if err != nil {
		return err
	}

	account.Attach(customer)
	return nil
}

func (e *TransactionEngine) SubmitDeposit(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Result, error) {
	if err := e.validator.ValidateAmount(amount); err != nil {
		return domain.Result{}, fmt.Errorf("validation failed: %w", err)
	}

	account, err := e.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Result{}, err
	}

	return e.submit(ctx, domain.NewDepositCommand(account, amount)), nil
}

func (e *TransactionEngine) SubmitWithdraw(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Result, error) {
	if err := e.validator.ValidateAmount(amount); err != nil {
		return domain.Result{}, fmt.Errorf("validation failed: %w", err)
	}

	account, err := e.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Result{}, err
	}

	return e.submit(ctx, domain.NewWithdrawCommand(account, amount)), nil
}

// submit executes the command and records it for undo only if it succeeded.
// A failed withdrawal leaves both the account and the history untouched.
func (e *TransactionEngine) submit(ctx context.Context, cmd domain.Command) domain.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := cmd.Execute()
	if result.Success {
		e.history = append(e.history, cmd)
		e.counters["commands_executed"]++
		e.logger.InfoContext(ctx, "Command executed",
			slog.String("command_id", cmd.ID()),
			slog.String("account_id", cmd.AccountID()),
			slog.String("message", result.Message))
	} else {
		e.counters["commands_rejected"]++
		e.logger.InfoContext(ctx, "Command rejected",
			slog.String("command_id", cmd.ID()),
			slog.String("account_id", cmd.AccountID()),
			slog.String("message", result.Message))
	}

	return result
}

// UndoLast reverses the most recently executed command. An empty history is
// reported as a no-op result, not an error.
func (e *TransactionEngine) UndoLast(ctx context.Context) domain.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 {
		return domain.Result{Message: "no commands to undo"}
	}

	cmd := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	result := cmd.Undo()
	e.counters["commands_undone"]++
	e.logger.InfoContext(ctx, "Command undone",
		slog.String("command_id", cmd.ID()),
		slog.String("account_id", cmd.AccountID()),
		slog.String("message", result.Message))

	return result
}

func (e *TransactionEngine) SetInterestStrategy(ctx context.Context, accountID string, kind domain.StrategyKind) error {
	account, err := e.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	account.SetInterestStrategy(kind)
	e.logger.InfoContext(ctx, "Interest strategy assigned",
		slog.String("account_id", accountID),
		slog.String("strategy", string(kind)))
	return nil
}

func (e *TransactionEngine) YearlyInterest(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := e.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.YearlyInterest(), nil
}

func (e *TransactionEngine) ListNotifications(ctx context.Context, customerName string) ([]string, error) {
	customer, err := e.customerRepo.GetByName(ctx, customerName)
	if err != nil {
		return nil, err
	}
	return customer.Notifications(), nil
}

func (e *TransactionEngine) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return e.accountRepo.GetByID(ctx, accountID)
}

func (e *TransactionEngine) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return e.accountRepo.GetAll(ctx)
}

// HistoryLength reports how many commands are currently undoable.
func (e *TransactionEngine) HistoryLength() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

func (e *TransactionEngine) Counters() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make(map[string]int, len(e.counters))
	for k, v := range e.counters {
		result[k] = v
	}
	return result
}
