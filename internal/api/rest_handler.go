package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/engine"
	"bank_ledger/internal/repository"
	"bank_ledger/pkg/crypto"
	"bank_ledger/pkg/metrics"
	"bank_ledger/pkg/validator"
)

// APIHandler is the thin HTTP adapter over the transaction engine. It only
// parses requests, calls the engine and renders results; no ledger rules
// live here.
type APIHandler struct {
	engine         *engine.TransactionEngine
	metrics        *metrics.Collector
	signer         *crypto.Signer
	logger         *slog.Logger
	requestTimeout time.Duration
}

func NewAPIHandler(
	engine *engine.TransactionEngine,
	metrics *metrics.Collector,
	signer *crypto.Signer,
	logger *slog.Logger,
) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		engine:         engine,
		metrics:        metrics,
		signer:         signer,
		logger:         logger,
		requestTimeout: 30 * time.Second,
	}
}

func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /accounts", h.CreateAccountHandler)
	mux.HandleFunc("GET /accounts", h.ListAccountsHandler)
	mux.HandleFunc("GET /accounts/{id}", h.GetAccountHandler)
	mux.HandleFunc("GET /accounts/{id}/interest", h.GetInterestHandler)
	mux.HandleFunc("PUT /accounts/{id}/strategy", h.SetStrategyHandler)
	mux.HandleFunc("POST /accounts/{id}/observers", h.AttachObserverHandler)
	mux.HandleFunc("POST /customers", h.CreateCustomerHandler)
	mux.HandleFunc("GET /notifications", h.ListNotificationsHandler)
	mux.HandleFunc("POST /transactions", h.CreateTransactionHandler)
	mux.HandleFunc("POST /undo", h.UndoHandler)
	mux.HandleFunc("GET /health", h.HealthCheckHandler)
}

type CreateAccountRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}

type CreateCustomerRequest struct {
	Name string `json:"name"`
}

type AttachObserverRequest struct {
	Customer string `json:"customer"`
}

type SetStrategyRequest struct {
	Strategy string `json:"strategy"`
}

type TransactionRequest struct {
	AccountID string `json:"account_id"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Signature string `json:"signature,omitempty"`
}

type TransactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Balance string `json:"balance,omitempty"`
}

type AccountResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Balance        string   `json:"balance"`
	Strategy       string   `json:"strategy,omitempty"`
	YearlyInterest string   `json:"yearly_interest"`
	History        []string `json:"history,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *APIHandler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	if req.ID == "" || req.Name == "" {
		h.sendError(w, "Account id and name are required", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	balance, err := parseAmount(req.InitialBalance)
	if err != nil {
		h.sendError(w, "Invalid initial balance", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	account, err := h.engine.CreateAccount(ctx, req.ID, req.Name, balance)
	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	h.metrics.UpdateAccountBalance(account.ID(), account.Balance().InexactFloat64())
	h.sendJSON(w, h.toAccountResponse(account), http.StatusCreated)
}

func (h *APIHandler) CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	if req.Name == "" {
		h.sendError(w, "Customer name is required", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	customer, err := h.engine.CreateCustomer(ctx, req.Name)
	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	h.sendJSON(w, map[string]string{"name": customer.Name()}, http.StatusCreated)
}

func (h *APIHandler) AttachObserverHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req AttachObserverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if err := h.engine.AttachCustomer(ctx, r.PathValue("id"), req.Customer); err != nil {
		h.sendEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if req.Signature != "" {
		if valid, err := h.signer.VerifyRequest(req.AccountID, req.Amount, req.Timestamp, req.Signature); !valid || err != nil {
			h.sendError(w, "Invalid signature", http.StatusUnauthorized, "INVALID_SIGNATURE")
			return
		}
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.sendError(w, "Invalid amount", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	var result domain.Result
	switch req.Type {
	case "deposit":
		result, err = h.engine.SubmitDeposit(ctx, req.AccountID, amount)
	case "withdraw":
		result, err = h.engine.SubmitWithdraw(ctx, req.AccountID, amount)
	default:
		h.sendError(w, fmt.Sprintf("Unknown transaction type: %s", req.Type), http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	duration := time.Since(startTime)

	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	switch req.Type {
	case "deposit":
		h.metrics.RecordDeposit(duration)
	case "withdraw":
		h.metrics.RecordWithdrawal(duration, result.Success)
	}

	account, getErr := h.engine.GetAccount(ctx, req.AccountID)
	response := TransactionResponse{Success: result.Success, Message: result.Message}
	if getErr == nil {
		balance := account.Balance()
		response.Balance = balance.StringFixed(2)
		h.metrics.UpdateAccountBalance(account.ID(), balance.InexactFloat64())
	}

	status := http.StatusOK
	if result.Success {
		status = http.StatusCreated
	}
	h.sendJSON(w, response, status)
}

func (h *APIHandler) UndoHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result := h.engine.UndoLast(ctx)
	if result.Success {
		h.metrics.RecordUndo()
	}

	h.sendJSON(w, TransactionResponse{Success: result.Success, Message: result.Message}, http.StatusOK)
}

func (h *APIHandler) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	accounts, err := h.engine.ListAccounts(ctx)
	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, h.toAccountResponse(account))
	}
	h.sendJSON(w, response, http.StatusOK)
}

func (h *APIHandler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	account, err := h.engine.GetAccount(ctx, r.PathValue("id"))
	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	h.sendJSON(w, h.toAccountResponse(account), http.StatusOK)
}

func (h *APIHandler) GetInterestHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	interest, err := h.engine.YearlyInterest(ctx, r.PathValue("id"))
	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	h.sendJSON(w, map[string]string{"yearly_interest": interest.StringFixed(2)}, http.StatusOK)
}

func (h *APIHandler) SetStrategyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req SetStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	kind, err := domain.ParseStrategyKind(req.Strategy)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	if err := h.engine.SetInterestStrategy(ctx, r.PathValue("id"), kind); err != nil {
		h.sendEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	customerName := r.URL.Query().Get("customer")
	if customerName == "" {
		h.sendError(w, "Customer name is required", http.StatusBadRequest, "MISSING_CUSTOMER")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	notifications, err := h.engine.ListNotifications(ctx, customerName)
	if err != nil {
		h.sendEngineError(w, err)
		return
	}

	h.sendJSON(w, map[string][]string{"notifications": notifications}, http.StatusOK)
}

func (h *APIHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}
	h.sendJSON(w, response, http.StatusOK)
}

func (h *APIHandler) toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID(),
		Name:           account.Name(),
		Balance:        account.Balance().StringFixed(2),
		Strategy:       string(account.InterestStrategy()),
		YearlyInterest: account.YearlyInterest().StringFixed(2),
		History:        account.History(),
	}
}

func (h *APIHandler) sendEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.sendError(w, err.Error(), http.StatusNotFound, "NOT_FOUND")
	case errors.Is(err, repository.ErrDuplicate):
		h.sendError(w, err.Error(), http.StatusConflict, "DUPLICATE")
	case errors.Is(err, validator.ErrInvalidAmount),
		errors.Is(err, validator.ErrNegativeBalance),
		errors.Is(err, domain.ErrUnknownStrategy):
		h.sendError(w, err.Error(), http.StatusBadRequest, "VALIDATION_ERROR")
	default:
		h.logger.Error("Request failed", slog.String("error", err.Error()))
		h.sendError(w, "Internal server error", http.StatusInternalServerError, "SERVER_ERROR")
	}
}

func (h *APIHandler) sendJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *APIHandler) sendError(w http.ResponseWriter, message string, status int, code string) {
	h.sendJSON(w, ErrorResponse{Error: message, Code: code}, status)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}
