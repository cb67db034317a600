package transactionhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/harkeshbirman/my-book-keeper/internal/domain"
	"github.com/harkeshbirman/my-book-keeper/internal/handler/middleware"
	"github.com/harkeshbirman/my-book-keeper/pkg/dto"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
)

type transactionService interface {
	Create(ctx context.Context, lenderEmail, borrowerEmail string, amount float64) (*domain.UnpaidTransaction, error)
	Repay(ctx context.Context, callerID, transactionID int64) (*domain.PaidTransaction, error)
	UnpaidFor(ctx context.Context, callerID int64) ([]domain.UnpaidTransaction, error)
	PaidFor(ctx context.Context, callerID int64) ([]domain.PaidTransaction, error)
}

type TransactionHandler struct {
	srv transactionService
}

func New(srv transactionService) *TransactionHandler {
	return &TransactionHandler{
		srv: srv,
	}
}

func (h TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a new transaction request")
		dto.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := req.IsValid(); err != nil {
		logger.Log.Warn("invalid transaction fields", logger.Error(err))
		dto.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	txn, err := h.srv.Create(r.Context(), req.Lender, req.Borrower, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLender):
			dto.WriteError(w, http.StatusBadRequest, "enter a valid lender email address")
		case errors.Is(err, domain.ErrInvalidBorrower):
			dto.WriteError(w, http.StatusBadRequest, "enter a valid borrower email address")
		case errors.Is(err, domain.ErrSameParty), errors.Is(err, domain.ErrNonPositiveAmount):
			dto.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Log.Error("error while creating transaction", logger.Int64("user_id", userID), logger.Error(err))
			dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(unpaidToDTO(*txn)); err != nil {
		logger.Log.Error("error while encoding transaction to JSON", logger.Int64("user_id", userID), logger.Error(err))
	}
}

func (h TransactionHandler) UnpaidTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	txns, err := h.srv.UnpaidFor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			dto.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Log.Error("error while fetching unpaid transactions", logger.Int64("user_id", userID), logger.Error(err))
		dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	dtos := make([]dto.UnpaidTransaction, len(txns))
	for i, txn := range txns {
		dtos[i] = unpaidToDTO(txn)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(dtos); err != nil {
		logger.Log.Error("error while encoding unpaid transactions to JSON", logger.Int64("user_id", userID), logger.Error(err))
	}
}

func (h TransactionHandler) PaidTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	txns, err := h.srv.PaidFor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			dto.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Log.Error("error while fetching paid transactions", logger.Int64("user_id", userID), logger.Error(err))
		dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	dtos := make([]dto.PaidTransaction, len(txns))
	for i, txn := range txns {
		dtos[i] = paidToDTO(txn)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(dtos); err != nil {
		logger.Log.Error("error while encoding paid transactions to JSON", logger.Int64("user_id", userID), logger.Error(err))
	}
}

func (h TransactionHandler) Repay(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.Repay
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a repay request")
		dto.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := req.IsValid(); err != nil {
		logger.Log.Warn("invalid repay fields", logger.Error(err))
		dto.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	paid, err := h.srv.Repay(r.Context(), userID, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			dto.WriteError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrTransactionNotFound):
			dto.WriteError(w, http.StatusNotFound, "transaction id not found")
		default:
			logger.Log.Error("error while repaying transaction",
				logger.Int64("user_id", userID), logger.Int64("transaction_id", req.ID), logger.Error(err))
			dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(paidToDTO(*paid)); err != nil {
		logger.Log.Error("error while encoding paid transaction to JSON", logger.Int64("user_id", userID), logger.Error(err))
	}
}

func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userIDHeader := r.Header.Get(middleware.UserIDHeader)
	userID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return 0, false
	}

	return userID, true
}

func unpaidToDTO(txn domain.UnpaidTransaction) dto.UnpaidTransaction {
	return dto.UnpaidTransaction{
		ID:        txn.ID,
		Lender:    txn.Lender,
		Borrower:  txn.Borrower,
		Amount:    txn.Amount,
		Repaid:    txn.Repaid,
		CreatedAt: txn.CreatedAt.Format(time.RFC3339),
	}
}

func paidToDTO(txn domain.PaidTransaction) dto.PaidTransaction {
	return dto.PaidTransaction{
		ID:           txn.ID,
		Lender:       txn.Lender,
		Borrower:     txn.Borrower,
		Repaid:       txn.Repaid,
		RepayingDate: txn.RepayingDate.Format(time.RFC3339),
	}
}
