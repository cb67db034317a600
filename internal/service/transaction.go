package service

import (
	"context"
	"errors"

	"github.com/harkeshbirman/my-book-keeper/internal/domain"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
)

type accountRepository interface {
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)
}

type ledgerRepository interface {
	CreateTransaction(ctx context.Context, lender, borrower string, amount float64) (*domain.UnpaidTransaction, error)
	RepayTransaction(ctx context.Context, id int64) (*domain.PaidTransaction, error)
	UnpaidForUser(ctx context.Context, email string) ([]domain.UnpaidTransaction, error)
	PaidForUser(ctx context.Context, email string) ([]domain.PaidTransaction, error)
}

type TransactionService struct {
	accountRepo accountRepository
	ledgerRepo  ledgerRepository
}

func NewTransactionService(accountRepo accountRepository, ledgerRepo ledgerRepository) *TransactionService {
	return &TransactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Create records a new loan between two registered users and bumps their
// running totals.
func (s *TransactionService) Create(ctx context.Context, lenderEmail, borrowerEmail string, amount float64) (*domain.UnpaidTransaction, error) {
	if amount <= 0 {
		return nil, domain.ErrNonPositiveAmount
	}

	if lenderEmail == borrowerEmail {
		return nil, domain.ErrSameParty
	}

	lender, err := s.accountRepo.UserByEmail(ctx, lenderEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Log.Warn("unknown lender", logger.String("email", lenderEmail))
			return nil, domain.ErrInvalidLender
		}
		return nil, err
	}

	borrower, err := s.accountRepo.UserByEmail(ctx, borrowerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Log.Warn("unknown borrower", logger.String("email", borrowerEmail))
			return nil, domain.ErrInvalidBorrower
		}
		return nil, err
	}

	return s.ledgerRepo.CreateTransaction(ctx, lender.Email, borrower.Email, amount)
}

// Repay settles an unpaid transaction by id. The caller only has to be a
// registered user, not a party to the transaction.
func (s *TransactionService) Repay(ctx context.Context, callerID, transactionID int64) (*domain.PaidTransaction, error) {
	_, err := s.accountRepo.UserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.ledgerRepo.RepayTransaction(ctx, transactionID)
}

func (s *TransactionService) UnpaidFor(ctx context.Context, callerID int64) ([]domain.UnpaidTransaction, error) {
	user, err := s.accountRepo.UserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.ledgerRepo.UnpaidForUser(ctx, user.Email)
}

func (s *TransactionService) PaidFor(ctx context.Context, callerID int64) ([]domain.PaidTransaction, error) {
	user, err := s.accountRepo.UserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.ledgerRepo.PaidForUser(ctx, user.Email)
}
