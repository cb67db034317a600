package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidLender        = errors.New("unknown lender email address")
	ErrInvalidBorrower      = errors.New("unknown borrower email address")
	ErrSameParty            = errors.New("lender and borrower must differ")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
)
