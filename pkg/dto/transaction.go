package dto

import (
	"errors"
	"fmt"
	"strings"
)

/**
  POST /newtransaction
  {
      "lender": "alice@example.com",
      "borrower": "bob@example.com",
      "amount": 100
  }
*/

type NewTransaction struct {
	Lender   string  `json:"lender"`
	Borrower string  `json:"borrower"`
	Amount   float64 `json:"amount"`
}

func (t NewTransaction) IsValid() error {
	var lenderErr, borrowerErr, amountErr error

	if strings.TrimSpace(t.Lender) == "" {
		lenderErr = fmt.Errorf("lender is required")
	}

	if strings.TrimSpace(t.Borrower) == "" {
		borrowerErr = fmt.Errorf("borrower is required")
	}

	if t.Amount <= 0 {
		amountErr = fmt.Errorf("amount must be a positive number")
	}

	return errors.Join(lenderErr, borrowerErr, amountErr)
}

/**
  {
      "id": 17,
      "lender": "alice@example.com",
      "borrower": "bob@example.com",
      "amount": 100,
      "repaid": false,
      "created_at": "2023-11-02T15:15:45+03:00"
  }
*/

type UnpaidTransaction struct {
	ID        int64   `json:"id"`
	Lender    string  `json:"lender"`
	Borrower  string  `json:"borrower"`
	Amount    float64 `json:"amount"`
	Repaid    bool    `json:"repaid"`
	CreatedAt string  `json:"created_at"`
}

type PaidTransaction struct {
	ID           int64  `json:"id"`
	Lender       string `json:"lender"`
	Borrower     string `json:"borrower"`
	Repaid       bool   `json:"repaid"`
	RepayingDate string `json:"repaying_date"`
}

type Repay struct {
	ID int64 `json:"id"`
}

func (r Repay) IsValid() error {
	if r.ID <= 0 {
		return fmt.Errorf("id is required")
	}

	return nil
}
