package domain

import "time"

type User struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	Password      string
	TotalLent     float64
	TotalBorrowed float64
	RegisteredAt  time.Time
}

// UnpaidTransaction is an open loan obligation. Lender and Borrower hold the
// email addresses of the two parties, not user ids.
type UnpaidTransaction struct {
	ID        int64
	Lender    string
	Borrower  string
	Amount    float64
	Repaid    bool
	CreatedAt time.Time
}

// PaidTransaction is the settlement record that replaces a repaid
// UnpaidTransaction. It keeps the unpaid record's id and drops its amount.
type PaidTransaction struct {
	ID           int64
	Lender       string
	Borrower     string
	Repaid       bool
	RepayingDate time.Time
}
