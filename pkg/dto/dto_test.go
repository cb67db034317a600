package dto

import (
	"strings"
	"testing"
)

func TestSignupIsValid(t *testing.T) {
	valid := Signup{Name: "Alice", Email: "alice@example.com", Phone: "5550100", Password: "secret"}
	if err := valid.IsValid(); err != nil {
		t.Errorf("valid signup rejected: %v", err)
	}

	missing := Signup{Name: " ", Email: "", Phone: "5550100", Password: "secret"}
	err := missing.IsValid()
	if err == nil {
		t.Fatal("signup with blank fields accepted")
	}
	if !strings.Contains(err.Error(), "name is required") || !strings.Contains(err.Error(), "email is required") {
		t.Errorf("error does not name the missing fields: %v", err)
	}
}

func TestNewTransactionIsValid(t *testing.T) {
	valid := NewTransaction{Lender: "alice@example.com", Borrower: "bob@example.com", Amount: 100}
	if err := valid.IsValid(); err != nil {
		t.Errorf("valid transaction rejected: %v", err)
	}

	for _, amount := range []float64{0, -5} {
		txn := NewTransaction{Lender: "alice@example.com", Borrower: "bob@example.com", Amount: amount}
		if err := txn.IsValid(); err == nil {
			t.Errorf("amount %v accepted", amount)
		}
	}

	noParties := NewTransaction{Amount: 100}
	if err := noParties.IsValid(); err == nil {
		t.Error("transaction without parties accepted")
	}
}

func TestRepayIsValid(t *testing.T) {
	if err := (Repay{ID: 17}).IsValid(); err != nil {
		t.Errorf("valid repay rejected: %v", err)
	}
	if err := (Repay{}).IsValid(); err == nil {
		t.Error("repay without id accepted")
	}
}
