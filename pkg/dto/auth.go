package dto

import (
	"errors"
	"fmt"
	"strings"
)

/**
  POST /signup
  {
      "name": "Alice",
      "email": "alice@example.com",
      "phone": "5550100",
      "password": "secret"
  }
*/

type Signup struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s Signup) IsValid() error {
	var nameErr, emailErr, phoneErr, passwordErr error

	if strings.TrimSpace(s.Name) == "" {
		nameErr = fmt.Errorf("name is required")
	}

	if strings.TrimSpace(s.Email) == "" {
		emailErr = fmt.Errorf("email is required")
	}

	if strings.TrimSpace(s.Phone) == "" {
		phoneErr = fmt.Errorf("phone is required")
	}

	if strings.TrimSpace(s.Password) == "" {
		passwordErr = fmt.Errorf("password is required")
	}

	return errors.Join(nameErr, emailErr, phoneErr, passwordErr)
}

type SignupResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Token string `json:"token"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l Login) IsValid() error {
	var emailErr, passwordErr error

	if strings.TrimSpace(l.Email) == "" {
		emailErr = fmt.Errorf("email is required")
	}

	if strings.TrimSpace(l.Password) == "" {
		passwordErr = fmt.Errorf("password is required")
	}

	return errors.Join(emailErr, passwordErr)
}

type LoginResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}
