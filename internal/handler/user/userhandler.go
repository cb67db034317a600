package userhandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/harkeshbirman/my-book-keeper/internal/domain"
	"github.com/harkeshbirman/my-book-keeper/pkg/dto"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
)

type UserService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type UserHandler struct {
	srv UserService
}

func New(srv UserService) *UserHandler {
	return &UserHandler{
		srv: srv,
	}
}

func (uh *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var signup dto.Signup

	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		logger.Log.Warn("error while decoding a signup request")
		dto.WriteError(w, http.StatusBadRequest, "malformed request body")

		return
	}
	defer closeBody(r.Body)

	if err := signup.IsValid(); err != nil {
		logger.Log.Warn("invalid signup fields", logger.Error(err))
		dto.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := uh.srv.Signup(r.Context(), signup.Name, signup.Email, signup.Phone, signup.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			dto.WriteError(w, http.StatusConflict, "user already exists, please try with a different email")
			return
		}

		logger.Log.Error("error while signing up", logger.String("email", signup.Email), logger.Error(err))
		dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	resp := dto.SignupResponse{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Token: token,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Error("error while encoding signup response", logger.Error(err))
	}
}

func (uh *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var login dto.Login

	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		logger.Log.Warn("error while decoding a login request")
		dto.WriteError(w, http.StatusBadRequest, "malformed request body")

		return
	}
	defer closeBody(r.Body)

	if err := login.IsValid(); err != nil {
		logger.Log.Warn("invalid login fields", logger.Error(err))
		dto.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := uh.srv.Login(r.Context(), login.Email, login.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrIncorrectCredentials) {
			dto.WriteError(w, http.StatusUnauthorized, "incorrect email or password")
			return
		}

		logger.Log.Error("error while logging in", logger.String("email", login.Email), logger.Error(err))
		dto.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	resp := dto.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Error("error while encoding login response", logger.Error(err))
	}
}

func closeBody(body io.ReadCloser) {
	err := body.Close()
	if err != nil {
		logger.Log.Error("error while closing request body", logger.Error(err))
	}
}
