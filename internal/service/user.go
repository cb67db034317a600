package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/harkeshbirman/my-book-keeper/internal/config"
	"github.com/harkeshbirman/my-book-keeper/internal/domain"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, name, email, phone, hashedPassword string) (int64, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type UserService struct {
	config *config.Config
	repo   UserRepository
}

func NewUserService(repo UserRepository, config *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		config: config,
	}
}

func (s *UserService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		logger.Log.Warn("error while hashing password")
		return nil, "", fmt.Errorf("error while hashing password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, name, email, phone, string(hashedPassword))
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:    userID,
		Name:  name,
		Email: email,
		Phone: phone,
	}

	token, err := generateJWTToken(userID, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Log.Warn("login for unknown email", logger.String("email", email))
		}
		return nil, "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		logger.Log.Warn("incorrect password", logger.String("email", email))
		return nil, "", domain.ErrIncorrectCredentials
	}

	token, err := generateJWTToken(user.ID, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func generateJWTToken(userID int64, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error while signing token: %w", err)
	}

	return signedToken, nil
}
