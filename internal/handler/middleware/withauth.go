package middleware

import (
	"net/http"
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"github.com/harkeshbirman/my-book-keeper/internal/config"
	"github.com/harkeshbirman/my-book-keeper/pkg/dto"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
)

// TokenHeader carries the bearer token issued at signup/login.
const TokenHeader = "auth-token"

// UserIDHeader carries the authenticated user id to the handlers. It is
// always overwritten here, so clients cannot spoof it.
const UserIDHeader = "User-ID"

func WithAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(UserIDHeader)

			for _, ignore := range cfg.AuthDisabledURLs {
				if r.URL.Path == ignore {
					next.ServeHTTP(w, r)
					return
				}
			}

			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				logger.Log.Warn("unauthorized request", logger.String("url", r.RequestURI))
				dto.WriteError(w, http.StatusUnauthorized, "please provide authentication token")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil {
				logger.Log.Warn("unauthorized request", logger.String("url", r.RequestURI), logger.Error(err))
				dto.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			id, ok := claims["id"].(float64)
			if !ok {
				logger.Log.Warn("token without user id", logger.String("url", r.RequestURI))
				dto.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			r.Header.Set(UserIDHeader, strconv.FormatInt(int64(id), 10))

			next.ServeHTTP(w, r)
		})
	}
}
