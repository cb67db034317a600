package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/harkeshbirman/my-book-keeper/internal/handler/middleware"
	"github.com/harkeshbirman/my-book-keeper/internal/handler/transaction"
	"github.com/harkeshbirman/my-book-keeper/internal/handler/user"
	"github.com/harkeshbirman/my-book-keeper/internal/postgres"
	"github.com/harkeshbirman/my-book-keeper/internal/service"
)

const welcomeMessage = "Welcome to your own book-keeper"

func (app App) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(app.Config.RequestTimeout))
	r.Use(middleware.WithAuth(app.Config))

	p := postgres.New(app.DB)
	userService := service.NewUserService(p, app.Config)
	userHandler := userhandler.New(userService)

	transactionService := service.NewTransactionService(p, p)
	transactionHandler := transactionhandler.New(transactionService)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(welcomeMessage))
	})

	r.Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)

	r.Post("/newtransaction", transactionHandler.CreateTransaction)
	r.Get("/myunpaidtransactions", transactionHandler.UnpaidTransactions)
	r.Get("/mypaidtransactions", transactionHandler.PaidTransactions)
	r.Put("/repay", transactionHandler.Repay)

	return r
}
