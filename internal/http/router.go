package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/letehaha/budget-tracker-be-sub001/internal/http/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/http/auth"
	"github.com/letehaha/budget-tracker-be-sub001/internal/http/transaction"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Timeout        time.Duration
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func New(
	opts Options,
	accountsV1 *account.Handler,
	transactionsV1 *transaction.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/refunds", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.RefundRoutes(r)
		})
	})

	return router
}
