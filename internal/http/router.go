package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dualbank/backoffice/internal/http/auth"
	"github.com/dualbank/backoffice/internal/http/client"
	"github.com/dualbank/backoffice/internal/http/cohort"
	"github.com/dualbank/backoffice/internal/http/export"
	"github.com/dualbank/backoffice/internal/http/importcsv"
	"github.com/dualbank/backoffice/internal/http/loan"
	"github.com/dualbank/backoffice/internal/http/transaction"
)

func New(
	authSvc *auth.Service,
	authV1 *auth.Handler,
	clientsV1 *client.Handler,
	transactionsV1 *transaction.Handler,
	loansV1 *loan.Handler,
	cohortV1 *cohort.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authV1.Routes)

		// Everything past login requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Route("/clients", func(r chi.Router) {
				clientsV1.Routes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				transactionsV1.Routes(r)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				loansV1.Routes(r)
			})

			r.Route("/cohort", func(r chi.Router) {
				cohortV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Route("/export", func(r chi.Router) {
				exportV1.Routes(r)
			})
		})
	})

	return router
}
