package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mlowther/centsy/internal/http/auth"
	"github.com/mlowther/centsy/internal/http/budget"
	"github.com/mlowther/centsy/internal/http/coach"
	"github.com/mlowther/centsy/internal/http/importcsv"
	"github.com/mlowther/centsy/internal/http/income"
	"github.com/mlowther/centsy/internal/http/insights"
	"github.com/mlowther/centsy/internal/http/school"
	"github.com/mlowther/centsy/internal/http/transaction"
)

func New(
	jwtSecret string,
	transactionsV1 *transaction.Handler,
	insightsV1 *insights.Handler,
	budgetsV1 *budget.Handler,
	incomeV1 *income.Handler,
	schoolV1 *school.Handler,
	coachV1 *coach.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/insights", insightsV1.Routes)

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/income", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			incomeV1.Routes(r)
		})

		r.Route("/school", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			schoolV1.Routes(r)
		})

		r.Route("/coach", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			coachV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
