package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atlas-biz/atlas/internal/analytics"
	"github.com/atlas-biz/atlas/internal/companies"
	"github.com/atlas-biz/atlas/internal/customers"
	"github.com/atlas-biz/atlas/internal/employees"
	"github.com/atlas-biz/atlas/internal/invoices"
	"github.com/atlas-biz/atlas/internal/observability"
	"github.com/atlas-biz/atlas/internal/orders"
	"github.com/atlas-biz/atlas/internal/payments"
	"github.com/atlas-biz/atlas/internal/products"
	"github.com/atlas-biz/atlas/internal/quotes"
	"github.com/atlas-biz/atlas/internal/report"
	"github.com/atlas-biz/atlas/internal/sales"
	"github.com/atlas-biz/atlas/internal/transactions"
	"github.com/atlas-biz/atlas/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Metrics             *observability.Metrics
	CompaniesHandler    *companies.Handler
	CustomersHandler    *customers.Handler
	ProductsHandler     *products.Handler
	EmployeesHandler    *employees.Handler
	UsersHandler        *users.Handler
	OrdersHandler       *orders.Handler
	SalesHandler        *sales.Handler
	TransactionsHandler *transactions.Handler
	PaymentsHandler     *payments.Handler
	InvoicesHandler     *invoices.Handler
	QuotesHandler       *quotes.Handler
	AnalyticsHandler    *analytics.Handler
	ReportHandler       *report.Handler
}

// NewRouter assembles the HTTP surface.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		params.CompaniesHandler.MountRoutes(api)
		params.CustomersHandler.MountRoutes(api)
		params.ProductsHandler.MountRoutes(api)
		params.EmployeesHandler.MountRoutes(api)
		params.UsersHandler.MountRoutes(api)
		params.OrdersHandler.MountRoutes(api)
		params.SalesHandler.MountRoutes(api)
		params.TransactionsHandler.MountRoutes(api)
		params.PaymentsHandler.MountRoutes(api)
		params.InvoicesHandler.MountRoutes(api)
		params.QuotesHandler.MountRoutes(api)
		params.AnalyticsHandler.MountRoutes(api)
		params.ReportHandler.MountRoutes(api)
	})

	return r
}
