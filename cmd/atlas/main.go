package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atlas-biz/atlas/internal/analytics"
	"github.com/atlas-biz/atlas/internal/app"
	"github.com/atlas-biz/atlas/internal/companies"
	"github.com/atlas-biz/atlas/internal/customers"
	"github.com/atlas-biz/atlas/internal/employees"
	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/invoices"
	"github.com/atlas-biz/atlas/internal/observability"
	"github.com/atlas-biz/atlas/internal/orders"
	"github.com/atlas-biz/atlas/internal/payments"
	"github.com/atlas-biz/atlas/internal/platform/cache"
	"github.com/atlas-biz/atlas/internal/platform/db"
	"github.com/atlas-biz/atlas/internal/products"
	"github.com/atlas-biz/atlas/internal/quotes"
	"github.com/atlas-biz/atlas/internal/report"
	"github.com/atlas-biz/atlas/internal/sales"
	"github.com/atlas-biz/atlas/internal/transactions"
	"github.com/atlas-biz/atlas/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, analytics cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	registry := enums.NewRegistry()
	metrics := observability.NewMetrics()

	companiesService := companies.NewService(companies.NewRepository(pool))
	customersService := customers.NewService(customers.NewRepository(pool))
	productsService := products.NewService(products.NewRepository(pool), cfg.AssetBaseURL)
	employeesService := employees.NewService(employees.NewRepository(pool), registry)
	usersService := users.NewService(users.NewRepository(pool), registry)
	ordersService := orders.NewService(orders.NewRepository(pool), registry)
	salesService := sales.NewService(sales.NewRepository(pool), registry)
	transactionsService := transactions.NewService(transactions.NewRepository(pool), registry)
	paymentsService := payments.NewService(payments.NewRepository(pool), registry)
	invoicesService := invoices.NewService(invoices.NewRepository(pool), registry)
	quotesService := quotes.NewService(quotes.NewRepository(pool), registry)

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	analyticsService := analytics.NewService(analytics.NewRepository(pool), analyticsCache, registry)

	reportHandler := report.NewHandler(logger, report.Services{
		Orders:       ordersService,
		Invoices:     invoicesService,
		Quotes:       quotesService,
		Sales:        salesService,
		Transactions: transactionsService,
		Payments:     paymentsService,
		Products:     productsService,
	})

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		Metrics:             metrics,
		CompaniesHandler:    companies.NewHandler(logger, companiesService),
		CustomersHandler:    customers.NewHandler(logger, customersService),
		ProductsHandler:     products.NewHandler(logger, productsService),
		EmployeesHandler:    employees.NewHandler(logger, employeesService),
		UsersHandler:        users.NewHandler(logger, usersService),
		OrdersHandler:       orders.NewHandler(logger, ordersService),
		SalesHandler:        sales.NewHandler(logger, salesService),
		TransactionsHandler: transactions.NewHandler(logger, transactionsService),
		PaymentsHandler:     payments.NewHandler(logger, paymentsService),
		InvoicesHandler:     invoices.NewHandler(logger, invoicesService),
		QuotesHandler:       quotes.NewHandler(logger, quotesService),
		AnalyticsHandler:    analytics.NewHandler(logger, analyticsService),
		ReportHandler:       reportHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
