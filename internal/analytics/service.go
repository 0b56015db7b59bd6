package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/atlas-biz/atlas/internal/enums"
)

type Service struct {
	repo     Repository
	cache    *Cache
	registry *enums.Registry
}

func NewService(repo Repository, cache *Cache, registry *enums.Registry) *Service {
	return &Service{repo: repo, cache: cache, registry: registry}
}

// Dashboard returns the combined report, served from cache when a
// fresh copy exists.
func (s *Service) Dashboard(ctx context.Context) (DashboardReport, error) {
	key, err := s.cache.BuildKey(ctx, "analytics", "dashboard")
	if err != nil {
		return DashboardReport{}, err
	}
	var report DashboardReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx)
	})
	return report, err
}

// Warm recomputes the dashboard and stores it, priming the cache for
// subsequent requests.
func (s *Service) Warm(ctx context.Context) error {
	if err := s.cache.Bump(ctx); err != nil {
		return err
	}
	_, err := s.Dashboard(ctx)
	return err
}

// compute fans out the six source queries concurrently and merges the
// results.
func (s *Service) compute(ctx context.Context) (DashboardReport, error) {
	var report DashboardReport
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.repo.OrderStats(ctx)
		if err != nil {
			return err
		}
		for i := range stats.ByStatus {
			stats.ByStatus[i].Status = s.registry.OrderStatus.LabelOr(stats.ByStatus[i].Status)
		}
		report.Orders = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.repo.QuoteStats(ctx)
		if err != nil {
			return err
		}
		for i := range stats.ByStatus {
			stats.ByStatus[i].Status = s.registry.QuoteStatus.LabelOr(stats.ByStatus[i].Status)
		}
		report.Quotes = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.repo.InvoiceStats(ctx)
		if err != nil {
			return err
		}
		for i := range stats.ByStatus {
			stats.ByStatus[i].Status = s.registry.InvoiceStatus.LabelOr(stats.ByStatus[i].Status)
		}
		report.Invoices = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.repo.ProductStats(ctx)
		if err != nil {
			return err
		}
		report.Products = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.repo.SaleStats(ctx)
		if err != nil {
			return err
		}
		report.Sales = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.repo.CustomerStats(ctx)
		if err != nil {
			return err
		}
		report.Customers = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardReport{}, err
	}

	report.Summary = Summary{
		Revenue: report.Sales.Revenue,
		Profit:  report.Sales.Revenue - report.Sales.DiscountTotal,
	}
	return report, nil
}
