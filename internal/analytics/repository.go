package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries feeding the dashboard. All
// queries are read-only; each targets a disjoint result set so the
// service runs them concurrently.
type Repository interface {
	OrderStats(ctx context.Context) (OrderStats, error)
	QuoteStats(ctx context.Context) (QuoteStats, error)
	InvoiceStats(ctx context.Context) (InvoiceStats, error)
	ProductStats(ctx context.Context) (ProductStats, error)
	SaleStats(ctx context.Context) (SaleStats, error)
	CustomerStats(ctx context.Context) (CustomerStats, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) OrderStats(ctx context.Context) (OrderStats, error) {
	var stats OrderStats
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(quantity * price * (1 - discount / 100)), 0)
		FROM orders
		GROUP BY status
		ORDER BY status`)
	if err != nil {
		return OrderStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var b StatusBreakdown
		if err := rows.Scan(&b.Status, &b.Count, &b.Value); err != nil {
			return OrderStats{}, err
		}
		stats.ByStatus = append(stats.ByStatus, b)
		stats.Count += b.Count
		stats.TotalValue += b.Value
	}
	return stats, rows.Err()
}

func (r *repository) QuoteStats(ctx context.Context) (QuoteStats, error) {
	var stats QuoteStats
	rows, err := r.pool.Query(ctx, `
		SELECT q.status, COUNT(DISTINCT q.id), COALESCE(SUM(i.quantity * i.price), 0)
		FROM quotes q
		LEFT JOIN quote_items i ON i.quote_id = q.id
		GROUP BY q.status
		ORDER BY q.status`)
	if err != nil {
		return QuoteStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var b StatusBreakdown
		if err := rows.Scan(&b.Status, &b.Count, &b.Value); err != nil {
			return QuoteStats{}, err
		}
		stats.ByStatus = append(stats.ByStatus, b)
		stats.Count += b.Count
		stats.TotalValue += b.Value
	}
	return stats, rows.Err()
}

func (r *repository) InvoiceStats(ctx context.Context) (InvoiceStats, error) {
	var stats InvoiceStats
	rows, err := r.pool.Query(ctx, `
		SELECT v.status, COUNT(DISTINCT v.id), COALESCE(SUM(i.quantity * i.price), 0)
		FROM invoices v
		LEFT JOIN invoice_items i ON i.invoice_id = v.id
		GROUP BY v.status
		ORDER BY v.status`)
	if err != nil {
		return InvoiceStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var b StatusBreakdown
		if err := rows.Scan(&b.Status, &b.Count, &b.Value); err != nil {
			return InvoiceStats{}, err
		}
		stats.ByStatus = append(stats.ByStatus, b)
		stats.Count += b.Count
		stats.TotalValue += b.Value
	}
	if err := rows.Err(); err != nil {
		return InvoiceStats{}, err
	}

	err = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(paid), 0) FROM invoices`).Scan(&stats.TotalPaid)
	return stats, err
}

func (r *repository) ProductStats(ctx context.Context) (ProductStats, error) {
	var stats ProductStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0)
		FROM products`).Scan(&stats.Count, &stats.StockUnits, &stats.StockValue)
	return stats, err
}

func (r *repository) SaleStats(ctx context.Context) (SaleStats, error) {
	var stats SaleStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COALESCE(SUM(quantity * unit_price - amount), 0)
		FROM sales`).Scan(&stats.Count, &stats.Revenue, &stats.DiscountTotal)
	return stats, err
}

func (r *repository) CustomerStats(ctx context.Context) (CustomerStats, error) {
	var stats CustomerStats
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&stats.Count)
	return stats, err
}
