package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/atlas-biz/atlas/internal/jobs"
	"github.com/atlas-biz/atlas/internal/products"
)

// LowStockScanJob reports products whose stock fell below the
// configured threshold so they can be reordered.
type LowStockScanJob struct {
	Products  products.Repository
	Threshold int
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

func NewLowStockScanJob(repo products.Repository, threshold int, logger *slog.Logger, metrics *jobmetrics.Metrics) *LowStockScanJob {
	return &LowStockScanJob{Products: repo, Threshold: threshold, Logger: logger, Metrics: metrics}
}

// Handle processes TaskLowStockScan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	tracker := j.Metrics.Track("low_stock_scan")
	low, err := j.Products.ListBelowQuantity(ctx, j.Threshold)
	if err != nil {
		j.Logger.Error("low stock scan failed", slog.Any("error", err))
		return tracker.End(err)
	}
	for _, p := range low {
		j.Logger.Warn("product below stock threshold",
			slog.String("sku", p.SKU),
			slog.String("name", p.Name),
			slog.Int("quantity", p.Quantity),
			slog.Int("threshold", j.Threshold),
		)
	}
	j.Logger.Info("low stock scan completed", slog.Int("flagged", len(low)))
	return tracker.End(nil)
}
