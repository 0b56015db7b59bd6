package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsWarmup recomputes and caches the analytics dashboard.
	TaskAnalyticsWarmup = "analytics:warmup"
	// TaskLowStockScan reports products whose stock fell below the
	// configured threshold.
	TaskLowStockScan = "inventory:low_stock_scan"
)

// NewAnalyticsWarmupTask constructs the warmup task.
func NewAnalyticsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskAnalyticsWarmup, nil)
}

// NewLowStockScanTask constructs the low-stock scan task.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskLowStockScan, nil)
}
