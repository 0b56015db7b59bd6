package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/atlas-biz/atlas/internal/analytics"
	jobmetrics "github.com/atlas-biz/atlas/internal/jobs"
)

// AnalyticsWarmupJob recomputes the dashboard report so the first
// request after a data change is served from cache.
type AnalyticsWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

func NewAnalyticsWarmupJob(analyticsSvc *analytics.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{Analytics: analyticsSvc, Logger: logger, Metrics: metrics}
}

// Handle processes TaskAnalyticsWarmup tasks.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	tracker := j.Metrics.Track("analytics_warmup")
	err := j.Analytics.Warm(ctx)
	if err != nil {
		j.Logger.Error("analytics warmup failed", slog.Any("error", err))
	} else {
		j.Logger.Info("analytics warmup completed")
	}
	return tracker.End(err)
}
