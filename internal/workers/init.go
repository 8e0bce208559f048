package workers

import (
	"context"
	"time"

	"motofibra/catalog/internal/metrics"
)

type WorkersContainer struct {
	Monitor *CatalogMonitor
}

// InitWorkers starts the background workers. They stop when ctx is cancelled.
func InitWorkers(ctx context.Context, reports CategorySummarizer, m *metrics.MetricsRegistry, statsInterval time.Duration) *WorkersContainer {
	monitor := NewCatalogMonitor(reports, m)
	go monitor.Start(ctx, statsInterval)

	return &WorkersContainer{
		Monitor: monitor,
	}
}
