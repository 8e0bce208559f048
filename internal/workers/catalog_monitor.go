package workers

import (
	"context"
	"time"

	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/metrics"
	"motofibra/catalog/internal/models/dtos"
)

// CategorySummarizer is satisfied by *services.ReportService.
type CategorySummarizer interface {
	CategorySummary(ctx context.Context, client string) ([]dtos.CategorySummary, error)
}

// CatalogMonitor publishes per-category part counts as gauges.
type CatalogMonitor struct {
	reports CategorySummarizer
	metrics *metrics.MetricsRegistry
}

func NewCatalogMonitor(reports CategorySummarizer, m *metrics.MetricsRegistry) *CatalogMonitor {
	return &CatalogMonitor{reports: reports, metrics: m}
}

// Start refreshes the gauges every interval until ctx is cancelled.
func (m *CatalogMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Catalog monitor starting", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	m.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Catalog monitor shutting down")
			return
		case <-ticker.C:
			m.refresh(ctx)
		}
	}
}

func (m *CatalogMonitor) refresh(ctx context.Context) {
	rows, err := m.reports.CategorySummary(ctx, "")
	if err != nil {
		logging.Warn("Catalog monitor refresh failed", "error", err.Error())
		return
	}

	m.metrics.CatalogParts.Reset()
	m.metrics.CatalogPartsWithDetails.Reset()
	for _, row := range rows {
		m.metrics.CatalogParts.WithLabelValues(row.Category).Set(float64(row.Parts))
		m.metrics.CatalogPartsWithDetails.WithLabelValues(row.Category).Set(float64(row.WithDetails))
	}
	logging.Debug("Catalog gauges refreshed", "categories", len(rows))
}
