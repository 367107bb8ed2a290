package workers

import (
	"context"
	"log/slog"
	"time"
	"toni/observability"
)

type processSampler interface {
	Sample() (observability.ProcessStats, error)
}

// HealthMonitoringWorker samples the server's own RSS and CPU on a ticker so
// /health can answer without touching the OS.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	monitoring     processSampler
	metricInterval time.Duration
}

func NewHealthMonitoringWorker(log *slog.Logger, monitoring processSampler, metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{log: log, monitoring: monitoring, metricInterval: metricInterval}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	w.sample()
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping process sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *HealthMonitoringWorker) sample() {
	stats, err := w.monitoring.Sample()
	if err != nil {
		w.log.Error("Failed to collect self stats", "error", err)
		return
	}
	w.log.Debug("Process stats", "rss_bytes", stats.RSSBytes, "cpu_percent", stats.CPUPercent, "goroutines", stats.Goroutines)
}
