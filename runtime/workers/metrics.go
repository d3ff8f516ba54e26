package workers

import (
	"context"
	"log/slog"
	"time"

	"lingualink/observability"
)

// MetricsWorker logs a stats snapshot on a fixed interval so operators can
// follow the relay without hitting the stats endpoint.
type MetricsWorker struct {
	log      *slog.Logger
	monitor  *observability.Monitor
	interval time.Duration
}

func NewMetricsWorker(log *slog.Logger, monitor *observability.Monitor, interval time.Duration) *MetricsWorker {
	return &MetricsWorker{log: log, monitor: monitor, interval: interval}
}

func (w *MetricsWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats := w.monitor.Snapshot()
			w.log.Info("Relay stats",
				"connections", stats.ActiveConnections,
				"messages", stats.MessagesRelayed,
				"translations_failed", stats.TranslationsFailed,
				"alloc_mb", stats.AllocMemMb,
				"rss_bytes", stats.RssBytes,
				"cpu_percent", stats.CPUPercent,
			)
		}
	}
}
