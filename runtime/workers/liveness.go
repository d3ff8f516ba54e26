package workers

import (
	"context"
	"log/slog"
	"time"

	"lingualink/observability"
	"lingualink/runtime"
)

// LivenessWorker probes every registered session on a fixed interval.
// A session that never answered the previous probe is considered dead and
// its connection is terminated, which runs the regular disconnect path.
type LivenessWorker struct {
	log      *slog.Logger
	registry *runtime.Registry
	monitor  *observability.Monitor
	interval time.Duration
}

func NewLivenessWorker(log *slog.Logger, registry *runtime.Registry, monitor *observability.Monitor, interval time.Duration) *LivenessWorker {
	return &LivenessWorker{
		log:      log,
		registry: registry,
		monitor:  monitor,
		interval: interval,
	}
}

func (w *LivenessWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *LivenessWorker) sweep() {
	for _, session := range w.registry.Snapshot() {
		if !session.BeginProbe() {
			w.log.Info("Terminating unresponsive session",
				"session_id", session.ID, "user_id", session.UserID, "last_pong", session.LastPong())
			if w.monitor != nil {
				w.monitor.DeadConnection()
			}
			session.Conn.Terminate()
			continue
		}
		if err := session.Conn.Ping(); err != nil {
			w.log.Warn("Ping failed", "session_id", session.ID, "err", err)
		}
	}
}
