package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats aggregates the relay metrics exposed on the stats endpoint.
type Stats struct {
	ActiveConnections  int     `json:"active_connections"`
	ConnectionsOpened  uint64  `json:"connections_opened"`
	ConnectionsClosed  uint64  `json:"connections_closed"`
	DeadConnections    uint64  `json:"dead_connections_reaped"`
	MessagesRelayed    uint64  `json:"messages_relayed"`
	TranslationsOK     uint64  `json:"translations_ok"`
	TranslationsFailed uint64  `json:"translations_failed"`
	DeliveredOnline    uint64  `json:"delivered_online"`
	StoredOffline      uint64  `json:"stored_offline"`
	UptimeSeconds      int64   `json:"uptime_seconds"`
	AllocMemMb         uint64  `json:"alloc_mem_mb"`
	NumGC              uint32  `json:"num_gc"`
	RssBytes           uint64  `json:"rss_bytes"`
	CPUPercent         float64 `json:"cpu_percent"`
}

// Monitor collects relay counters plus process-level metrics. Counters are
// atomic so the per-recipient pipelines can bump them without coordination.
type Monitor struct {
	log       *slog.Logger
	startedAt time.Time
	proc      *process.Process

	connectionsOpened  atomic.Uint64
	connectionsClosed  atomic.Uint64
	deadConnections    atomic.Uint64
	messagesRelayed    atomic.Uint64
	translationsOK     atomic.Uint64
	translationsFailed atomic.Uint64
	deliveredOnline    atomic.Uint64
	storedOffline      atomic.Uint64

	activeConnections func() int
}

// NewMonitor builds a monitor. activeConnections reports the registry size;
// it may be nil until the registry exists.
func NewMonitor(log *slog.Logger, activeConnections func() int) *Monitor {
	m := &Monitor{
		log:               log,
		startedAt:         time.Now(),
		activeConnections: activeConnections,
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Self process stats unavailable", "err", err)
	} else {
		m.proc = proc
	}
	return m
}

func (m *Monitor) ConnectionOpened()  { m.connectionsOpened.Add(1) }
func (m *Monitor) ConnectionClosed()  { m.connectionsClosed.Add(1) }
func (m *Monitor) DeadConnection()    { m.deadConnections.Add(1) }
func (m *Monitor) MessageRelayed()    { m.messagesRelayed.Add(1) }
func (m *Monitor) TranslationOK()     { m.translationsOK.Add(1) }
func (m *Monitor) TranslationFailed() { m.translationsFailed.Add(1) }
func (m *Monitor) DeliveredOnline()   { m.deliveredOnline.Add(1) }
func (m *Monitor) StoredOffline()     { m.storedOffline.Add(1) }

// Snapshot assembles the current stats, including memory and CPU usage of
// the server process.
func (m *Monitor) Snapshot() Stats {
	stats := Stats{
		ConnectionsOpened:  m.connectionsOpened.Load(),
		ConnectionsClosed:  m.connectionsClosed.Load(),
		DeadConnections:    m.deadConnections.Load(),
		MessagesRelayed:    m.messagesRelayed.Load(),
		TranslationsOK:     m.translationsOK.Load(),
		TranslationsFailed: m.translationsFailed.Load(),
		DeliveredOnline:    m.deliveredOnline.Load(),
		StoredOffline:      m.storedOffline.Load(),
		UptimeSeconds:      int64(time.Since(m.startedAt).Seconds()),
	}
	if m.activeConnections != nil {
		stats.ActiveConnections = m.activeConnections()
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats.AllocMemMb = mem.Alloc / 1024 / 1024
	stats.NumGC = mem.NumGC

	if m.proc != nil {
		if memInfo, err := m.proc.MemoryInfo(); err == nil {
			stats.RssBytes = memInfo.RSS
		}
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		}
	}
	return stats
}
