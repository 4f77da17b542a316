package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

const defaultHeartbeatInterval = 15 * time.Second

type RelayStats interface {
	Stats() (rooms, sessions int)
}

type ProcessObserver interface {
	Process(rss uint64, cpuPercent float64)
}

// HeartbeatWorker periodically samples the process and the registry and
// publishes the figures to the observer and the log.
type HeartbeatWorker struct {
	log      *slog.Logger
	interval time.Duration
	stats    RelayStats
	observer ProcessObserver
}

func NewHeartbeatWorker(log *slog.Logger, interval time.Duration, stats RelayStats, observer ProcessObserver) *HeartbeatWorker {
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}
	return &HeartbeatWorker{log: log, interval: interval, stats: stats, observer: observer}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.beat(p)
		}
	}
}

func (w *HeartbeatWorker) beat(p *process.Process) {
	rooms, sessions := w.stats.Stats()
	rss, cpu, err := selfStats(p)
	if err != nil {
		w.log.Warn("Failed to collect self stats", "error", err)
		w.log.Debug("Heartbeat", "rooms", rooms, "sessions", sessions)
		return
	}
	w.observer.Process(rss, cpu)
	w.log.Debug("Heartbeat", "rooms", rooms, "sessions", sessions, "rss_bytes", rss, "cpu_percent", cpu)
}

func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpu, nil
}
