package observability

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is the self-sample reported by /health.
type ProcessStats struct {
	RSSBytes   uint64    `json:"rss_bytes"`
	CPUPercent float64   `json:"cpu_percent"`
	Goroutines int       `json:"goroutines"`
	SampledAt  time.Time `json:"sampled_at"`
}

// MonitoringManager keeps the latest process sample and the server start time.
type MonitoringManager struct {
	mu        sync.RWMutex
	startedAt time.Time
	proc      *process.Process
	latest    ProcessStats
}

func NewMonitoringManager() (*MonitoringManager, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &MonitoringManager{startedAt: time.Now(), proc: p}, nil
}

// Sample reads RSS and CPU of the current process and publishes them.
func (mm *MonitoringManager) Sample() (ProcessStats, error) {
	memInfo, err := mm.proc.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpu, err := mm.proc.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}

	stats := ProcessStats{
		RSSBytes:   memInfo.RSS,
		CPUPercent: cpu,
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now().UTC(),
	}
	ProcessRSS.Set(float64(stats.RSSBytes))
	ProcessCPU.Set(stats.CPUPercent)

	mm.mu.Lock()
	mm.latest = stats
	mm.mu.Unlock()
	return stats, nil
}

func (mm *MonitoringManager) Latest() ProcessStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latest
}

func (mm *MonitoringManager) Uptime() time.Duration {
	return time.Since(mm.startedAt)
}
