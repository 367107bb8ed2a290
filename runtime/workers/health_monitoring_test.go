package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
	"toni/observability"

	"github.com/stretchr/testify/require"
)

type countingSampler struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingSampler) Sample() (observability.ProcessStats, error) {
	c.calls.Add(1)
	if c.fail {
		return observability.ProcessStats{}, fmt.Errorf("no such process")
	}
	return observability.ProcessStats{RSSBytes: 1024}, nil
}

func TestHealthMonitoringWorker_Run(t *testing.T) {
	t.Run("should sample immediately then on every tick", func(t *testing.T) {
		req := require.New(t)
		sampler := &countingSampler{}
		w := NewHealthMonitoringWorker(slog.Default(), sampler, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- w.Run(ctx) }()

		req.Eventually(func() bool { return sampler.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		req.NoError(<-done)
	})

	t.Run("should keep running when sampling fails", func(t *testing.T) {
		req := require.New(t)
		sampler := &countingSampler{fail: true}
		w := NewHealthMonitoringWorker(slog.Default(), sampler, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- w.Run(ctx) }()

		req.Eventually(func() bool { return sampler.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		req.NoError(<-done)
	})
}
