package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"toni/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testPolicy = RestartPolicy{Delay: 20 * time.Millisecond, MaxDelay: 100 * time.Millisecond}

func TestRestartPolicy(t *testing.T) {
	policy := RestartPolicy{Delay: 200 * time.Millisecond, MaxDelay: time.Second}

	t.Run("should start with the base delay", func(t *testing.T) {
		require.Equal(t, 200*time.Millisecond, policy.next(0, 0))
	})

	t.Run("should double on consecutive crashes up to the cap", func(t *testing.T) {
		req := require.New(t)
		req.Equal(400*time.Millisecond, policy.next(200*time.Millisecond, 10*time.Millisecond))
		req.Equal(800*time.Millisecond, policy.next(400*time.Millisecond, 10*time.Millisecond))
		req.Equal(time.Second, policy.next(800*time.Millisecond, 10*time.Millisecond))
		req.Equal(time.Second, policy.next(time.Second, 10*time.Millisecond))
	})

	t.Run("should reset after a long healthy run", func(t *testing.T) {
		require.Equal(t, 200*time.Millisecond, policy.next(time.Second, 2*time.Second))
	})
}

func TestSupervisor_BacksOffBetweenCrashes(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	var mu sync.Mutex
	var starts []time.Time
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			mu.Lock()
			starts = append(starts, time.Now())
			n := len(starts)
			mu.Unlock()
			if n < 4 {
				return fmt.Errorf("crash %d", n)
			}
			return nil
		}).
		Times(4)

	policy := RestartPolicy{Delay: 20 * time.Millisecond, MaxDelay: time.Second}
	done := make(chan struct{})
	go func() {
		NewSupervisor(slog.Default(), policy).Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		req.Fail("Supervisor should have finished after the fourth run")
	}
	mu.Lock()
	defer mu.Unlock()
	req.Len(starts, 4)
	req.GreaterOrEqual(starts[2].Sub(starts[1]), 40*time.Millisecond)
	req.GreaterOrEqual(starts[3].Sub(starts[2]), 80*time.Millisecond)
}

func TestSupervisor_RestartOnPanic(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	var calls atomic.Int32
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			calls.Add(1)
			panic("boom")
		}).
		AnyTimes()

	sup := NewSupervisor(slog.Default(), testPolicy)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	go sup.Add(workerMock).Run(ctx)

	req.Eventually(func() bool { return calls.Load() >= 2 }, 900*time.Millisecond, 20*time.Millisecond)
}

func TestSupervisor_RestartOnError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	var calls atomic.Int32
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			if calls.Add(1) == 1 {
				return fmt.Errorf("transient")
			}
			return nil
		}).
		Times(2)

	done := make(chan struct{})
	go func() {
		NewSupervisor(slog.Default(), testPolicy).Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
		req.Equal(int32(2), calls.Load())
	case <-time.After(time.Second):
		req.Fail("Supervisor should have restarted the worker once then stopped")
	}
}

func TestSupervisor_StopOnSuccess(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	workerMock.EXPECT().
		Run(gomock.Any()).
		Return(nil).
		Times(1)

	sup := NewSupervisor(slog.Default(), testPolicy)
	done := make(chan struct{})

	go func() {
		sup.Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have stopped after worker success")
	}
}

func TestSupervisor_Stop(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	started := make(chan struct{})
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	sup := NewSupervisor(slog.Default(), testPolicy)
	done := make(chan struct{})
	go func() {
		sup.Add(workerMock).Run(context.Background())
		close(done)
	}()

	<-started
	sup.Stop()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should return once stopped")
	}
}
