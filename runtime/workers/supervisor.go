package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"toni/contract"
	"toni/errors"
	"toni/observability"
)

// RestartPolicy spaces out restarts of a crashing worker. The delay doubles
// after each consecutive crash up to MaxDelay. A run that lasted at least
// MaxDelay counts as healthy and resets it.
type RestartPolicy struct {
	Delay    time.Duration
	MaxDelay time.Duration
}

func (p RestartPolicy) next(previous, ranFor time.Duration) time.Duration {
	if previous == 0 || ranFor >= p.MaxDelay {
		return p.Delay
	}
	return min(2*previous, p.MaxDelay)
}

// Supervisor runs each worker in its own goroutine, restarts it after a panic
// or an error, and waits for all of them once its context is canceled.
type Supervisor struct {
	Cancel  context.CancelFunc
	wg      *sync.WaitGroup
	log     *slog.Logger
	policy  RestartPolicy
	workers []contract.Worker
}

func NewSupervisor(log *slog.Logger, policy RestartPolicy) *Supervisor {
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, policy: policy}
}

// Run blocks until every worker has returned. Canceling the parent context or
// calling Stop ends the workers.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	defer s.Cancel()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs one worker under supervision. A crashing worker never takes the
// supervisor or its siblings down with it.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		var delay time.Duration
		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			startedAt := time.Now()
			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						s.log.Error("Worker panicked", "name", workerName, "panic", r)
						err = errors.ErrWorkerPanic
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			delay = s.policy.next(delay, time.Since(startedAt))
			observability.WorkerRestarts.WithLabelValues(workerName).Inc()
			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err, "delay", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}()
}

func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}
