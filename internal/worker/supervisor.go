package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "go-ticket-sales/pkg/app_errors"
	"go-ticket-sales/pkg/logger"
)

// State is the supervisor lifecycle: Stopped -> Running -> Stopping -> Stopped.
type State int32

const (
	StateStopped State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Supervisor starts and stops the background workers as a unit. Each periodic
// worker ticks once immediately, then on its interval; a failing tick is
// logged and the worker keeps running. One-shot jobs run once at startup.
type Supervisor struct {
	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	workers []Periodic
	jobs    []Job
	// joinTimeout bounds how long Stop waits for workers to finish.
	joinTimeout time.Duration
	log         *zap.Logger
}

func NewSupervisor(workers []Periodic, jobs []Job, joinTimeout time.Duration) *Supervisor {
	return &Supervisor{
		workers:     workers,
		jobs:        jobs,
		joinTimeout: joinTimeout,
		log:         logger.WithComponent("supervisor"),
	}
}

// Start transitions Stopped -> Running and launches every worker and job.
// Returns ErrAlreadyInState when not stopped.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		return apperrors.ErrAlreadyInState
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateRunning

	for _, w := range s.workers {
		s.wg.Add(1)
		go s.runPeriodic(ctx, w)
	}
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, j)
	}

	s.log.Info("supervisor started",
		zap.Int("workers", len(s.workers)),
		zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop transitions Running -> Stopping, signals cancellation and waits for
// every worker to reach a terminal state, bounded by joinTimeout. A worker
// that fails to join within the bound is reported but does not prevent the
// supervisor from reaching Stopped.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return apperrors.ErrAlreadyInState
	}
	s.state = StateStopping
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	var joinErr error
	select {
	case <-done:
	case <-time.After(s.joinTimeout):
		s.log.Error("workers did not stop within bound",
			zap.Duration("timeout", s.joinTimeout))
		joinErr = context.DeadlineExceeded
	}

	s.mu.Lock()
	s.state = StateStopped
	s.cancel = nil
	s.mu.Unlock()

	s.log.Info("supervisor stopped")
	return joinErr
}

func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Supervisor) runPeriodic(ctx context.Context, w Periodic) {
	defer s.wg.Done()

	log := s.log.With(zap.String("worker", w.Name()))

	tick := func() {
		if err := w.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			// A single failing cycle never terminates the worker.
			log.Error("worker tick failed", zap.Error(err))
		}
	}

	tick()

	ticker := time.NewTicker(w.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

func (s *Supervisor) runJob(ctx context.Context, j Job) {
	defer s.wg.Done()

	if err := j.Run(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("job failed", zap.String("job", j.Name()), zap.Error(err))
	}
}
