// Package worker holds the background units that run alongside the sales
// path: periodic workers (reconciliation, low-stock monitoring, reporting,
// backup) and one-shot jobs (statistics, maintenance), all supervised by a
// single lifecycle controller.
package worker

import (
	"context"
	"time"
)

// Periodic is a cancellable worker that ticks on a fixed interval. A failing
// tick is logged by the supervisor and never terminates the worker; the
// cancellation signal is re-checked every interval so shutdown latency is
// bounded by the worker's own period.
type Periodic interface {
	Name() string
	Interval() time.Duration
	Tick(ctx context.Context) error
}

// Job is an independent one-shot unit of work. Jobs run once when the
// supervisor starts and can also be triggered on demand.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}
