package usecase

import (
	"context"
	"sync"
)

// AggregateState is the discriminated outcome of a set of concurrent fetches:
// Pending while any fetch is still running, Failed once the first error is
// observed, Ready when every fetch completed cleanly.
type AggregateState int

const (
	AggregatePending AggregateState = iota
	AggregateReady
	AggregateFailed
)

type AggregateResult struct {
	State AggregateState
	Err   error
}

// Aggregate launches every fetch concurrently and joins them into a single
// result. The done channel closes when all fetches return; until then the
// caller observes Pending. The first error wins; remaining fetches still run
// to completion but their errors are dropped.
type Aggregate struct {
	mu      sync.Mutex
	pending int
	err     error
	done    chan struct{}
}

func NewAggregate(ctx context.Context, fetches ...func(ctx context.Context) error) *Aggregate {
	a := &Aggregate{
		pending: len(fetches),
		done:    make(chan struct{}),
	}
	if len(fetches) == 0 {
		close(a.done)
		return a
	}
	for _, fetch := range fetches {
		go func(fetch func(ctx context.Context) error) {
			err := fetch(ctx)

			a.mu.Lock()
			if err != nil && a.err == nil {
				a.err = err
			}
			a.pending--
			finished := a.pending == 0
			a.mu.Unlock()

			if finished {
				close(a.done)
			}
		}(fetch)
	}
	return a
}

// Result is the point-in-time view of the join.
func (a *Aggregate) Result() AggregateResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending > 0 {
		return AggregateResult{State: AggregatePending}
	}
	if a.err != nil {
		return AggregateResult{State: AggregateFailed, Err: a.err}
	}
	return AggregateResult{State: AggregateReady}
}

// Wait blocks until every fetch has settled or the context is cancelled, and
// returns the final result. Cancellation surfaces as Failed with ctx.Err().
func (a *Aggregate) Wait(ctx context.Context) AggregateResult {
	select {
	case <-a.done:
		return a.Result()
	case <-ctx.Done():
		return AggregateResult{State: AggregateFailed, Err: ctx.Err()}
	}
}
