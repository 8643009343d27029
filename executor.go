// Copyright 2024 The depscore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolve

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Executor is a bounded pool of worker goroutines that run fallible tasks.
// The first task to return an error cancels every other in-flight and
// future task submitted to this Executor. It is built directly on
// errgroup.Group, whose SetLimit provides the bounded-pool semantics and
// whose Wait propagates the first error.
type Executor struct {
	ctx     context.Context
	group   *errgroup.Group
	limiter interface {
		Wait(context.Context) error
	}
}

// NewExecutor creates an Executor whose tasks observe ctx for
// cancellation, runs at most threads tasks concurrently, and (if limiter
// is non-nil) throttles task starts through it.
func NewExecutor(ctx context.Context, threads int, limiter interface {
	Wait(context.Context) error
}) *Executor {
	g, gctx := errgroup.WithContext(ctx)
	if threads > 0 {
		g.SetLimit(threads)
	}
	return &Executor{ctx: gctx, group: g, limiter: limiter}
}

// Handle is a single-use result of a task submitted to an Executor. Get
// blocks until the task completes or ctx is done, whichever comes first.
// Get does not watch the Executor's own context: when a sibling task's
// error cancels the Executor, Get still waits until this task's function
// returns (or ctx is done).
type Handle[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Get returns the task's result, blocking until it is ready. If ctx is
// done before the task completes, Get returns ctx.Err() without waiting
// further; the task itself is left to finish (or be abandoned) on its own.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.val, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit runs f in the Executor's pool and returns a Handle for its
// result. If the Executor has an active rate limiter, f does not start
// until the limiter admits it.
func Submit[T any](ex *Executor, f func(context.Context) (T, error)) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	ex.group.Go(func() error {
		if ex.limiter != nil {
			if err := ex.limiter.Wait(ex.ctx); err != nil {
				h.err = err
				close(h.done)
				return err
			}
		}
		h.val, h.err = f(ex.ctx)
		close(h.done)
		return h.err
	})
	return h
}

// Wait blocks until every submitted task has completed, and returns the
// first error any of them returned, if any. After Wait returns, the
// Executor must not be used again.
func (ex *Executor) Wait() error {
	return ex.group.Wait()
}

// Context returns the Executor's task context, which is cancelled as soon
// as any submitted task returns an error.
func (ex *Executor) Context() context.Context {
	return ex.ctx
}
