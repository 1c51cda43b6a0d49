// Package asyncjob implements the generic single-shot job runner: a Job
// capability run on its own goroutine, reporting progress and an eventual
// Notification, with the last result cached on the handle and no partial
// result surfaced after cancellation.
//
// Grounded on the teacher's background-goroutine-plus-tea.Msg pattern
// (internal/app/worktree_operations.go's async refresh helpers) and on
// the original gitui's asyncgit::AsyncJob trait (asyncgit/src/fetch_job.rs).
package asyncjob

import "sync"

// ProgressPercent is the progress unit a Job may report while running.
type ProgressPercent struct {
	Progress uint32 // 0-100
}

// RunParams is handed to a Job's Run method: a sink for progress updates
// and a way to publish intermediate notifications before the final one.
type RunParams[N any] struct {
	Progress func(ProgressPercent)
	Notify   func(N)
}

// Job is run once on a dedicated goroutine; Run returns the final
// notification (or an error).
type Job[N any] interface {
	Run(params RunParams[N]) (N, error)
}

// Handle owns one single-shot execution of a Job. Dropping a handle (simply
// ceasing to read Done()) cancels interest in the result: the goroutine
// still runs to completion (per spec.md section 5, "no soft-cancel signal
// is propagated"), but CancelAndForget prevents a late result from being
// surfaced.
type Handle[N any] struct {
	mu        sync.Mutex
	pending   bool
	result    N
	err       error
	cancelled bool
	done      chan struct{}
}

// NewHandle starts job on a new goroutine and returns a Handle for tracking
// it. progress and notify, when non-nil, are called directly on the job's
// goroutine; moving their effects to another goroutine is left to the
// caller. Handle only stores state.
func NewHandle[N any](job Job[N], progress func(ProgressPercent), notify func(N)) *Handle[N] {
	h := &Handle[N]{pending: true, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		res, err := job.Run(RunParams[N]{
			Progress: func(p ProgressPercent) {
				if progress != nil {
					progress(p)
				}
			},
			Notify: func(n N) {
				if notify != nil {
					notify(n)
				}
			},
		})
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.cancelled {
			return
		}
		h.pending = false
		h.result = res
		h.err = err
	}()
	return h
}

// Done is closed once the underlying goroutine has returned, regardless of
// cancellation - callers that want to ignore a cancelled job simply never
// read Result after cancelling.
func (h *Handle[N]) Done() <-chan struct{} { return h.done }

// Pending reports whether the job has not yet produced a result.
func (h *Handle[N]) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

// Result returns the last result and whether one is available (false while
// pending or after cancellation).
func (h *Handle[N]) Result() (N, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var zero N
	if h.pending || h.cancelled {
		return zero, false
	}
	return h.result, true
}

// Err returns the error from the last completed run, if any.
func (h *Handle[N]) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// CancelAndForget marks the handle cancelled: any result the goroutine
// produces after this point is discarded rather than surfaced.
func (h *Handle[N]) CancelAndForget() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelled = true
}
