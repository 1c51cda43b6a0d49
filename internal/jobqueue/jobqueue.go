// Package jobqueue implements the dynamic job queue: a multi-producer
// channel of boxed DynJob values drained in FIFO order by one dedicated
// background worker, which forwards produced Feedback on a second channel
// and wakes the UI after every job. Grounded on the original gitui's
// AsyncJobList (src/async_jobs.rs) and on the teacher's single-worker
// refresh goroutine pattern (internal/app/worktree_tasks.go).
package jobqueue

// DynJob is a unit of sequential, user-triggered work (e.g. an external
// command). Run executes the job to completion and may push zero or more
// Feedback values via feedback before returning its own terminal Feedback
// (or nil). ShouldStop reports whether the worker must exit after this job.
type DynJob interface {
	Run(feedback chan<- Feedback) Feedback
	ShouldStop() bool
}

// Feedback is produced by a DynJob; Visit applies its side effect to app on
// the main (UI) thread - this is the only channel through which a worker
// goroutine is allowed to influence UI state.
type Feedback interface {
	Visit(app any)
}

// stopJob is the sentinel DynJob that terminates the worker loop.
type stopJob struct{}

func (stopJob) Run(chan<- Feedback) Feedback { return nil }
func (stopJob) ShouldStop() bool             { return true }

// StopJob returns a DynJob that, once delivered, terminates the queue's
// worker goroutine (used by the event dispatcher's shutdown handling).
func StopJob() DynJob { return stopJob{} }

// Queue is a single-worker dynamic job queue with a feedback channel back
// to the main thread, and a wake channel that receives one value after
// every job so the event dispatcher knows to drain feedback.
type Queue struct {
	jobs     chan DynJob
	feedback chan Feedback
	wake     chan struct{}
	done     chan struct{}
}

// New starts the worker goroutine and returns the Queue handle. jobBuffer
// sizes the job channel (0 is a valid, fully-synchronous size).
func New(jobBuffer int) *Queue {
	q := &Queue{
		jobs:     make(chan DynJob, jobBuffer),
		feedback: make(chan Feedback, 64),
		wake:     make(chan struct{}, 64),
		done:     make(chan struct{}),
	}
	go q.runLoop()
	return q
}

// Submit enqueues a job for the worker; the caller never blocks beyond the
// channel buffer (FIFO order is the channel's own ordering guarantee).
func (q *Queue) Submit(job DynJob) {
	q.jobs <- job
}

// Feedback returns the channel the event dispatcher drains non-blockingly
// at the top of each UI tick.
func (q *Queue) Feedback() <-chan Feedback { return q.feedback }

// Wake returns the channel that receives one value after each job
// completes, used to trigger a redraw even when no feedback was produced.
func (q *Queue) Wake() <-chan struct{} { return q.wake }

// Done is closed once the worker goroutine has exited (after a StopJob).
func (q *Queue) Done() <-chan struct{} { return q.done }

// Shutdown enqueues the sentinel stop job and blocks until the worker has
// exited, mirroring the event dispatcher's "send sentinel, join thread"
// shutdown step.
func (q *Queue) Shutdown() {
	q.Submit(StopJob())
	<-q.done
}

func (q *Queue) runLoop() {
	defer close(q.done)
	for job := range q.jobs {
		fb := job.Run(q.feedback)
		if fb != nil {
			if !trySend(q.feedback, fb) {
				return
			}
		}
		if !trySend(q.wake, struct{}{}) {
			return
		}
		if job.ShouldStop() {
			return
		}
	}
}

// trySend sends v on ch, blocking while ch is full. It reports false only
// when ch is closed (the send panics and the panic is recovered); the
// worker then exits cleanly per spec.md section 4.1.
func trySend[T any](ch chan T, v T) bool {
	defer func() { recover() }() //nolint:errcheck // closed-channel send guard
	select {
	case ch <- v:
		return true
	default:
		// Channel full: block, since these are buffered-but-bounded queues
		// and the feedback consumer drains promptly every UI tick.
		ch <- v
		return true
	}
}
