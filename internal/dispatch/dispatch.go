// Package dispatch implements the event dispatcher: a synchronous
// multiplexer over input, async git/app notifications, a ticker, a
// filesystem watcher, and a spinner ticker, routing every event into the
// application and coalescing refresh requests. Grounded on the teacher's
// bubbletea Program loop (internal/app), generalized to the six-receiver
// select described by the spec rather than bubbletea's own runloop, since
// the IPC/async-job notification sources here have no bubbletea analog.
package dispatch

import (
	"time"

	"github.com/fsnotify/fsnotify"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theorlangur/gitui/internal/jobqueue"
	"github.com/theorlangur/gitui/internal/log"
)

// NeedsUpdate is a bitmask of coalesced refresh requests, cleared once
// consumed at the top of a frame.
type NeedsUpdate uint32

const (
	NeedsNone       NeedsUpdate = 0
	NeedsCommits    NeedsUpdate = 1 << iota
	NeedsBranches
	NeedsTags
	NeedsDiff
	NeedsBlame
	NeedsStatus
)

// App is the subset of application behavior the dispatcher drives; the
// real application type implements it alongside jobqueue.Feedback's
// Visit-target interfaces.
type App interface {
	Update()                    // coarse update, throttled to every ~5s
	OnTick()                    // fine update, runs every iteration
	HandleInput(tea.KeyMsg)     // forward a key event to the root component
	HandleAsync(Notification)   // route one async notification by kind
	AdvanceSpinner()            // advance and redraw just the spinner
	ReturnedFromExternalEditor() bool
	HideCursor()
	Redraw()
	IsQuit() bool
}

// Notification is any of the git-worker or app-level async completion
// kinds the dispatcher forwards to App.HandleAsync.
type Notification any

const (
	tickInterval    = 5 * time.Second
	fineTickAccum   = 120 * time.Millisecond
	spinnerInterval = 80 * time.Millisecond
)

// Dispatcher owns the six receivers and the coalesced update bitmask.
type Dispatcher struct {
	app App

	input     <-chan tea.KeyMsg
	gitAsync  <-chan Notification
	appAsync  <-chan Notification
	queue     *jobqueue.Queue
	watcher   *fsnotify.Watcher // nil if no filesystem watcher is configured

	needsUpdate NeedsUpdate
	quit        chan struct{}
}

// New builds a dispatcher over the given event sources. watcher may be
// nil, in which case the ticker fires every tickInterval instead of
// "never".
func New(app App, input <-chan tea.KeyMsg, gitAsync, appAsync <-chan Notification, queue *jobqueue.Queue, watcher *fsnotify.Watcher) *Dispatcher {
	return &Dispatcher{
		app:      app,
		input:    input,
		gitAsync: gitAsync,
		appAsync: appAsync,
		queue:    queue,
		watcher:  watcher,
		quit:     make(chan struct{}),
	}
}

// Mark coalesces a refresh request into the pending bitmask; components
// call this instead of triggering an immediate redraw.
func (d *Dispatcher) Mark(n NeedsUpdate) { d.needsUpdate |= n }

// Run drives the select loop until app.IsQuit() or Stop is called. It is
// meant to run on its own goroutine, forwarding into a bubbletea Program
// via the App implementation's own Send-wrapping methods.
func (d *Dispatcher) Run() {
	var ticker *time.Ticker
	var tickerC <-chan time.Time
	if d.watcher == nil {
		ticker = time.NewTicker(tickInterval)
		tickerC = ticker.C
		defer ticker.Stop()
	}

	spinner := time.NewTicker(spinnerInterval)
	defer spinner.Stop()

	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	if d.watcher != nil {
		fsEvents = d.watcher.Events
		fsErrors = d.watcher.Errors
	}

	fineAccum := time.Duration(0)
	lastFine := time.Now()

	for {
		d.drainFeedback()

		select {
		case <-d.quit:
			d.shutdown()
			return

		case <-spinner.C:
			d.app.AdvanceSpinner()

		case key, ok := <-d.input:
			if !ok {
				continue
			}
			d.app.HandleInput(key)
			if d.app.ReturnedFromExternalEditor() {
				d.app.HideCursor()
			}

		case <-tickerC:
			d.runTick(&fineAccum, &lastFine)

		case _, ok := <-fsEvents:
			if !ok {
				continue
			}
			d.runTick(&fineAccum, &lastFine)

		case err, ok := <-fsErrors:
			if ok {
				log.Errorf("dispatch: filesystem watcher error: %v", err)
			}

		case n, ok := <-d.gitAsync:
			if !ok {
				continue
			}
			d.app.HandleAsync(n)

		case n, ok := <-d.appAsync:
			if !ok {
				continue
			}
			d.app.HandleAsync(n)
		}

		d.app.Redraw()
		if d.app.IsQuit() {
			d.shutdown()
			return
		}
	}
}

// runTick applies app.on_tick() every iteration and app.update() (coarse)
// at most once per tickInterval, driven by an accumulator of finer ticks.
func (d *Dispatcher) runTick(fineAccum *time.Duration, lastFine *time.Time) {
	now := time.Now()
	*fineAccum += now.Sub(*lastFine)
	*lastFine = now
	d.app.OnTick()
	if *fineAccum >= tickInterval {
		d.app.Update()
		*fineAccum = 0
	}
}

// drainFeedback applies every pending job-queue feedback value
// non-blockingly, matching "drain pending job feedback without blocking
// and apply each to App" at the top of every iteration.
func (d *Dispatcher) drainFeedback() {
	if d.queue == nil {
		return
	}
	for {
		select {
		case fb, ok := <-d.queue.Feedback():
			if !ok {
				return
			}
			fb.Visit(d.app)
		case <-d.queue.Wake():
			// No feedback value, just a wake-up; nothing to apply.
		default:
			return
		}
	}
}

// Stop requests the dispatcher shut down on its next loop iteration.
func (d *Dispatcher) Stop() { close(d.quit) }

// shutdown sends the sentinel stop-job to the worker and joins its
// thread, per the spec's shutdown sequence.
func (d *Dispatcher) shutdown() {
	if d.queue != nil {
		d.queue.Shutdown()
	}
}
