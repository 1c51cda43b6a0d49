package dispatch

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNeedsUpdateCoalesces(t *testing.T) {
	d := &Dispatcher{}
	d.Mark(NeedsCommits)
	d.Mark(NeedsTags)
	assert.NotZero(t, d.needsUpdate&NeedsCommits)
	assert.NotZero(t, d.needsUpdate&NeedsTags)
	assert.Zero(t, d.needsUpdate&NeedsBranches)
}

func TestRunTickAppliesCoarseUpdateOnlyAfterInterval(t *testing.T) {
	app := &fakeApp{}
	d := &Dispatcher{app: app}
	accum := time.Duration(0)
	last := time.Now()
	d.runTick(&accum, &last)
	assert.Equal(t, 1, app.onTicks)
	assert.Equal(t, 0, app.updates, "a single fine tick should not yet cross the coarse interval")
}

func TestRunTickFiresCoarseUpdateOnceAccumulated(t *testing.T) {
	app := &fakeApp{}
	d := &Dispatcher{app: app}
	accum := tickInterval
	last := time.Now()
	d.runTick(&accum, &last)
	assert.Equal(t, 1, app.updates)
	assert.Equal(t, time.Duration(0), accum)
}

type fakeApp struct {
	onTicks int
	updates int
}

func (f *fakeApp) Update()                          { f.updates++ }
func (f *fakeApp) OnTick()                          { f.onTicks++ }
func (f *fakeApp) HandleInput(tea.KeyMsg)           {}
func (f *fakeApp) HandleAsync(Notification)         {}
func (f *fakeApp) AdvanceSpinner()                  {}
func (f *fakeApp) ReturnedFromExternalEditor() bool { return false }
func (f *fakeApp) HideCursor()                      {}
func (f *fakeApp) Redraw()                          {}
func (f *fakeApp) IsQuit() bool                     { return false }
