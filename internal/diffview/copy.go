package diffview

import (
	"time"

	"github.com/theorlangur/gitui/internal/gitmodel"
)

// CopyState is the terminal-key-driven copy sub-machine of §3/§4.5: a
// tagged enum with explicit transitions, deliberately not collapsed into
// booleans.
type CopyState int

const (
	CopyNone CopyState = iota
	CopyPending
	CopySize // accumulating digits for an eventual LinesUp/LinesDown
	CopyLinesUp
	CopyLinesDown
	CopyLine
	CopyHunk
)

// copiedRegionTTL is how long a just-copied region renders with its
// distinct highlight style.
const copiedRegionTTL = 90 * time.Millisecond

// CopyResult names what was resolved for a terminal copy transition.
type CopyResult struct {
	Lines []gitmodel.DiffLine
}

// BeginCopy enters the Pending state on the copy key.
func (v *View) BeginCopy() { v.copy = CopyPending }

// CopyDigit accumulates a size digit while composing LinesUp(n)/LinesDown(n).
func (v *View) CopyDigit(d int) {
	if v.copy != CopyPending && v.copy != CopySize {
		return
	}
	v.copy = CopySize
	v.pendingMovement = v.pendingMovement*10 + d
}

// CopyDirection resolves a pending Up/Down keystroke into LinesUp(n) /
// LinesDown(n) and executes the copy immediately (both are terminal).
func (v *View) CopyDirection(up bool, now time.Time) (CopyResult, bool) {
	if v.copy != CopyPending && v.copy != CopySize {
		return CopyResult{}, false
	}
	n := v.pendingMovement
	if n <= 0 {
		n = 1
	}
	v.pendingMovement = 0
	if up {
		v.copy = CopyLinesUp
	} else {
		v.copy = CopyLinesDown
	}
	return v.resolveCopy(now, n), true
}

// CopyCurrentLine executes the Line terminal transition.
func (v *View) CopyCurrentLine(now time.Time) (CopyResult, bool) {
	if v.copy != CopyPending {
		return CopyResult{}, false
	}
	v.copy = CopyLine
	return v.resolveCopy(now, 1), true
}

// CopyCurrentHunk executes the Hunk terminal transition, widening the
// selection to the whole hunk for visual feedback. The widened selection
// stays in place after the copy; it is not restored when the copied-region
// highlight expires.
func (v *View) CopyCurrentHunk(now time.Time) (CopyResult, bool) {
	if v.copy != CopyPending {
		return CopyResult{}, false
	}
	v.copy = CopyHunk
	min, max := v.hunkBounds(v.sel.Top())
	v.sel = gitmodel.NewMultiple(min, max)
	return v.resolveCopy(now, 0), true
}

// resolveCopy materializes the text for the current terminal copy state
// given stride n (only meaningful for LinesUp/LinesDown), records the
// copied_region timestamp, and resets to None.
func (v *View) resolveCopy(now time.Time, n int) CopyResult {
	var res CopyResult
	switch v.copy {
	case CopyLine:
		if len(v.lines) > 0 {
			res.Lines = []gitmodel.DiffLine{v.lines[v.sel.Top()].Line}
		}
	case CopyHunk:
		for i := v.sel.Top(); i <= v.sel.Bottom(); i++ {
			res.Lines = append(res.Lines, v.lines[i].Line)
		}
	case CopyLinesUp:
		top := v.sel.Top()
		start := top - (n - 1)
		if start < 0 {
			start = 0
		}
		for i := start; i <= top; i++ {
			res.Lines = append(res.Lines, v.lines[i].Line)
		}
	case CopyLinesDown:
		top := v.sel.Top()
		end := top + (n - 1)
		if max := v.maxLine(); end > max {
			end = max
		}
		for i := top; i <= end; i++ {
			res.Lines = append(res.Lines, v.lines[i].Line)
		}
	}
	v.copyStart = now
	v.copy = CopyNone
	return res
}

// IsCopiedRegionActive reports whether the most recent copy's highlight
// should still render, polled on each UI tick.
func (v *View) IsCopiedRegionActive(now time.Time) bool {
	return !v.copyStart.IsZero() && now.Sub(v.copyStart) < copiedRegionTTL
}
