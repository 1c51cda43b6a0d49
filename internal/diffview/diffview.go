// Package diffview implements the diff pane's state machine: flattened
// line model, selection, numeric-prefix movement, the copy sub-machine,
// incremental search, and stage/unstage/reset wiring to internal/gitx.
// Grounded on the original gitui's tui/src/components/diff.rs.
package diffview

import (
	"time"

	"github.com/theorlangur/gitui/internal/gitmodel"
	"github.com/theorlangur/gitui/internal/gitx"
)

// Line is one flattened, renderable row: the hunk it belongs to (by
// index into the owning FileDiff's Hunks) and the line itself.
type Line struct {
	HunkIndex int
	Line      gitmodel.DiffLine
}

// View holds one file diff plus the cursor/selection/copy/search state
// layered on top of it.
type View struct {
	diff  gitmodel.FileDiff
	lines []Line

	sel gitmodel.Selection

	pendingMovement int // accumulated numeric-prefix digits

	copy      CopyState
	copyStart time.Time // when the current copied_region was set

	search       SearchState
	preSearchSel gitmodel.Selection
}

// New builds a View over diff, flattening hunks into a single line list.
func New(diff gitmodel.FileDiff) *View {
	v := &View{diff: diff, sel: gitmodel.NewSingle(0)}
	for hi, h := range diff.Hunks {
		for _, l := range h.Lines {
			v.lines = append(v.lines, Line{HunkIndex: hi, Line: l})
		}
	}
	return v
}

// Lines returns the flattened render rows.
func (v *View) Lines() []Line { return v.lines }

// Selection returns the current selection.
func (v *View) Selection() gitmodel.Selection { return v.sel }

// maxLine is the last valid line index.
func (v *View) maxLine() int {
	if len(v.lines) == 0 {
		return 0
	}
	return len(v.lines) - 1
}

// PushDigit accumulates one numeric-prefix digit (0-9).
func (v *View) PushDigit(d int) {
	v.pendingMovement = v.pendingMovement*10 + d
}

// ClearPendingMovement drops the accumulated numeric prefix; called on any
// non-digit, non-direction key.
func (v *View) ClearPendingMovement() { v.pendingMovement = 0 }

// takeStride consumes the pending numeric prefix as a movement stride,
// defaulting to 1 and resetting the accumulator.
func (v *View) takeStride() int {
	n := v.pendingMovement
	v.pendingMovement = 0
	if n <= 0 {
		return 1
	}
	return n
}

// MoveSingle moves a Single selection by the pending stride in direction,
// clamped to [0, maxLine]. Replaces any existing Multiple selection with
// a new Single.
func (v *View) MoveSingle(dir gitmodel.Direction) {
	stride := v.takeStride()
	cur := v.sel.Bottom()
	if v.sel.Start() == v.sel.End() {
		cur = v.sel.Start()
	}
	var next int
	if dir == gitmodel.Up {
		next = cur - stride
	} else {
		next = cur + stride
	}
	if next < 0 {
		next = 0
	}
	if max := v.maxLine(); next > max {
		next = max
	}
	v.sel = gitmodel.NewSingle(next)
}

// ExtendSelection extends a Multiple selection from its fixed anchor by
// the pending stride in direction.
func (v *View) ExtendSelection(dir gitmodel.Direction) {
	stride := v.takeStride()
	s := v.sel
	if !s.IsMultiple() {
		s = gitmodel.NewMultiple(s.Start(), s.End())
	}
	for i := 0; i < stride; i++ {
		s = s.Modify(dir, v.maxLine())
	}
	v.sel = s
}

// hunkBounds returns [min, max] flattened-line indices for the hunk
// containing line idx.
func (v *View) hunkBounds(idx int) (int, int) {
	if idx < 0 || idx >= len(v.lines) {
		return 0, 0
	}
	hi := v.lines[idx].HunkIndex
	min, max := idx, idx
	for i := range v.lines {
		if v.lines[i].HunkIndex == hi {
			if i < min {
				min = i
			}
			if i > max {
				max = i
			}
		}
	}
	return min, max
}

// HunkVisible reports whether a hunk spanning [hunkMin, hunkMax] overlaps
// the visible window [viewMin, viewMax] at all.
func HunkVisible(hunkMin, hunkMax, viewMin, viewMax int) bool {
	return hunkMin <= viewMax && viewMin <= hunkMax
}

// StageSelectedHunk stages the hunk under the current selection.
func (v *View) StageSelectedHunk(repo *gitx.Repo, path string) error {
	hi := v.lines[v.sel.Top()].HunkIndex
	return repo.StageHunk(path, v.diff.Hunks[hi])
}

// UnstageSelectedHunk unstages the hunk under the current selection.
func (v *View) UnstageSelectedHunk(repo *gitx.Repo, path string) error {
	hi := v.lines[v.sel.Top()].HunkIndex
	return repo.UnstageHunk(path, v.diff.Hunks[hi])
}

// ResetSelectedHunk discards the hunk under the current selection
// (routed through the confirm popup by the caller before being invoked).
func (v *View) ResetSelectedHunk(repo *gitx.Repo, path string) error {
	hi := v.lines[v.sel.Top()].HunkIndex
	return repo.ResetHunk(path, v.diff.Hunks[hi])
}

// StageSelectedLines stages only the add/delete lines within the current
// selection range, approximated via gitx.StageLines.
func (v *View) StageSelectedLines(repo *gitx.Repo, path string, staged bool) error {
	hi := v.lines[v.sel.Top()].HunkIndex
	selected := make(map[int]bool)
	for i := v.sel.Top(); i <= v.sel.Bottom(); i++ {
		if v.lines[i].HunkIndex != hi {
			continue
		}
		for li, hl := range v.diff.Hunks[hi].Lines {
			if hl == v.lines[i].Line {
				selected[li] = true
			}
		}
	}
	return repo.StageLines(path, v.diff.Hunks[hi], selected, staged)
}
