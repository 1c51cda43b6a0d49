package blameview

import (
	"strconv"
	"strings"

	"github.com/theorlangur/gitui/internal/gitmodel"
)

// BeginSearchEditing enters SearchEditing, recording the current selection
// as the search's start position.
func (v *View) BeginSearchEditing() {
	v.search.mode = SearchEditing
	v.search.start = v.selected
}

// TypeSearchChar extends the needle by one printable character and
// triggers an incremental search from search.start.
func (v *View) TypeSearchChar(c rune) {
	if v.search.mode != SearchEditing {
		return
	}
	v.search.needle += string(c)
	v.incrementalMatch()
}

// BackspaceSearch removes the last character of the needle and
// re-evaluates the match.
func (v *View) BackspaceSearch() {
	if v.search.mode != SearchEditing || v.search.needle == "" {
		return
	}
	r := []rune(v.search.needle)
	v.search.needle = string(r[:len(r)-1])
	v.incrementalMatch()
}

// CancelSearchEditing (Esc) returns the selection to search.start and
// clears the needle entirely.
func (v *View) CancelSearchEditing() {
	v.selected = v.search.start
	v.search = searchState{current: -1}
}

// CommitSearchEditing (Enter) leaves SearchEditing with the current
// needle; an empty needle demotes to no active search.
func (v *View) CommitSearchEditing() {
	v.search.mode = SearchNormal
	if v.search.needle == "" {
		v.search.current = -1
	}
}

func (v *View) incrementalMatch() {
	m, ok := v.findMatchFrom(v.search.start, v.search.needle)
	if ok {
		v.selected = m.Line
		v.search.current = m.Line
	}
}

// findMatchFrom scans forward from idx (inclusive), wrapping, for needle.
func (v *View) findMatchFrom(idx int, needle string) (Match, bool) {
	n := len(v.blame.Lines)
	if n == 0 || needle == "" {
		return Match{}, false
	}
	for i := 0; i < n; i++ {
		line := (idx + i) % n
		off, ok := gitmodel.SmartCaseContains(v.blame.Lines[line].Content, needle)
		if ok {
			return Match{Line: line, Offset: off, Len: len(needle)}, true
		}
	}
	return Match{}, false
}

// SearchNext finds the next match after the current selection in Normal
// mode, wrapping across EOF.
func (v *View) SearchNext() (Match, bool) {
	if v.search.needle == "" {
		return Match{}, false
	}
	m, ok := v.findMatchFrom(v.selected+1, v.search.needle)
	if ok {
		v.selected = m.Line
		v.search.current = m.Line
	}
	return m, ok
}

// SearchPrev finds the previous match, wrapping across BOF.
func (v *View) SearchPrev() (Match, bool) {
	if v.search.needle == "" {
		return Match{}, false
	}
	n := len(v.blame.Lines)
	if n == 0 {
		return Match{}, false
	}
	start := ((v.selected-1)%n + n) % n
	for i := 0; i < n; i++ {
		line := ((start-i)%n + n) % n
		off, ok := gitmodel.SmartCaseContains(v.blame.Lines[line].Content, v.search.needle)
		if ok {
			v.selected = line
			v.search.current = line
			return Match{Line: line, Offset: off, Len: len(v.search.needle)}, true
		}
	}
	return Match{}, false
}

// PushDigit accumulates one numeric-jump digit.
func (v *View) PushDigit(d rune) {
	v.tempBuf += string(d)
}

// ClearTempBuf drops the accumulated digits, e.g. on a non-digit key.
func (v *View) ClearTempBuf() { v.tempBuf = "" }

// JumpEnd selects the line named by the accumulated digit buffer if
// non-empty, otherwise jumps to the last line.
func (v *View) JumpEnd() {
	if v.tempBuf != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v.tempBuf)); err == nil {
			v.selected = clamp(n, 0, len(v.blame.Lines)-1)
			v.tempBuf = ""
			return
		}
	}
	if len(v.blame.Lines) > 0 {
		v.selected = len(v.blame.Lines) - 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
