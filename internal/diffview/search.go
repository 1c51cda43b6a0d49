package diffview

import "github.com/theorlangur/gitui/internal/gitmodel"

// SearchMode distinguishes the diff pane's incremental and committed
// search states.
type SearchMode int

const (
	SearchOff SearchMode = iota
	SearchIncremental
	SearchCommitted
)

// SearchDirection mirrors the diff pane's forward/backward search toggle.
type SearchDirection int

const (
	SearchForward SearchDirection = iota
	SearchBackward
)

// SearchState is the diff pane's search sub-machine: a needle, the
// position search began at, and a direction. Case sensitivity is not
// stored here: each match applies gitmodel.SmartCaseContains to the
// current needle, so removing the last uppercase character makes the
// search case-insensitive again.
type SearchState struct {
	Mode      SearchMode
	Needle    string
	StartPos  int
	Direction SearchDirection
}

// BeginSearch initiates IncSearch(needle="", start_pos=current selection),
// recording the pre-search selection so Esc can restore it.
func (v *View) BeginSearch(dir SearchDirection) {
	v.preSearchSel = v.sel
	v.search = SearchState{
		Mode:      SearchIncremental,
		StartPos:  v.sel.Top(),
		Direction: dir,
	}
}

// TypeSearchChar appends one character to the needle and re-evaluates the
// match immediately.
func (v *View) TypeSearchChar(c rune) {
	if v.search.Mode != SearchIncremental {
		return
	}
	v.search.Needle += string(c)
	v.applySearchMatch()
}

// BackspaceSearch removes the last character of the needle.
func (v *View) BackspaceSearch() {
	if v.search.Mode != SearchIncremental || v.search.Needle == "" {
		return
	}
	r := []rune(v.search.Needle)
	v.search.Needle = string(r[:len(r)-1])
	v.applySearchMatch()
}

// CommitSearch promotes IncSearch to Search(needle), enabling next/prev
// navigation with the committed needle.
func (v *View) CommitSearch() {
	if v.search.Mode != SearchIncremental {
		return
	}
	v.search.Mode = SearchCommitted
}

// CancelSearch restores the pre-search selection and turns search off.
func (v *View) CancelSearch() {
	v.sel = v.preSearchSel
	v.search = SearchState{}
}

// IsSearchActive reports whether a search session (incremental or
// committed) is in progress with a non-empty needle.
func (v *View) IsSearchActive() bool {
	return v.search.Mode != SearchOff && v.search.Needle != ""
}

// applySearchMatch moves the selection to the first match found scanning
// from StartPos in the search direction, leaving the selection unchanged
// on no match.
func (v *View) applySearchMatch() {
	idx, ok := v.findMatch(v.search.StartPos, v.search.Needle, v.search.Direction)
	if ok {
		v.sel = gitmodel.NewSingle(idx)
	}
}

// findMatch scans the flattened lines for needle starting at from in dir,
// wrapping around EOF/BOF.
func (v *View) findMatch(from int, needle string, dir SearchDirection) (int, bool) {
	if needle == "" || len(v.lines) == 0 {
		return 0, false
	}
	n := len(v.lines)
	for i := 0; i < n; i++ {
		var idx int
		if dir == SearchForward {
			idx = (from + i) % n
		} else {
			idx = ((from-i)%n + n) % n
		}
		if _, ok := gitmodel.SmartCaseContains(v.lines[idx].Line.Content, needle); ok {
			return idx, true
		}
	}
	return 0, false
}

// SearchNext/SearchPrev navigate to the next/previous match honoring the
// current search direction, wrapping around.
func (v *View) SearchNext() {
	if v.search.Mode == SearchOff || v.search.Needle == "" {
		return
	}
	from := v.sel.Top() + 1
	if v.search.Direction == SearchBackward {
		from = v.sel.Top() - 1
	}
	idx, ok := v.findMatch(from, v.search.Needle, v.search.Direction)
	if ok {
		v.sel = gitmodel.NewSingle(idx)
	}
}

func (v *View) SearchPrev() {
	if v.search.Mode == SearchOff || v.search.Needle == "" {
		return
	}
	opp := SearchForward
	if v.search.Direction == SearchForward {
		opp = SearchBackward
	}
	from := v.sel.Top() - 1
	if opp == SearchForward {
		from = v.sel.Top() + 1
	}
	idx, ok := v.findMatch(from, v.search.Needle, opp)
	if ok {
		v.sel = gitmodel.NewSingle(idx)
	}
}
