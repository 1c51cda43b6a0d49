// Package blameview implements the blame table's row/selection model, the
// push/pop blame stack, the incremental search sub-state, and numeric-jump
// handling. Grounded on the original gitui's tui/src/components/blame.rs.
package blameview

import (
	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitmodel"
	"github.com/theorlangur/gitui/internal/gitx"
	"github.com/theorlangur/gitui/internal/logwalker"
)

// Request names one blame population: a file and an optional commit to
// blame from (zero id = HEAD).
type Request struct {
	FilePath string
	Commit   commitid.ID
}

// SearchMode is the blame pane's two-state search machine.
type SearchMode int

const (
	SearchNormal SearchMode = iota
	SearchEditing
)

// Match is one highlighted search hit: the line index and the
// [offset, offset+len) byte range within that line's content.
type Match struct {
	Line   int
	Offset int
	Len    int
}

// searchState is the blame pane's search sub-state.
type searchState struct {
	mode     SearchMode
	needle   string
	start    int // line index search began at, restored on Esc
	current  int // currently selected match line, -1 if none
}

// frame is one entry of the blame stack: the open request and the
// selection/search state at the time blame was pushed deeper.
type frame struct {
	req      Request
	selected int
	search   searchState
}

// View holds the currently open blame table plus the stack of
// previously-open blames (push on "blame selected commit's parent", pop
// to restore).
type View struct {
	req      Request
	blame    gitmodel.Blame
	selected int

	search searchState

	tempBuf string // accumulated digits for numeric jump

	stack []frame
}

// New opens a view over blame for the given request.
func New(req Request, blame gitmodel.Blame) *View {
	return &View{req: req, blame: blame, search: searchState{current: -1}}
}

// SetBlame replaces the populated table once the async blame job returns.
func (v *View) SetBlame(blame gitmodel.Blame) { v.blame = blame }

// Request returns the currently open request.
func (v *View) Request() Request { return v.req }

// Selected returns the selected row index.
func (v *View) Selected() int { return v.selected }

// MoveUp/MoveDown move the selection by one row, clamped.
func (v *View) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

func (v *View) MoveDown() {
	if v.selected < len(v.blame.Lines)-1 {
		v.selected++
	}
}

// commitAt walks backward from idx to find the BlameHunk governing that
// row (metadata is only stored on the first row of each run).
func (v *View) commitAt(idx int) *gitmodel.BlameHunk {
	for i := idx; i >= 0; i-- {
		if v.blame.Lines[i].Hunk != nil {
			return v.blame.Lines[i].Hunk
		}
	}
	return nil
}

// Push opens a new blame for the selected row's commit's parent,
// discovered by a one-step log walk filtered by the file, and saves the
// current state on the stack.
func (v *View) Push(repo *gitx.Repo) (Request, bool, error) {
	hunk := v.commitAt(v.selected)
	if hunk == nil {
		return Request{}, false, nil
	}
	w, err := logwalker.New(repo, hunk.Commit, 0)
	if err != nil {
		return Request{}, false, err
	}
	w = w.WithFilter(logwalker.FilterByPath(v.req.FilePath, false), 2)
	var ids []commitid.ID
	if _, err := w.Read(&ids); err != nil {
		return Request{}, false, err
	}
	// ids[0] is hunk.Commit itself (it touches the file by construction);
	// the parent-in-history-of-this-file is the next admitted commit.
	var parent commitid.ID
	found := false
	for _, id := range ids {
		if !id.Equal(hunk.Commit) {
			parent = id
			found = true
			break
		}
	}
	if !found {
		return Request{}, false, nil
	}

	v.stack = append(v.stack, frame{req: v.req, selected: v.selected, search: v.search})
	v.req = Request{FilePath: v.req.FilePath, Commit: parent}
	v.selected = 0
	v.search = searchState{current: -1}
	return v.req, true, nil
}

// Pop restores the previous frame, if any. Reports whether the stack had
// anything to pop (an empty stack means this is the only blame popup
// open).
func (v *View) Pop() (Request, bool) {
	if len(v.stack) == 0 {
		return Request{}, false
	}
	n := len(v.stack) - 1
	f := v.stack[n]
	v.stack = v.stack[:n]
	v.req = f.req
	v.selected = f.selected
	v.search = f.search
	return v.req, true
}

// StackDepth reports how many frames are stacked beneath the current view.
func (v *View) StackDepth() int { return len(v.stack) }
