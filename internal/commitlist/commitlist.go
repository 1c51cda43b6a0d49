// Package commitlist implements the windowed list view over the log
// walker: the visible item batch, tag/branch overlays, marking, adaptive
// scrolling, and the search/filter key-combo state machine. Grounded on
// the original gitui's tui/src/components/commitlist.rs.
package commitlist

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

// Focus is the tri-valued focus state of the commit list.
type Focus int

const (
	FocusList Focus = iota
	FocusInputSearch
	FocusInputFilter
)

// SearchScope selects which commit fields a search/filter combo matches.
type SearchScope int

const (
	ScopeAll SearchScope = iota
	ScopeAuthorOnly
	ScopeMessageOnly
	ScopeShaOnly
)

// SearchDirection is the direction of an in-progress search.
type SearchDirection int

const (
	DirForward SearchDirection = iota
	DirBackward
)

// KeyComboState is the two-keystroke prefix state machine shared by
// search-scope and filter-scope entry: Empty -> SearchInit|FilterInit ->
// Empty on the second keystroke (which also commits the scope choice).
type KeyComboState int

const (
	ComboEmpty KeyComboState = iota
	ComboSearchInit
	ComboFilterInit
)

// Item is one rendered row: a commit plus its overlay data.
type Item struct {
	Commit   gitmodel.LogEntry
	Tags     []string
	Local    []gitmodel.Branch
	Remote   []gitmodel.Branch
	Marked   bool
}

// ItemBatch is the window currently held in memory: offset is the index
// of Items[0] within the full (unbounded) log.
type ItemBatch struct {
	Offset int
	Items  []Item
}

// ExternalSearchRequest asks the owning application to extend the batch
// because the in-memory window didn't contain a match. ID disambiguates
// stale responses: if the user cancels and restarts a search before the
// application finishes extending the batch for a prior request, the
// caller compares the response's ID against the request it issued and
// discards anything that doesn't match.
type ExternalSearchRequest struct {
	ID        uuid.UUID
	Direction SearchDirection
	Needle    string
	Scope     SearchScope
}

const (
	scrollBaseStep   = 0.1
	scrollMultiplier = 1.05
	scrollMaxStep    = 10.0
	scrollResetAfter = 300 * time.Millisecond
	commitMsgRingCap = 20
)

// List is the commit list component's full state.
type List struct {
	batch    ItemBatch
	total    int
	selected int
	marked   []int // sorted, relative indices into the full log

	focus Focus
	combo KeyComboState

	searchScope  SearchScope
	searchNeedle string
	searchDir    SearchDirection

	filterScope  SearchScope
	filterNeedle string
	pathFilter   string

	scrollAccum   float64
	lastScrollAt  time.Time
	haveLastScroll bool
}

// New creates an empty list; SetBatch populates it once the first page of
// log-walker results is available.
func New() *List {
	return &List{}
}

// SetBatch replaces the visible window and total count.
func (l *List) SetBatch(batch ItemBatch, total int) {
	l.batch = batch
	l.total = total
	if l.selected >= total {
		l.selected = total - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Selected returns the currently selected absolute index into the full log.
func (l *List) Selected() int { return l.selected }

// SelectedItem returns the Item at the current selection, if it falls
// within the in-memory window.
func (l *List) SelectedItem() (Item, bool) {
	rel := l.selected - l.batch.Offset
	if rel < 0 || rel >= len(l.batch.Items) {
		return Item{}, false
	}
	return l.batch.Items[rel], true
}

// MarkedIDs resolves the sorted mark list to commit ids, skipping any mark
// outside the in-memory window (the caller is responsible for keeping
// marks meaningful across batch reloads) or whose hash fails to parse.
func (l *List) MarkedIDs() []commitid.ID {
	out := make([]commitid.ID, 0, len(l.marked))
	for _, idx := range l.marked {
		rel := idx - l.batch.Offset
		if rel < 0 || rel >= len(l.batch.Items) {
			continue
		}
		id, err := commitid.ParseHex(l.batch.Items[rel].Commit.FullHash)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Total returns the total (possibly filtered) commit count.
func (l *List) Total() int { return l.total }

// Focus returns the current tri-valued focus.
func (l *List) Focus() Focus { return l.focus }

// Combo returns the current key-combo state.
func (l *List) Combo() KeyComboState { return l.combo }

// scrollStep computes the adaptive step for one scroll keystroke, called
// at time now; consecutive keystrokes within scrollResetAfter compound the
// step by scrollMultiplier up to scrollMaxStep, otherwise it resets.
func (l *List) scrollStep(now time.Time) int {
	if l.haveLastScroll && now.Sub(l.lastScrollAt) <= scrollResetAfter {
		l.scrollAccum *= scrollMultiplier
		if l.scrollAccum > scrollMaxStep {
			l.scrollAccum = scrollMaxStep
		}
	} else {
		l.scrollAccum = scrollBaseStep
	}
	l.lastScrollAt = now
	l.haveLastScroll = true
	step := int(l.scrollAccum)
	if step < 1 {
		step = 1
	}
	return step
}

// ScrollUp moves the selection up by the adaptive step, clamped to 0.
func (l *List) ScrollUp(now time.Time) {
	step := l.scrollStep(now)
	l.selected -= step
	if l.selected < 0 {
		l.selected = 0
	}
}

// ScrollDown moves the selection down by the adaptive step, clamped to
// total-1.
func (l *List) ScrollDown(now time.Time) {
	step := l.scrollStep(now)
	l.selected += step
	if l.total > 0 && l.selected >= l.total {
		l.selected = l.total - 1
	}
}

// Home jumps instantly to the first commit, resetting scroll acceleration.
func (l *List) Home() {
	l.selected = 0
	l.haveLastScroll = false
}

// End jumps instantly to the last commit.
func (l *List) End() {
	if l.total > 0 {
		l.selected = l.total - 1
	}
	l.haveLastScroll = false
}

// PageUp/PageDown jump by page (the number of visible rows) instantly,
// bypassing the adaptive accelerator.
func (l *List) PageUp(page int) {
	l.selected -= page
	if l.selected < 0 {
		l.selected = 0
	}
	l.haveLastScroll = false
}

func (l *List) PageDown(page int) {
	l.selected += page
	if l.total > 0 && l.selected >= l.total {
		l.selected = l.total - 1
	}
	l.haveLastScroll = false
}

// ToggleMark inserts or removes the selected index from the sorted mark
// vector, keeping it strictly sorted with no duplicates.
func (l *List) ToggleMark() {
	idx := l.selected
	pos := sort.SearchInts(l.marked, idx)
	if pos < len(l.marked) && l.marked[pos] == idx {
		l.marked = append(l.marked[:pos], l.marked[pos+1:]...)
		return
	}
	l.marked = append(l.marked, 0)
	copy(l.marked[pos+1:], l.marked[pos:])
	l.marked[pos] = idx
}

// Marked returns the sorted, de-duplicated list of marked indices.
func (l *List) Marked() []int {
	out := make([]int, len(l.marked))
	copy(out, l.marked)
	return out
}

// ClearMarks empties the mark list, e.g. after a successful drop/fixup.
func (l *List) ClearMarks() { l.marked = nil }

// IsMarked reports whether idx is currently marked.
func (l *List) IsMarked(idx int) bool {
	pos := sort.SearchInts(l.marked, idx)
	return pos < len(l.marked) && l.marked[pos] == idx
}

// AdvanceCombo feeds one scope-selecting keystroke into the key-combo
// state machine. startSearch selects which combo is being initiated (search
// or filter); scope is only meaningful on the second keystroke, which also
// commits the scope and returns to Empty.
func (l *List) AdvanceCombo(startSearch bool, scope SearchScope) {
	switch l.combo {
	case ComboEmpty:
		if startSearch {
			l.combo = ComboSearchInit
		} else {
			l.combo = ComboFilterInit
		}
	case ComboSearchInit:
		l.searchScope = scope
		l.combo = ComboEmpty
		l.focus = FocusInputSearch
	case ComboFilterInit:
		l.filterScope = scope
		l.combo = ComboEmpty
		l.focus = FocusInputFilter
	}
}

// matchesScope reports whether item matches needle under scope, using the
// smart-case rule shared with diff/blame search.
func matchesScope(item Item, needle string, scope SearchScope) bool {
	c := item.Commit
	check := func(s string) bool {
		_, ok := gitmodel.SmartCaseContains(s, needle)
		return ok
	}
	switch scope {
	case ScopeAuthorOnly:
		return check(c.Author)
	case ScopeMessageOnly:
		return check(c.Summary)
	case ScopeShaOnly:
		return check(c.FullHash) || check(c.ShortHash)
	default:
		return check(c.Author) || check(c.Summary) || check(c.FullHash)
	}
}

// SearchForward looks for needle under scope starting at the current
// selection within the in-memory batch; on miss it returns an
// ExternalSearchRequest for the application to extend the batch with.
func (l *List) SearchForward(needle string, scope SearchScope) (foundAt int, req *ExternalSearchRequest, ok bool) {
	l.searchNeedle = needle
	l.searchDir = DirForward
	startRel := l.selected - l.batch.Offset + 1
	for i := startRel; i < len(l.batch.Items); i++ {
		if i < 0 {
			continue
		}
		if matchesScope(l.batch.Items[i], needle, scope) {
			return l.batch.Offset + i, nil, true
		}
	}
	return 0, &ExternalSearchRequest{ID: uuid.New(), Direction: DirForward, Needle: needle, Scope: scope}, false
}

// SearchBackward is the symmetric backward search.
func (l *List) SearchBackward(needle string, scope SearchScope) (foundAt int, req *ExternalSearchRequest, ok bool) {
	l.searchNeedle = needle
	l.searchDir = DirBackward
	startRel := l.selected - l.batch.Offset - 1
	for i := startRel; i >= 0; i-- {
		if i >= len(l.batch.Items) {
			continue
		}
		if matchesScope(l.batch.Items[i], needle, scope) {
			return l.batch.Offset + i, nil, true
		}
	}
	return 0, &ExternalSearchRequest{ID: uuid.New(), Direction: DirBackward, Needle: needle, Scope: scope}, false
}

// SetPathFilter installs a path filter chosen via the file finder;
// normalizes by trimming a leading "./" and surrounding slashes.
func (l *List) SetPathFilter(path string) {
	p := strings.TrimPrefix(path, "./")
	p = strings.Trim(p, "/")
	l.pathFilter = p
}

// ClearPathFilter removes the active path filter (Esc).
func (l *List) ClearPathFilter() { l.pathFilter = "" }

// PathFilter returns the active path filter, or "" if none.
func (l *List) PathFilter() string { return l.pathFilter }

// FilterScope/FilterNeedle report the active author/message/sha filter,
// if any was committed via the key combo.
func (l *List) FilterNeedle() string      { return l.filterNeedle }
func (l *List) SetFilterNeedle(s string)  { l.filterNeedle = s }
func (l *List) FilterScope() SearchScope  { return l.filterScope }

// RebaseBaseFor returns the commit to use as the rebase base (the parent
// of the selected commit), used when triggering rebase -i.
func RebaseBaseFor(parents []commitid.ID) (commitid.ID, bool) {
	if len(parents) == 0 {
		return commitid.Zero, false
	}
	return parents[0], true
}

// MessageRing is the bounded ring buffer of recently-used commit
// messages, capacity commitMsgRingCap, newest first.
type MessageRing struct {
	items []string
}

// Push inserts msg at the front, evicting the oldest entry beyond
// capacity 20. A message equal to an existing entry is moved to front
// rather than duplicated.
func (r *MessageRing) Push(msg string) {
	for i, m := range r.items {
		if m == msg {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	r.items = append([]string{msg}, r.items...)
	if len(r.items) > commitMsgRingCap {
		r.items = r.items[:commitMsgRingCap]
	}
}

// At returns the message at index i (0 = most recent), and whether i was
// in range.
func (r *MessageRing) At(i int) (string, bool) {
	if i < 0 || i >= len(r.items) {
		return "", false
	}
	return r.items[i], true
}

// Len returns the number of stored messages.
func (r *MessageRing) Len() int { return len(r.items) }
