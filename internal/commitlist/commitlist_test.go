package commitlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

func TestToggleMarkSortedNoDuplicates(t *testing.T) {
	l := New()
	l.SetBatch(ItemBatch{}, 10)

	l.selected = 5
	l.ToggleMark()
	l.selected = 2
	l.ToggleMark()
	l.selected = 8
	l.ToggleMark()

	assert.Equal(t, []int{2, 5, 8}, l.Marked())

	l.selected = 5
	l.ToggleMark()
	assert.Equal(t, []int{2, 8}, l.Marked())
}

func TestClearMarksEmpties(t *testing.T) {
	l := New()
	l.SetBatch(ItemBatch{}, 10)
	l.selected = 3
	l.ToggleMark()
	l.ClearMarks()
	assert.Empty(t, l.Marked())
}

func TestKeyComboReturnsToEmptyAfterSecondKeystroke(t *testing.T) {
	l := New()
	assert.Equal(t, ComboEmpty, l.Combo())
	l.AdvanceCombo(true, ScopeAll)
	assert.Equal(t, ComboSearchInit, l.Combo())
	l.AdvanceCombo(true, ScopeAuthorOnly)
	assert.Equal(t, ComboEmpty, l.Combo())
	assert.Equal(t, FocusInputSearch, l.Focus())
}

func TestScrollStepAcceleratesThenResets(t *testing.T) {
	l := New()
	l.SetBatch(ItemBatch{}, 100000)
	l.selected = 50000

	now := time.Now()
	stepA := l.scrollStep(now)
	accumAfterA := l.scrollAccum

	stepB := l.scrollStep(now.Add(50 * time.Millisecond))
	assert.Greater(t, l.scrollAccum, accumAfterA, "rapid keystrokes should compound the step")
	_ = stepA
	_ = stepB

	l.scrollStep(now.Add(2 * time.Second))
	assert.InDelta(t, scrollBaseStep, l.scrollAccum, 1e-9, "a pause beyond 300ms should reset the step")
}

func TestMessageRingCapsAt20(t *testing.T) {
	var r MessageRing
	for i := 0; i < 25; i++ {
		r.Push(string(rune('a' + i%26)))
	}
	assert.LessOrEqual(t, r.Len(), 20)
}

func TestMessageRingMostRecentFirst(t *testing.T) {
	var r MessageRing
	r.Push("one")
	r.Push("two")
	v, ok := r.At(0)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestSearchForwardFindsInBatch(t *testing.T) {
	l := New()
	items := []Item{
		{Commit: gitmodel.LogEntry{Summary: "fix bug"}},
		{Commit: gitmodel.LogEntry{Summary: "add foo feature"}},
		{Commit: gitmodel.LogEntry{Summary: "cleanup"}},
	}
	l.SetBatch(ItemBatch{Offset: 0, Items: items}, 3)
	l.selected = 0

	idx, req, ok := l.SearchForward("foo", ScopeAll)
	assert.True(t, ok)
	assert.Nil(t, req)
	assert.Equal(t, 1, idx)
}

func TestSearchForwardMissReturnsExternalRequest(t *testing.T) {
	l := New()
	items := []Item{{Commit: gitmodel.LogEntry{Summary: "a"}}}
	l.SetBatch(ItemBatch{Offset: 0, Items: items}, 1)

	_, req, ok := l.SearchForward("notfound", ScopeAll)
	assert.False(t, ok)
	assert.NotNil(t, req)
	assert.Equal(t, DirForward, req.Direction)
}

func TestPathFilterNormalizes(t *testing.T) {
	l := New()
	l.SetPathFilter("./src/lib/io.ext/")
	assert.Equal(t, "src/lib/io.ext", l.PathFilter())
	l.ClearPathFilter()
	assert.Equal(t, "", l.PathFilter())
}
