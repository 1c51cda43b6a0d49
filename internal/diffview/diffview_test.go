package diffview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

func sampleDiff() gitmodel.FileDiff {
	return gitmodel.FileDiff{
		Hunks: []gitmodel.Hunk{
			{
				HeaderHash: 1,
				Lines: []gitmodel.DiffLine{
					{Type: gitmodel.LineHeader, Content: "@@ -1,3 +1,3 @@"},
					{Type: gitmodel.LineContext, Content: "ctx1"},
					{Type: gitmodel.LineAdd, Content: "added foo"},
					{Type: gitmodel.LineDelete, Content: "removed"},
					{Type: gitmodel.LineContext, Content: "ctx2"},
				},
			},
		},
	}
}

func TestNumericPrefixMovement(t *testing.T) {
	v := New(sampleDiff())
	// place cursor at the bottom first
	for i := 0; i < 4; i++ {
		v.MoveSingle(gitmodel.Down)
	}
	assert.Equal(t, 4, v.Selection().Top())

	v.PushDigit(1)
	v.PushDigit(2)
	v.MoveSingle(gitmodel.Up)
	assert.Equal(t, 0, v.Selection().Top(), "12 lines up from 4 clamps at 0")
}

func TestClearPendingMovementOnNonDirectionKey(t *testing.T) {
	v := New(sampleDiff())
	v.PushDigit(5)
	v.ClearPendingMovement()
	v.MoveSingle(gitmodel.Down)
	assert.Equal(t, 1, v.Selection().Top())
}

func TestHunkVisibleOverlap(t *testing.T) {
	assert.True(t, HunkVisible(0, 5, 3, 10))
	assert.True(t, HunkVisible(0, 5, 5, 10))
	assert.False(t, HunkVisible(0, 5, 6, 10))
}

func TestSelectionContainsRange(t *testing.T) {
	s := gitmodel.NewMultiple(5, 2)
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(6))
}

func TestExtendSelectionNeverMovesAnchor(t *testing.T) {
	v := New(sampleDiff())
	v.sel = gitmodel.NewSingle(2)
	v.ExtendSelection(gitmodel.Down)
	v.ExtendSelection(gitmodel.Down)
	assert.Equal(t, 2, v.sel.Start())
	assert.LessOrEqual(t, v.sel.Top(), v.sel.Bottom())
}

func TestCopyLineTerminal(t *testing.T) {
	v := New(sampleDiff())
	v.sel = gitmodel.NewSingle(2)
	v.BeginCopy()
	res, ok := v.CopyCurrentLine(time.Now())
	assert.True(t, ok)
	assert.Equal(t, []gitmodel.DiffLine{{Type: gitmodel.LineAdd, Content: "added foo"}}, res.Lines)
	assert.Equal(t, CopyNone, v.copy)
}

func TestCopyLinesUpHonorsStride(t *testing.T) {
	v := New(sampleDiff())
	v.sel = gitmodel.NewSingle(4)
	v.BeginCopy()
	v.CopyDigit(3)
	res, ok := v.CopyDirection(true, time.Now())
	assert.True(t, ok)
	assert.Len(t, res.Lines, 3)
}

func TestIncrementalSearchNarrowsAndBackspaceWidens(t *testing.T) {
	v := New(sampleDiff())
	v.BeginSearch(SearchForward)
	v.TypeSearchChar('f')
	v.TypeSearchChar('o')
	v.TypeSearchChar('o')
	assert.Equal(t, 2, v.Selection().Top())

	v.BackspaceSearch()
	assert.Equal(t, "fo", v.search.Needle)
}

func TestCancelSearchRestoresSelection(t *testing.T) {
	v := New(sampleDiff())
	v.sel = gitmodel.NewSingle(1)
	v.BeginSearch(SearchForward)
	v.TypeSearchChar('f')
	v.CancelSearch()
	assert.Equal(t, 1, v.Selection().Top())
	assert.Equal(t, SearchOff, v.search.Mode)
}
