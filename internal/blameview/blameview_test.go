package blameview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

func sampleBlame() gitmodel.Blame {
	h1 := &gitmodel.BlameHunk{Commit: commitid.ID{}, Author: "a", Time: 1}
	return gitmodel.Blame{
		Lines: []gitmodel.BlameLine{
			{Hunk: h1, Content: "line zero"},
			{Content: "has foo in it"},
			{Content: "another foo here"},
			{Content: "no match"},
		},
	}
}

func TestIncrementalSearchReachesFirstOccurrenceFromZero(t *testing.T) {
	v := New(Request{}, sampleBlame())
	v.BeginSearchEditing()
	v.TypeSearchChar('f')
	v.TypeSearchChar('o')
	v.TypeSearchChar('o')
	assert.Equal(t, 1, v.Selected())
}

func TestSearchNextVisitsAllThenWraps(t *testing.T) {
	v := New(Request{}, sampleBlame())
	v.BeginSearchEditing()
	v.TypeSearchChar('f')
	v.TypeSearchChar('o')
	v.TypeSearchChar('o')
	v.CommitSearchEditing()

	assert.Equal(t, 1, v.Selected())
	m, ok := v.SearchNext()
	assert.True(t, ok)
	assert.Equal(t, 2, m.Line)
	m, ok = v.SearchNext()
	assert.True(t, ok)
	assert.Equal(t, 1, m.Line, "should wrap back to the first occurrence")
}

func TestCancelSearchEditingRestoresStart(t *testing.T) {
	v := New(Request{}, sampleBlame())
	v.selected = 3
	v.BeginSearchEditing()
	v.TypeSearchChar('f')
	v.CancelSearchEditing()
	assert.Equal(t, 3, v.Selected())
	assert.Equal(t, "", v.search.needle)
}

func TestJumpEndUsesTempBufWhenPresent(t *testing.T) {
	v := New(Request{}, sampleBlame())
	v.PushDigit('2')
	v.JumpEnd()
	assert.Equal(t, 2, v.Selected())
}

func TestJumpEndGoesToLastLineWithoutBuf(t *testing.T) {
	v := New(Request{}, sampleBlame())
	v.JumpEnd()
	assert.Equal(t, 3, v.Selected())
}
