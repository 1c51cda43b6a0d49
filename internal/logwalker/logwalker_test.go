package logwalker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitx"
)

func TestComposeAndShortCircuits(t *testing.T) {
	calledSecond := false
	first := func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error) {
		return false, nil
	}
	second := func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error) {
		calledSecond = true
		return true, nil
	}
	combined := ComposeAnd(first, second)
	ok, err := combined(nil, commitid.Zero, gitx.CommitMeta{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, calledSecond, "second filter must not run once first rejects")
}

func TestComposeAndAllNilIsNil(t *testing.T) {
	assert.Nil(t, ComposeAnd(nil, nil))
}

func TestComposeAndAllPass(t *testing.T) {
	always := func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error) {
		return true, nil
	}
	combined := ComposeAnd(always, always)
	ok, err := combined(nil, commitid.Zero, gitx.CommitMeta{})
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestCommitHeapOrdersNewestFirst(t *testing.T) {
	h := commitHeap{
		{Time: 10},
		{Time: 30},
		{Time: 20},
	}
	assert.True(t, h.Less(1, 0), "30 should sort before 10")
	assert.False(t, h.Less(0, 1))
}
