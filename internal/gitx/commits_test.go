package gitx

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theorlangur/gitui/internal/commitid"
)

func withStubbedGit(t *testing.T, fn func(dir string, args ...string) (string, error)) {
	t.Helper()
	orig := RunGit
	RunGit = fn
	t.Cleanup(func() { RunGit = orig })
}

func TestFindCommitParsesRecord(t *testing.T) {
	hash := strings.Repeat("a", 40)
	withStubbedGit(t, func(dir string, args ...string) (string, error) {
		return hash + "\x1f" + strings.Repeat("b", 40) + "\x1f" + "Jane Doe\x1f1700000000\x1fa commit message\x1e", nil
	})

	r := &Repo{Path: "/repo"}
	meta, err := r.FindCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, hash, meta.ID.String())
	assert.Equal(t, "Jane Doe", meta.Author)
	assert.Equal(t, int64(1700000000), meta.Time)
	assert.Equal(t, "a commit message", meta.Summary)
	require.Len(t, meta.Parents, 1)
	assert.Equal(t, strings.Repeat("b", 40), meta.Parents[0].String())
}

func TestFindCommitPropagatesGitError(t *testing.T) {
	withStubbedGit(t, func(dir string, args ...string) (string, error) {
		return "", fmt.Errorf("exit status 128")
	})

	r := &Repo{Path: "/repo"}
	_, err := r.FindCommit("deadbeef")
	assert.Error(t, err)
}

func TestGetCommitsInfoTruncatesSummary(t *testing.T) {
	hash := strings.Repeat("c", 40)
	withStubbedGit(t, func(dir string, args ...string) (string, error) {
		return hash + "\x1f\x1fAuthor\x1f1\x1fa very long commit summary\x1e", nil
	})

	r := &Repo{Path: "/repo"}
	id, err := commitid.ParseHex(hash)
	require.NoError(t, err)

	result, err := r.GetCommitsInfo([]commitid.ID{id}, 5)
	require.NoError(t, err)
	meta, ok := result[hash]
	require.True(t, ok)
	assert.Len(t, meta.Summary, 5)
}

func TestGetCommitsInfoEmptyInput(t *testing.T) {
	r := &Repo{Path: "/repo"}
	result, err := r.GetCommitsInfo(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, result)
}
