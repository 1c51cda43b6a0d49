package options

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptions(t *testing.T) (*Options, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, dir), dir
}

func TestNewWithNoFileYieldsDefaults(t *testing.T) {
	o, _ := newTestOptions(t)
	assert.Equal(t, 0, o.CurrentTab())
	assert.Equal(t, uint32(3), o.DiffOptions().Context)
	assert.False(t, o.HasCommitMsgHistory())
}

func TestAddExternCommandDedupes(t *testing.T) {
	o, _ := newTestOptions(t)
	o.AddExternCommand("make test")
	o.AddExternCommand("make build")
	o.AddExternCommand("make test")

	cmds := o.ExternCommands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "make build", cmds[0].Command)
	assert.Equal(t, "make test", cmds[1].Command)
}

func TestCommitMsgHistoryCapsAtTwenty(t *testing.T) {
	o, _ := newTestOptions(t)
	for i := 0; i < CommitMsgHistoryLen+5; i++ {
		o.AddCommitMsg(string(rune('a' + i%26)))
	}
	assert.True(t, o.HasCommitMsgHistory())

	msg, ok := o.CommitMsg(0)
	require.True(t, ok)
	assert.NotEmpty(t, msg)

	_, ok = o.CommitMsg(CommitMsgHistoryLen)
	assert.True(t, ok, "index wraps modulo ring length rather than failing")
}

func TestSaveThenLoadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	o := New(dir, dir)
	o.SetCurrentTab(2)
	o.DiffContextChange(true)
	o.AddExternCommand("git log --oneline")
	o.AddCommitMsg("fix: a bug")

	reloaded := New(dir, dir)
	assert.Equal(t, 2, reloaded.CurrentTab())
	assert.Equal(t, uint32(4), reloaded.DiffOptions().Context)
	assert.Equal(t, []ExternCmd{{Command: "git log --oneline"}}, reloaded.ExternCommands())
	msg, ok := reloaded.CommitMsg(0)
	require.True(t, ok)
	assert.Equal(t, "fix: a bug", msg)

	assert.FileExists(t, filepath.Join(dir, "gitui"))
}

func TestRemoveExternCommandClampsIndex(t *testing.T) {
	o, _ := newTestOptions(t)
	o.AddExternCommand("one")
	o.AddExternCommand("two")

	next := o.RemoveExternCommand(5)
	assert.Equal(t, 0, next)
	assert.Len(t, o.ExternCommands(), 2)
}

func TestClearAllExternShortcutsIsIdempotent(t *testing.T) {
	o, _ := newTestOptions(t)
	o.AddExternCommand("one")
	o.AssignExternShortcut(0, &Event{Code: 1, Mods: 0})

	o.ClearAllExternShortcuts()
	o.ClearAllExternShortcuts()

	cmds := o.ExternCommands()
	require.Len(t, cmds, 1)
	assert.Nil(t, cmds[0].Shortcut)
}

func TestRemoveBranchShortcutIsIdempotent(t *testing.T) {
	o, _ := newTestOptions(t)
	o.AssignBranchShortcut("main", Event{Code: 1})

	o.RemoveBranchShortcut("main")
	o.RemoveBranchShortcut("main")

	assert.False(t, o.HasAnyBranchShortcuts())
}

func TestAssignBranchShortcutReplacesExisting(t *testing.T) {
	o, _ := newTestOptions(t)
	o.AssignBranchShortcut("main", Event{Code: 1})
	o.AssignBranchShortcut("main", Event{Code: 2})

	branch, ok := o.FindBranchByShortcut(Event{Code: 2})
	require.True(t, ok)
	assert.Equal(t, "main", branch)

	_, ok = o.FindBranchByShortcut(Event{Code: 1})
	assert.False(t, ok)
}
