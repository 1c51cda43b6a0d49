// Package options implements the repo-scoped preferences store: the single
// writer of "<gitdir>/gitui", a RON-encoded record covering the current
// tab, diff display options, untracked-file display, commit-message
// history, external-command and branch shortcuts, and base push/fetch/
// checkout commands.
//
// Save/load is grounded on the teacher's internal/config/config.go
// (read-whole-file, defaults on missing/invalid, write-whole-file-back on
// every mutation); the on-disk format is RON per spec.md section 6, via
// internal/ron, because no RON library exists anywhere in the retrieval
// pack (see DESIGN.md).
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	gitlog "github.com/theorlangur/gitui/internal/log"
	"github.com/theorlangur/gitui/internal/ron"
)

// CommitMsgHistoryLen is the maximum number of retained commit messages.
const CommitMsgHistoryLen = 20

// UntrackedMode mirrors git status's --untracked-files modes.
type UntrackedMode int

const (
	UntrackedNo UntrackedMode = iota
	UntrackedNormal
	UntrackedAll
)

// DiffOptions controls the diff engine's rendering: context lines,
// interhunk lines to merge adjacent hunks, and whitespace handling.
type DiffOptions struct {
	Context          uint32
	InterhunkLines   uint32
	IgnoreWhitespace bool
}

// ExternCmd is one saved external command plus its optional shortcut.
type ExternCmd struct {
	Command  string
	Shortcut *Event
}

// BranchShortcut binds a branch name to a global key chord.
type BranchShortcut struct {
	Branch   string
	Shortcut Event
}

// Event is the minimal key-event shape persisted to disk (decoupled from
// keybinding.Event so this package has no UI dependency).
type Event struct {
	Code int64
	Mods int64
}

// GitExternCommands holds user-configured base commands composed with a
// caller-supplied suffix for push/fetch/checkout.
type GitExternCommands struct {
	PushBase     *string
	FetchBase    *string
	CheckoutBase *string
}

// data is the persisted record shape, matching spec.md section 6 exactly.
type data struct {
	Tab                int
	Diff               DiffOptions
	StatusShowUntracked *UntrackedMode
	CommitMsgs         []string
	ExternCmds         []ExternCmd
	GitExternCmds      GitExternCommands
	BranchShortcuts    []BranchShortcut
}

func defaultData() data {
	return data{
		Diff: DiffOptions{Context: 3, InterhunkLines: 0},
	}
}

// Options is the single in-process writer of the options file. All access
// is expected from the UI thread; the mutex guards the in-memory record
// while a mutation or read is in progress (spec.md section 5: "all access
// is on the UI thread").
type Options struct {
	mu       sync.Mutex
	repoPath string // used to locate <gitdir>/gitui
	gitDir   string
	d        data
}

// New constructs the store, reading the existing file if present.
// Absent or invalid content yields defaults, matching the teacher's
// LoadConfig behavior in internal/config/config.go.
func New(repoPath, gitDir string) *Options {
	o := &Options{repoPath: repoPath, gitDir: gitDir, d: defaultData()}
	if d, err := read(o.file()); err == nil {
		o.d = d
	}
	return o
}

func (o *Options) file() string {
	return filepath.Join(o.gitDir, "gitui")
}

// --- tab ---

func (o *Options) CurrentTab() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.d.Tab
}

func (o *Options) SetCurrentTab(tab int) {
	o.mu.Lock()
	o.d.Tab = tab
	o.mu.Unlock()
	o.save()
}

// --- diff options ---

func (o *Options) DiffOptions() DiffOptions {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.d.Diff
}

func (o *Options) DiffContextChange(increase bool) {
	o.mu.Lock()
	if increase {
		o.d.Diff.Context++
	} else if o.d.Diff.Context > 0 {
		o.d.Diff.Context--
	}
	o.mu.Unlock()
	o.save()
}

func (o *Options) DiffHunkLinesChange(increase bool) {
	o.mu.Lock()
	if increase {
		o.d.Diff.InterhunkLines++
	} else if o.d.Diff.InterhunkLines > 0 {
		o.d.Diff.InterhunkLines--
	}
	o.mu.Unlock()
	o.save()
}

func (o *Options) DiffToggleWhitespace() {
	o.mu.Lock()
	o.d.Diff.IgnoreWhitespace = !o.d.Diff.IgnoreWhitespace
	o.mu.Unlock()
	o.save()
}

// --- untracked ---

func (o *Options) StatusShowUntracked() *UntrackedMode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.d.StatusShowUntracked
}

func (o *Options) SetStatusShowUntracked(v *UntrackedMode) {
	o.mu.Lock()
	o.d.StatusShowUntracked = v
	o.mu.Unlock()
	o.save()
}

// --- git extern commands ---

func (o *Options) GitExternCommands() GitExternCommands {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.d.GitExternCmds
}

func (o *Options) SetGitExternPush(cmd *string) {
	o.mu.Lock()
	o.d.GitExternCmds.PushBase = cmd
	o.mu.Unlock()
	o.save()
}

func (o *Options) SetGitExternFetch(cmd *string) {
	o.mu.Lock()
	o.d.GitExternCmds.FetchBase = cmd
	o.mu.Unlock()
	o.save()
}

func (o *Options) SetGitExternCheckout(cmd *string) {
	o.mu.Lock()
	o.d.GitExternCmds.CheckoutBase = cmd
	o.mu.Unlock()
	o.save()
}

// --- external commands ---

func (o *Options) ExternCommands() []ExternCmd {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]ExternCmd, len(o.d.ExternCmds))
	copy(out, o.d.ExternCmds)
	return out
}

// AddExternCommand inserts cmd at the front, deduplicating by exact command
// string (a no-op if cmd is already present).
func (o *Options) AddExternCommand(cmd string) {
	o.mu.Lock()
	for _, e := range o.d.ExternCmds {
		if e.Command == cmd {
			o.mu.Unlock()
			return
		}
	}
	o.d.ExternCmds = append([]ExternCmd{{Command: cmd}}, o.d.ExternCmds...)
	o.mu.Unlock()
	o.save()
}

// RemoveExternCommand removes the entry at idx, returning the index that
// should now be selected: idx, or idx-1 when the removed entry was the last
// one. An out-of-range idx removes nothing and returns 0.
func (o *Options) RemoveExternCommand(idx int) int {
	o.mu.Lock()
	defer func() { o.mu.Unlock(); o.save() }()
	if idx < 0 || idx >= len(o.d.ExternCmds) {
		return 0
	}
	o.d.ExternCmds = append(o.d.ExternCmds[:idx], o.d.ExternCmds[idx+1:]...)
	if idx == len(o.d.ExternCmds) && idx > 0 {
		return idx - 1
	}
	return idx
}

func (o *Options) AssignExternShortcut(idx int, shortcut *Event) {
	o.mu.Lock()
	if idx >= 0 && idx < len(o.d.ExternCmds) {
		o.d.ExternCmds[idx].Shortcut = shortcut
	}
	o.mu.Unlock()
	o.save()
}

func (o *Options) ClearAllExternShortcuts() {
	o.mu.Lock()
	for i := range o.d.ExternCmds {
		o.d.ExternCmds[i].Shortcut = nil
	}
	o.mu.Unlock()
	o.save()
}

func (o *Options) FindExternCmdForShortcut(e Event) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, c := range o.d.ExternCmds {
		if c.Shortcut != nil && *c.Shortcut == e {
			return c.Command, true
		}
	}
	return "", false
}

// --- branch shortcuts ---

// AssignBranchShortcut binds branch to e, replacing any prior binding for
// the same branch name (branch shortcuts are global, one per branch).
func (o *Options) AssignBranchShortcut(branch string, e Event) {
	o.mu.Lock()
	found := false
	for i := range o.d.BranchShortcuts {
		if o.d.BranchShortcuts[i].Branch == branch {
			o.d.BranchShortcuts[i].Shortcut = e
			found = true
			break
		}
	}
	if !found {
		o.d.BranchShortcuts = append(o.d.BranchShortcuts, BranchShortcut{Branch: branch, Shortcut: e})
	}
	o.mu.Unlock()
	o.save()
}

// RemoveBranchShortcut is idempotent: removing an absent binding is a no-op.
func (o *Options) RemoveBranchShortcut(branch string) {
	o.mu.Lock()
	kept := o.d.BranchShortcuts[:0]
	for _, b := range o.d.BranchShortcuts {
		if b.Branch != branch {
			kept = append(kept, b)
		}
	}
	o.d.BranchShortcuts = kept
	o.mu.Unlock()
	o.save()
}

func (o *Options) ClearAllBranchShortcuts() {
	o.mu.Lock()
	o.d.BranchShortcuts = nil
	o.mu.Unlock()
	o.save()
}

func (o *Options) FindBranchByShortcut(e Event) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, b := range o.d.BranchShortcuts {
		if b.Shortcut == e {
			return b.Branch, true
		}
	}
	return "", false
}

func (o *Options) HasAnyBranchShortcuts() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.d.BranchShortcuts) > 0
}

// --- commit message history ---

// AddCommitMsg pushes msg onto the ring, discarding the oldest entry once
// the ring exceeds CommitMsgHistoryLen.
func (o *Options) AddCommitMsg(msg string) {
	o.mu.Lock()
	o.d.CommitMsgs = append(o.d.CommitMsgs, msg)
	for len(o.d.CommitMsgs) > CommitMsgHistoryLen {
		o.d.CommitMsgs = o.d.CommitMsgs[1:]
	}
	o.mu.Unlock()
	o.save()
}

func (o *Options) HasCommitMsgHistory() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.d.CommitMsgs) > 0
}

// CommitMsg returns the idx'th most recent message (0 = most recent),
// wrapping modulo the ring length.
func (o *Options) CommitMsg(idx int) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := len(o.d.CommitMsgs)
	if n == 0 {
		return "", false
	}
	idx %= n
	pos := n - 1 - idx
	return o.d.CommitMsgs[pos], true
}

// --- persistence ---

func (o *Options) save() {
	if err := o.saveFailable(); err != nil {
		gitlog.Errorf("options save error: %v", err)
	}
}

func (o *Options) saveFailable() error {
	o.mu.Lock()
	d := o.d
	o.mu.Unlock()

	path := o.file()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("options: mkdir: %w", err)
	}

	lockPath := path + ".lock"
	fl := flock.New(lockPath)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("options: lock: %w", err)
	}
	defer fl.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(marshal(d)), 0o600); err != nil {
		return fmt.Errorf("options: write temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("options: rename: %w", err)
	}
	return nil
}

func read(path string) (data, error) {
	b, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return data{}, err
	}
	return unmarshal(string(b))
}
