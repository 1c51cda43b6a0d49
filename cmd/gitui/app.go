package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theorlangur/gitui/internal/asyncjob"
	"github.com/theorlangur/gitui/internal/blameview"
	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/commitlist"
	"github.com/theorlangur/gitui/internal/dispatch"
	"github.com/theorlangur/gitui/internal/diffview"
	"github.com/theorlangur/gitui/internal/gitjobs"
	"github.com/theorlangur/gitui/internal/gitmodel"
	"github.com/theorlangur/gitui/internal/gitx"
	"github.com/theorlangur/gitui/internal/jobqueue"
	"github.com/theorlangur/gitui/internal/keybinding"
	"github.com/theorlangur/gitui/internal/lfsindex"
	"github.com/theorlangur/gitui/internal/log"
	"github.com/theorlangur/gitui/internal/logwalker"
	"github.com/theorlangur/gitui/internal/options"
	"github.com/theorlangur/gitui/internal/workerpool"
)

// focusPane names which top-level pane owns keystrokes.
type focusPane int

const (
	paneCommits focusPane = iota
	paneDiff
	paneBlame
)

// commitsPerPage bounds how many commits one logwalker.Read call admits
// into the commit list's in-memory window.
const commitsPerPage = 500

// model is the bubbletea root model: the composition root tying every
// headless component together with rendering and keybinding dispatch.
// Grounded on the teacher's internal/app.Model (a single struct embedding
// every sub-widget plus a focus enum), generalized from worktree
// management to the commit/diff/blame/rebase domain.
type model struct {
	repo *gitx.Repo
	opts *options.Options
	keys keybinding.Table
	lfs  lfsindex.Table

	queue    *jobqueue.Queue
	gitAsync chan dispatch.Notification
	appAsync chan dispatch.Notification
	bridge   *dispatchBridge

	branches []gitmodel.Branch
	tags     gitmodel.TagSet

	commits *commitlist.List
	diff    *diffview.View
	blame   *blameview.View

	diffFiles []string
	diffDiffs []gitmodel.FileDiff
	diffIdx   int

	lastExtern *gitx.ExternCmdResult
	lastErr    string

	spinner spinner.Model
	focus   focusPane

	width, height int
	quitting      bool

	returnedFromEditor bool
}

func newModel(repo *gitx.Repo) *model {
	opts := options.New(repo.Path, repo.GitDir())
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	focus := focusPane(opts.CurrentTab())
	if focus < paneCommits || focus > paneBlame {
		focus = paneCommits
	}

	return &model{
		repo:     repo,
		opts:     opts,
		keys:     keybinding.Default(),
		lfs:      lfsindex.Build(repo.Path),
		queue:    jobqueue.New(8),
		gitAsync: make(chan dispatch.Notification, 32),
		appAsync: make(chan dispatch.Notification, 32),
		commits:  commitlist.New(),
		spinner:  sp,
		focus:    focus,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadBranchesCmd(), m.loadTagsCmd(), m.loadCommitsCmd())
}

// notifyAsync forwards a coarse completion notice onto the dispatcher's
// git-async channel without risking a block if the dispatcher is mid-loop;
// a full channel just means the coalesced signal was already pending.
func (m *model) notifyAsync(n gitjobs.Notification) {
	select {
	case m.gitAsync <- dispatch.Notification(n):
	default:
	}
}

// branchesLoadedMsg / tagsLoadedMsg / commitsLoadedMsg carry the result of
// the corresponding async job back into Update, the bubbletea-command
// equivalent of the dispatcher's "route async notification via type" step.
type branchesLoadedMsg struct {
	branches []gitmodel.Branch
	err      error
}

type tagsLoadedMsg struct {
	tags gitmodel.TagSet
	err  error
}

type commitsLoadedMsg struct {
	batch commitlist.ItemBatch
	total int
	err   error
}

type diffOpenedMsg struct {
	files []string
	diffs []gitmodel.FileDiff
	err   error
}

type blameOpenedMsg struct {
	view *blameview.View
	err  error
}

type branchCheckedOutMsg struct {
	branch string
	err    error
}

type externCmdResultMsg struct {
	result gitx.ExternCmdResult
}

// dispatchCoarseTickMsg / dispatchFineTickMsg / dispatchAsyncMsg /
// dispatchRedrawMsg are sent by dispatchBridge from the dispatch.Dispatcher
// goroutine via p.Send, so every real mutation still happens on
// bubbletea's own Update goroutine.
type dispatchCoarseTickMsg struct{}
type dispatchFineTickMsg struct{}
type dispatchAsyncMsg struct{ n dispatch.Notification }
type dispatchRedrawMsg struct{}

// loadBranchesCmd runs gitjobs.BranchesJob on its own goroutine via
// asyncjob.NewHandle and blocks only the returned tea.Cmd's goroutine on
// completion - the genuinely async counterpart to calling job.Run()
// synchronously inside the Cmd closure.
func (m *model) loadBranchesCmd() tea.Cmd {
	job := &gitjobs.BranchesJob{Repo: m.repo}
	h := asyncjob.NewHandle[gitjobs.Notification](job, nil, nil)
	return func() tea.Msg {
		<-h.Done()
		err := h.Err()
		if err == nil {
			m.notifyAsync(gitjobs.NotifyBranches)
		}
		return branchesLoadedMsg{branches: job.Result, err: err}
	}
}

func (m *model) loadTagsCmd() tea.Cmd {
	job := &gitjobs.TagsJob{Repo: m.repo}
	h := asyncjob.NewHandle[gitjobs.Notification](job, nil, nil)
	return func() tea.Msg {
		<-h.Done()
		err := h.Err()
		if err == nil {
			m.notifyAsync(gitjobs.NotifyTags)
		}
		return tagsLoadedMsg{tags: job.Result, err: err}
	}
}

// loadCommitsCmd walks the commit DAG with internal/logwalker and feeds the
// result to the commit list, overlaying tag/branch data per commit.
func (m *model) loadCommitsCmd() tea.Cmd {
	return func() tea.Msg {
		w, err := logwalker.New(m.repo, commitid.Zero, commitsPerPage)
		if err != nil {
			return commitsLoadedMsg{err: err}
		}
		var ids []commitid.ID
		if _, err := w.Read(&ids); err != nil {
			return commitsLoadedMsg{err: err}
		}
		metas, err := m.repo.GetCommitsInfo(ids, 0)
		if err != nil {
			return commitsLoadedMsg{err: err}
		}

		tops := make(map[string][]gitmodel.Branch)
		for _, b := range m.branches {
			tops[b.Top.String()] = append(tops[b.Top.String()], b)
		}

		items := make([]commitlist.Item, 0, len(ids))
		for _, id := range ids {
			meta, ok := metas[id.String()]
			if !ok {
				continue
			}
			item := commitlist.Item{
				Commit: gitmodel.LogEntry{
					ShortHash: id.Short(),
					FullHash:  id.String(),
					Author:    meta.Author,
					Time:      meta.Time,
					Summary:   meta.Summary,
				},
				Tags: m.tags.Get(id),
			}
			for _, b := range tops[id.String()] {
				if b.IsLocal() {
					item.Local = append(item.Local, b)
				} else {
					item.Remote = append(item.Remote, b)
				}
			}
			items = append(items, item)
		}
		return commitsLoadedMsg{batch: commitlist.ItemBatch{Offset: 0, Items: items}, total: len(items)}
	}
}

// openDiffCmd resolves the selected commit's changed files and computes
// every one of them concurrently via the fixed worker pool (spec's "diff
// enumeration" use of internal/workerpool), opening the first file's diff.
func (m *model) openDiffCmd() tea.Cmd {
	sel, ok := m.selectedCommitID()
	if !ok {
		return func() tea.Msg { return diffOpenedMsg{err: fmt.Errorf("gitui: no commit selected")} }
	}
	opts := m.opts.DiffOptions()
	return func() tea.Msg {
		files, err := m.repo.ChangedFiles(sel.id)
		if err != nil {
			return diffOpenedMsg{err: err}
		}
		if len(files) == 0 {
			return diffOpenedMsg{err: fmt.Errorf("gitui: %s touches no files", sel.id.Short())}
		}
		pool := workerpool.New()
		diffs := workerpool.Map(pool, files, func(path string) gitmodel.FileDiff {
			fd, err := m.repo.CommitFileDiff(sel.id, path, opts)
			if err != nil {
				log.Errorf("diff %s %q: %v", sel.id.Short(), path, err)
			}
			return fd
		})
		return diffOpenedMsg{files: files, diffs: diffs}
	}
}

// nextDiffFile cycles the open diff view to the next changed file in the
// commit, reusing the diffs computed up front by openDiffCmd.
func (m *model) nextDiffFile() {
	if len(m.diffDiffs) == 0 {
		return
	}
	m.diffIdx = (m.diffIdx + 1) % len(m.diffDiffs)
	m.diff = diffview.New(m.diffDiffs[m.diffIdx])
}

// openBlameCmd blames the selected commit's first changed file via
// gitjobs.BlameJob, driven through the same asyncjob.Handle pattern as the
// branches/tags jobs rather than a synchronous job.Run() call.
func (m *model) openBlameCmd() tea.Cmd {
	sel, ok := m.selectedCommitID()
	if !ok {
		return func() tea.Msg { return blameOpenedMsg{err: fmt.Errorf("gitui: no commit selected")} }
	}
	return func() tea.Msg {
		files, err := m.repo.ChangedFiles(sel.id)
		if err != nil {
			return blameOpenedMsg{err: err}
		}
		if len(files) == 0 {
			return blameOpenedMsg{err: fmt.Errorf("gitui: %s touches no files", sel.id.Short())}
		}
		path := files[0]
		job := &gitjobs.BlameJob{Repo: m.repo, FilePath: path, Commit: sel.id}
		h := asyncjob.NewHandle[gitjobs.Notification](job, nil, nil)
		<-h.Done()
		if err := h.Err(); err != nil {
			return blameOpenedMsg{err: err}
		}
		m.notifyAsync(gitjobs.NotifyBlame)
		return blameOpenedMsg{view: blameview.New(blameview.Request{FilePath: path, Commit: sel.id}, job.Result)}
	}
}

// runExternCmdCmd submits an external command onto the dynamic job queue
// (rather than running it inline) and records it in the options history;
// its eventual gitx.ExternCmdResult arrives via the dispatcher draining
// jobqueue.Feedback and calling bridge.ApplyExternCmdResult.
func (m *model) runExternCmdCmd() tea.Cmd {
	return func() tea.Msg {
		cmds := m.opts.ExternCommands()
		cmd := "git status"
		if len(cmds) > 0 {
			cmd = cmds[0].Command
		} else {
			m.opts.AddExternCommand(cmd)
		}
		m.queue.Submit(gitjobs.ExternCmdJob{Dir: m.repo.Path, Cmd: cmd})
		return nil
	}
}

func (m *model) fetchCmd() tea.Cmd {
	job := gitjobs.FetchJob{Repo: m.repo}
	h := asyncjob.NewHandle[gitjobs.Notification](job, nil, nil)
	return func() tea.Msg {
		<-h.Done()
		err := h.Err()
		if err == nil {
			m.notifyAsync(gitjobs.NotifyFetch)
		}
		return commitActionMsg{action: "fetch", err: err}
	}
}

func (m *model) pullCmd() tea.Cmd {
	job := gitjobs.PullJob{Repo: m.repo}
	h := asyncjob.NewHandle[gitjobs.Notification](job, nil, nil)
	return func() tea.Msg {
		<-h.Done()
		err := h.Err()
		if err == nil {
			m.notifyAsync(gitjobs.NotifyPull)
		}
		if err == nil {
			return commitActionMsg{action: "pull"}
		}
		return commitActionMsg{action: "pull", err: err}
	}
}

func (m *model) pushCmd() tea.Cmd {
	return func() tea.Msg {
		branch, err := m.repo.CurrentBranch()
		if err != nil {
			return commitActionMsg{action: "push", err: err}
		}
		job := gitjobs.PushJob{Repo: m.repo, Remote: "origin", Ref: branch, Kind: gitx.PushBranch}
		h := asyncjob.NewHandle[gitjobs.Notification](job, nil, nil)
		<-h.Done()
		jerr := h.Err()
		if jerr == nil {
			m.notifyAsync(gitjobs.NotifyPush)
		}
		return commitActionMsg{action: "push", err: jerr}
	}
}

// appEvent names an app-level (as opposed to git-job) async completion,
// forwarded on the dispatcher's appAsync channel - distinct from
// gitjobs.Notification, which only ever travels on gitAsync.
type appEvent int

const appEventBranchCheckedOut appEvent = iota

func (m *model) checkoutBranchCmd(branch string) tea.Cmd {
	return func() tea.Msg {
		err := m.repo.CheckoutBranch(branch)
		if err == nil {
			select {
			case m.appAsync <- dispatch.Notification(appEventBranchCheckedOut):
			default:
			}
		}
		return branchCheckedOutMsg{branch: branch, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case branchesLoadedMsg:
		if msg.err != nil {
			log.Errorf("loading branches: %v", msg.err)
			return m, nil
		}
		m.branches = msg.branches
		return m, nil

	case tagsLoadedMsg:
		if msg.err != nil {
			log.Errorf("loading tags: %v", msg.err)
			return m, nil
		}
		m.tags = msg.tags
		return m, nil

	case commitsLoadedMsg:
		if msg.err != nil {
			log.Errorf("loading commits: %v", msg.err)
			return m, nil
		}
		m.commits.SetBatch(msg.batch, msg.total)
		return m, nil

	case diffOpenedMsg:
		if msg.err != nil {
			log.Errorf("opening diff: %v", msg.err)
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.diffFiles = msg.files
		m.diffDiffs = msg.diffs
		m.diffIdx = 0
		m.diff = diffview.New(msg.diffs[0])
		m.focus = paneDiff
		m.opts.SetCurrentTab(int(m.focus))
		return m, nil

	case blameOpenedMsg:
		if msg.err != nil {
			log.Errorf("opening blame: %v", msg.err)
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.blame = msg.view
		m.focus = paneBlame
		m.opts.SetCurrentTab(int(m.focus))
		return m, nil

	case branchCheckedOutMsg:
		if msg.err != nil {
			log.Errorf("checkout %s: %v", msg.branch, msg.err)
			m.lastErr = msg.err.Error()
			return m, nil
		}
		return m, m.loadCommitsCmd()

	case externCmdResultMsg:
		res := msg.result
		m.lastExtern = &res
		return m, nil

	case dispatchCoarseTickMsg:
		return m, tea.Batch(m.loadBranchesCmd(), m.loadTagsCmd())

	case dispatchFineTickMsg:
		return m, m.loadCommitsCmd()

	case dispatchAsyncMsg, dispatchRedrawMsg:
		return m, nil

	case commitActionMsg:
		if msg.err != nil {
			log.Errorf("%s: %v", msg.action, msg.err)
			m.lastErr = msg.err.Error()
			return m, nil
		}
		return m, m.loadCommitsCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// commitActionMsg reports the result of an action triggered from the
// commits pane (rebase -i, drop, fixup, cherry-pick, fetch, push, pull).
type commitActionMsg struct {
	action string
	err    error
}

// toOptionsEvent converts a bubbletea key message into the options
// store's UI-framework-agnostic Event shape, so branch/extern-command
// shortcuts persisted by options can be matched against live keystrokes
// without options importing keybinding.
func toOptionsEvent(msg tea.KeyMsg) options.Event {
	code := int64(msg.Type)
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		code = int64(msg.Runes[0])
	}
	var mods int64
	if msg.Alt {
		mods = 1
	}
	return options.Event{Code: code, Mods: mods}
}

// handleKey matches the incoming key against the configured bindings
// before falling back to pane navigation and, as a last resort, the
// options store's branch/extern-command shortcut tables.
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC || msg.String() == "q":
		m.quitting = true
		if m.bridge != nil {
			m.bridge.quit.Store(true)
		}
		return m, tea.Quit
	case msg.Type == tea.KeyUp || msg.String() == "k":
		if m.focus == paneCommits {
			m.commits.ScrollUp(time.Now())
		} else if m.focus == paneBlame && m.blame != nil {
			m.blame.MoveUp()
		}
	case msg.Type == tea.KeyDown || msg.String() == "j":
		if m.focus == paneCommits {
			m.commits.ScrollDown(time.Now())
		} else if m.focus == paneBlame && m.blame != nil {
			m.blame.MoveDown()
		}
	case msg.Type == tea.KeyHome:
		if m.focus == paneCommits {
			m.commits.Home()
		}
	case msg.Type == tea.KeyEnd:
		if m.focus == paneCommits {
			m.commits.End()
		}
	case msg.Type == tea.KeyTab:
		m.focus = (m.focus + 1) % 3
		m.opts.SetCurrentTab(int(m.focus))
	case msg.String() == " ":
		if m.focus == paneCommits {
			m.commits.ToggleMark()
		}
	case m.focus == paneCommits && m.keys["RebaseInteractive"].Match(msg):
		return m, m.triggerRebaseInteractiveCmd()
	case m.focus == paneCommits && m.keys["DropCommit"].Match(msg):
		return m, m.triggerDropMarkedCmd()
	case m.focus == paneCommits && m.keys["FixupCommit"].Match(msg):
		return m, m.triggerFixupMarkedCmd()
	case m.focus == paneCommits && m.keys["CherryPick"].Match(msg):
		return m, m.triggerCherryPickMarkedCmd()
	case m.focus == paneCommits && m.keys["OpenDiff"].Match(msg):
		return m, m.openDiffCmd()
	case m.focus == paneCommits && m.keys["BlameOpen"].Match(msg):
		return m, m.openBlameCmd()
	case m.keys["Fetch"].Match(msg):
		return m, m.fetchCmd()
	case m.keys["Push"].Match(msg):
		return m, m.pushCmd()
	case m.keys["Pull"].Match(msg):
		return m, m.pullCmd()
	case m.keys["RunExternCmd"].Match(msg):
		return m, m.runExternCmdCmd()
	case m.focus == paneDiff && m.diff != nil && m.keys["DiffNextFile"].Match(msg):
		m.nextDiffFile()
	case m.focus == paneDiff && m.diff != nil && m.keys["DiffToggleWhitespace"].Match(msg):
		m.opts.DiffToggleWhitespace()
		return m, m.openDiffCmd()
	case m.focus == paneDiff && m.diff != nil && m.keys["DiffStageHunk"].Match(msg) && len(m.diffFiles) > 0:
		if err := m.diff.StageSelectedHunk(m.repo, m.diffFiles[m.diffIdx]); err != nil {
			log.Errorf("stage hunk: %v", err)
		}
	case m.focus == paneDiff && m.diff != nil && m.keys["DiffUnstageHunk"].Match(msg) && len(m.diffFiles) > 0:
		if err := m.diff.UnstageSelectedHunk(m.repo, m.diffFiles[m.diffIdx]); err != nil {
			log.Errorf("unstage hunk: %v", err)
		}
	case m.focus == paneDiff && m.diff != nil && m.keys["DiffReset"].Match(msg) && len(m.diffFiles) > 0:
		if err := m.diff.ResetSelectedHunk(m.repo, m.diffFiles[m.diffIdx]); err != nil {
			log.Errorf("reset hunk: %v", err)
		}
	case m.focus == paneBlame && m.blame != nil && m.keys["BlameSearch"].Match(msg):
		m.blame.BeginSearchEditing()
	default:
		if branch, ok := m.opts.FindBranchByShortcut(toOptionsEvent(msg)); ok {
			return m, m.checkoutBranchCmd(branch)
		}
	}
	return m, nil
}

// commitSelection is the selected commit's id plus its resolved parents,
// enough context to drive any of the rebase-triggering actions.
type commitSelection struct {
	id      commitid.ID
	parents []commitid.ID
}

func (m *model) selectedCommitID() (commitSelection, bool) {
	item, ok := m.commits.SelectedItem()
	if !ok {
		return commitSelection{}, false
	}
	id, err := commitid.ParseHex(item.Commit.FullHash)
	if err != nil {
		return commitSelection{}, false
	}
	parents, err := m.repo.Parents(id)
	if err != nil {
		return commitSelection{}, false
	}
	return commitSelection{id: id, parents: parents}, true
}

func (m *model) triggerRebaseInteractiveCmd() tea.Cmd {
	return func() tea.Msg {
		sel, ok := m.selectedCommitID()
		if !ok {
			return commitActionMsg{action: "rebase", err: fmt.Errorf("gitui: no commit selected")}
		}
		err := commitlist.TriggerRebaseInteractive(m.repo, sel.id, sel.parents)
		return commitActionMsg{action: "rebase", err: err}
	}
}

func (m *model) triggerDropMarkedCmd() tea.Cmd {
	return func() tea.Msg {
		sel, ok := m.selectedCommitID()
		if !ok || len(sel.parents) == 0 {
			return commitActionMsg{action: "drop", err: fmt.Errorf("gitui: no base commit")}
		}
		err := commitlist.TriggerDropMarked(m.repo, sel.parents[0], m.commits.MarkedIDs())
		if err == nil {
			m.commits.ClearMarks()
		}
		return commitActionMsg{action: "drop", err: err}
	}
}

func (m *model) triggerFixupMarkedCmd() tea.Cmd {
	return func() tea.Msg {
		sel, ok := m.selectedCommitID()
		if !ok || len(sel.parents) == 0 {
			return commitActionMsg{action: "fixup", err: fmt.Errorf("gitui: no base commit")}
		}
		err := commitlist.TriggerFixupMarked(m.repo, sel.parents[0], m.commits.MarkedIDs())
		if err == nil {
			m.commits.ClearMarks()
		}
		return commitActionMsg{action: "fixup", err: err}
	}
}

func (m *model) triggerCherryPickMarkedCmd() tea.Cmd {
	return func() tea.Msg {
		err := commitlist.TriggerCherryPickMarked(m.repo, m.commits.MarkedIDs())
		if err == nil {
			m.commits.ClearMarks()
		}
		return commitActionMsg{action: "cherry-pick", err: err}
	}
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("gitui  %s", m.repo.Path))
	status := fmt.Sprintf("%s  marked=%d  pane=%d  commits=%d  branches=%d", m.spinner.View(), len(m.commits.Marked()), m.focus, m.commits.Total(), len(m.branches))
	if m.lastExtern != nil {
		status += fmt.Sprintf("  last-exit=%d", m.lastExtern.ExitCode)
	}
	if m.lastErr != "" {
		status += "  error=" + m.lastErr
	}
	return header + "\n" + status + "\n"
}

// dispatchBridge adapts *model to dispatch.App without letting the
// dispatcher goroutine mutate model state directly: every callback either
// reads an atomic flag the model itself keeps in sync, forwards a tea.Msg
// through send (bubbletea's own p.Send), or does nothing, so real state
// mutation still happens only on bubbletea's single Update goroutine.
type dispatchBridge struct {
	send     func(tea.Msg)
	quit     atomic.Bool
	returned atomic.Bool
}

// Update is the dispatcher's coarse (~5s) refresh hook.
func (b *dispatchBridge) Update() { b.send(dispatchCoarseTickMsg{}) }

// OnTick is the dispatcher's fine (per-iteration, fsnotify-driven) hook.
func (b *dispatchBridge) OnTick() { b.send(dispatchFineTickMsg{}) }

// HandleInput is a no-op: bubbletea reads stdin itself, so the
// dispatcher's input channel is wired to nil (a nil channel in a select
// blocks forever, which is exactly "no separate input source").
func (b *dispatchBridge) HandleInput(tea.KeyMsg) {}

func (b *dispatchBridge) HandleAsync(n dispatch.Notification) { b.send(dispatchAsyncMsg{n: n}) }

func (b *dispatchBridge) AdvanceSpinner() {}

func (b *dispatchBridge) ReturnedFromExternalEditor() bool { return b.returned.Load() }

func (b *dispatchBridge) HideCursor() {}

func (b *dispatchBridge) Redraw() {}

func (b *dispatchBridge) IsQuit() bool { return b.quit.Load() }

// ApplyExternCmdResult implements gitjobs.ExternCmdApplier so the dynamic
// job queue's feedback can reach the running bubbletea program.
func (b *dispatchBridge) ApplyExternCmdResult(res gitx.ExternCmdResult) {
	b.send(externCmdResultMsg{result: res})
}
