package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/theorlangur/gitui/internal/dispatch"
	"github.com/theorlangur/gitui/internal/gitx"
	"github.com/theorlangur/gitui/internal/log"
)

// activeProgram is the running bubbletea program, if any, so recoverPanic
// can force the terminal back to its original state from outside the
// normal event loop. Grounded on the teacher's cmd/lazyworktree/main.go,
// which instead relies on p.Run() returning normally; a self-dispatching
// sequence-editor binary means gitui can panic while mid-rebase, so the
// handle is kept package-level rather than only a local in runUI.
var (
	activeProgramMu sync.Mutex
	activeProgram   *tea.Program
)

// runUI opens repoPath (defaulting to the working directory) as a git
// repository, starts the event dispatcher alongside the bubbletea program,
// and drives both until the user quits or an unrecoverable error occurs.
func runUI(repoPath string) error {
	if repoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("gitui: %w", err)
		}
		repoPath = wd
	}

	repo, err := gitx.Open(repoPath)
	if err != nil {
		return err
	}
	log.SetRepoContext(repo.Path)

	m := newModel(repo)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	activeProgramMu.Lock()
	activeProgram = p
	activeProgramMu.Unlock()

	bridge := &dispatchBridge{send: p.Send}
	m.bridge = bridge

	watcher, werr := fsnotify.NewWatcher()
	if werr != nil {
		log.Errorf("gitui: filesystem watcher unavailable: %v", werr)
		watcher = nil
	} else if err := watcher.Add(repo.GitDir()); err != nil {
		log.Errorf("gitui: watch %s: %v", repo.GitDir(), err)
		watcher.Close() //nolint:errcheck
		watcher = nil
	}

	disp := dispatch.New(bridge, nil, m.gitAsync, m.appAsync, m.queue, watcher)
	go disp.Run()

	_, err = p.Run()

	disp.Stop()
	if watcher != nil {
		watcher.Close() //nolint:errcheck
	}

	activeProgramMu.Lock()
	activeProgram = nil
	activeProgramMu.Unlock()

	return err
}

// restoreTerminal force-releases the terminal from whatever bubbletea
// program is running, used by recoverPanic so a panic mid-render never
// leaves the user's shell in raw/alt-screen mode.
func restoreTerminal() {
	activeProgramMu.Lock()
	p := activeProgram
	activeProgramMu.Unlock()
	if p != nil {
		p.ReleaseTerminal() //nolint:errcheck
	}
}
