// Package rebaseipc coordinates an interactive `git rebase` with a
// second instance of this binary acting as Git's sequence editor: the two
// processes exchange the todo-file path over a small shared memory
// region, synchronized by a ready/shutdown event pair. Grounded on the
// original gitui's asyncgit rebase-editor IPC (src/sync/rebase.rs) and the
// bubbletea-based process-dispatch style of the teacher's cmd/ entrypoint.
package rebaseipc

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/theorlangur/gitui/internal/gitmodel"
	"github.com/theorlangur/gitui/internal/gitx"
	"github.com/theorlangur/gitui/internal/log"
)

const (
	regionSize    = 4096
	readyTimeout  = 5 * time.Second
	lenFieldSize  = 8 // usize on the wire, fixed at 8 bytes for portability
)

// Layout offsets. The "events" themselves live out-of-band (sibling marker
// files, see event.go); the region only carries the payload, matching
// Design Note "Shared memory layout": offsets are computed once and
// referred to thereafter rather than recomputed inline.
const (
	offsetLen  = 0
	offsetData = offsetLen + lenFieldSize
)

func shmPath(id string) string {
	return filepath.Join(os.TempDir(), "gitui_"+id)
}

// channel is one end of the handshake: owns the region and both events.
type channel struct {
	id     string
	region *region
	ready  *event
	shut   *event
}

func open(id string, create bool) (*channel, error) {
	r, err := openRegion(id, create)
	if err != nil {
		return nil, err
	}
	return &channel{
		id:     id,
		region: r,
		ready:  newEvent(id, "ready"),
		shut:   newEvent(id, "shutdown"),
	}, nil
}

func (c *channel) close() {
	c.region.close()
}

func (c *channel) remove() {
	c.region.remove(c.id)
	c.ready.cleanup()
	c.shut.cleanup()
}

// putStr writes a length-prefixed UTF-8 string into the region's data
// slot. The fixed form from Open Question (c): the byte range written is
// [offsetData, offsetData+len), never [0, *len).
func (c *channel) putStr(s string) error {
	b := []byte(s)
	if offsetData+len(b) > regionSize {
		return fmt.Errorf("rebaseipc: payload too large for shared region (%d bytes)", len(b))
	}
	var lenBuf [lenFieldSize]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(b)))
	if err := c.region.writeAt(lenBuf[:], offsetLen); err != nil {
		return err
	}
	return c.region.writeAt(b, offsetData)
}

// getStr reads the length-prefixed string back. Treats the fixed form as
// authoritative per Open Question (c): the original source's
// `..*str_len` slices from byte 0, which silently drops the length
// prefix's own bytes from the returned string; the corrected form reads
// exactly [offsetData, offsetData+len).
func (c *channel) getStr() (string, error) {
	var lenBuf [lenFieldSize]byte
	if err := c.region.readAt(lenBuf[:], offsetLen); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint64(lenBuf[:])
	if offsetData+int(n) > regionSize {
		return "", fmt.Errorf("rebaseipc: corrupt length prefix %d", n)
	}
	buf := make([]byte, n)
	if err := c.region.readAt(buf, offsetData); err != nil {
		return "", err
	}
	return string(buf), nil
}

// helperScriptName returns the OS-appropriate helper script name for pid.
func helperScriptName(pid int) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("edit%d.bat", pid)
	}
	return fmt.Sprintf("edit%d.sh", pid)
}

// writeHelperScript writes the sequence-editor helper script that Git
// will invoke in place of a real editor: it re-execs this same binary
// with --event_id/--type rebase and the todo path Git passes it.
func writeHelperScript(dir string, pid int, selfExe string) (string, error) {
	path := filepath.Join(dir, helperScriptName(pid))
	var content string
	if runtime.GOOS == "windows" {
		content = fmt.Sprintf("@echo off\r\n\"%s\" --event_id %d --type rebase %%1\r\n", selfExe, pid)
	} else {
		content = fmt.Sprintf("#!/bin/sh\nexec %q --event_id %d --type rebase \"$1\"\n", selfExe, pid)
	}
	if err := os.WriteFile(path, []byte(content), 0o777); err != nil {
		return "", fmt.Errorf("rebaseipc: writing helper script: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(path, 0o777); err != nil {
			return "", fmt.Errorf("rebaseipc: chmod helper script: %w", err)
		}
	}
	return path, nil
}

// RebaseInteractive runs `git rebase -i <base>` via the sequence-editor
// helper, invoking mutate (if non-nil) on the todo file once the child
// reports ready, then signals shutdown and waits for the child to exit.
// mutate may be nil, in which case the todo is left untouched (the user
// is expected to have configured git itself, or this is only used to
// drive drop/fixup below).
func RebaseInteractive(repo *gitx.Repo, base string, mutate func(todoPath string) error) error {
	pid := os.Getpid()
	id := fmt.Sprintf("%d", pid)

	ch, err := open(id, true)
	if err != nil {
		return fmt.Errorf("rebaseipc: %w", err)
	}
	defer ch.close()
	defer ch.remove()

	if err := ch.ready.arm(); err != nil {
		return err
	}
	if err := ch.shut.arm(); err != nil {
		return err
	}

	selfExe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("rebaseipc: locating self binary: %w", err)
	}
	scriptPath, err := writeHelperScript(os.TempDir(), pid, selfExe)
	if err != nil {
		return err
	}
	defer os.Remove(scriptPath)

	done := make(chan error, 1)
	go func() {
		_, runErr := gitx.RunGit(repo.Path,
			"-c", "sequence.editor="+scriptPath,
			"-c", "rebase.instructionFormat=%H",
			"rebase", "-i", base,
		)
		done <- runErr
	}()

	if err := ch.ready.wait(readyTimeout); err != nil {
		return fmt.Errorf("rebaseipc: waiting for a sequence editor to start failed: %w", err)
	}

	todoPath, err := ch.getStr()
	if err != nil {
		return fmt.Errorf("rebaseipc: reading todo path: %w", err)
	}

	if mutate != nil {
		if err := mutate(todoPath); err != nil {
			log.Errorf("rebaseipc: mutate_todo failed: %v", err)
		}
	}

	if err := ch.shut.signal(); err != nil {
		return fmt.Errorf("rebaseipc: signaling shutdown: %w", err)
	}

	return <-done
}

// RebaseDropCommits rebases interactively onto base, translating every
// todo line whose full hash is in hashes to Drop.
func RebaseDropCommits(repo *gitx.Repo, hashes map[string]bool, base string) error {
	return RebaseInteractive(repo, base, retargetMutator(hashes, gitmodel.OpDrop))
}

// RebaseFixupCommits is the Fixup analog of RebaseDropCommits.
func RebaseFixupCommits(repo *gitx.Repo, hashes map[string]bool, base string) error {
	return RebaseInteractive(repo, base, retargetMutator(hashes, gitmodel.OpFixup))
}

// RebaseContinue, RebaseAbort, RebaseSkip drive an in-progress rebase;
// unlike RebaseInteractive they need no IPC handshake, so they delegate
// straight to gitx.
func RebaseContinue(repo *gitx.Repo) error { return repo.RebaseContinue() }
func RebaseAbort(repo *gitx.Repo) error     { return repo.RebaseAbort() }
func RebaseSkip(repo *gitx.Repo) error      { return repo.RebaseSkip() }

func retargetMutator(hashes map[string]bool, op gitmodel.TodoOp) func(string) error {
	return func(todoPath string) error {
		raw, err := os.ReadFile(todoPath)
		if err != nil {
			return fmt.Errorf("rebaseipc: reading todo file: %w", err)
		}
		lines := gitmodel.ParseTodoFile(string(raw))
		gitmodel.RetargetOp(lines, hashes, op)
		out := gitmodel.SerializeTodoFile(lines)
		return os.WriteFile(todoPath, []byte(out), 0o644)
	}
}
