package gitx

import (
	"fmt"
	"os"
	"strings"

	"github.com/theorlangur/gitui/internal/gitmodel"
)

// patchForHunk reconstructs a minimal, applicable unified-diff patch for a
// single hunk of path, so stage/unstage/reset can operate hunk-by-hunk
// without touching the rest of the file's changes.
func patchForHunk(path string, hunk gitmodel.Hunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, l := range hunk.Lines {
		switch l.Type {
		case gitmodel.LineHeader:
			b.WriteString(l.Content)
			b.WriteByte('\n')
		case gitmodel.LineAdd:
			b.WriteString("+" + l.Content + "\n")
		case gitmodel.LineDelete:
			b.WriteString("-" + l.Content + "\n")
		case gitmodel.LineContext:
			b.WriteString(" " + l.Content + "\n")
		}
	}
	return b.String()
}

// applyPatch feeds patch to `git apply` with the given extra flags via a
// temp file (portable across platforms unlike piping through stdin with
// exec.Cmd.Stdin set to a string, which the teacher's style avoids in
// favor of explicit file handling - see internal/git/service.go's use of
// os.CreateTemp for large inputs).
func (r *Repo) applyPatch(patch string, extraArgs ...string) error {
	f, err := os.CreateTemp("", "gitui-patch-*.diff")
	if err != nil {
		return fmt.Errorf("gitx: create patch temp file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(patch); err != nil {
		f.Close()
		return fmt.Errorf("gitx: write patch temp file: %w", err)
	}
	f.Close()

	args := append([]string{"apply"}, extraArgs...)
	args = append(args, f.Name())
	if _, err := r.run(args...); err != nil {
		return fmt.Errorf("gitx: apply patch: %w", err)
	}
	return nil
}

// StageHunk applies hunk to the index (`git apply --cached`).
func (r *Repo) StageHunk(path string, hunk gitmodel.Hunk) error {
	return r.applyPatch(patchForHunk(path, hunk), "--cached")
}

// UnstageHunk reverses hunk out of the index (`git apply -R --cached`).
func (r *Repo) UnstageHunk(path string, hunk gitmodel.Hunk) error {
	return r.applyPatch(patchForHunk(path, hunk), "-R", "--cached")
}

// ResetHunk discards hunk from the working tree (`git apply -R`).
func (r *Repo) ResetHunk(path string, hunk gitmodel.Hunk) error {
	return r.applyPatch(patchForHunk(path, hunk), "-R")
}

// StageLines stages only the given add/delete lines of hunk (by index into
// hunk.Lines), used when the user's selection covers a subset of a hunk.
func (r *Repo) StageLines(path string, hunk gitmodel.Hunk, lineIdx map[int]bool, staged bool) error {
	filtered := gitmodel.Hunk{HeaderHash: hunk.HeaderHash}
	for i, l := range hunk.Lines {
		if l.Type == gitmodel.LineHeader || l.Type == gitmodel.LineContext || lineIdx[i] {
			filtered.Lines = append(filtered.Lines, l)
			continue
		}
		// Lines outside the selection are kept as context so the patch
		// still applies cleanly against the current tree/index.
		kept := l
		kept.Type = gitmodel.LineContext
		filtered.Lines = append(filtered.Lines, kept)
	}
	args := []string{}
	if staged {
		args = append(args, "--cached")
	}
	return r.applyPatch(patchForHunk(path, filtered), args...)
}
