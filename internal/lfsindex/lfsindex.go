// Package lfsindex builds the process-global, immutable table of
// LFS-tracked paths read once at startup via `git lfs ls-files`, per
// spec.md's Design Note on global state: an immutable handle, never a
// mutable global.
package lfsindex

import (
	"os/exec"
	"strings"
)

// Table is an immutable set of repo-relative paths tracked by Git LFS.
type Table struct {
	paths map[string]struct{}
}

// Build runs `git lfs ls-files -n` in repoPath. Absence of the git-lfs
// binary, or any other failure, yields an empty (not nil) table - LFS
// awareness is a convenience, not a hard dependency.
func Build(repoPath string) Table {
	cmd := exec.Command("git", "lfs", "ls-files", "-n")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	t := Table{paths: map[string]struct{}{}}
	if err != nil {
		return t
	}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			t.paths[line] = struct{}{}
		}
	}
	return t
}

// IsTracked reports whether path is recorded as LFS-tracked.
func (t Table) IsTracked(path string) bool {
	_, ok := t.paths[path]
	return ok
}
