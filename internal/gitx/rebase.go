package gitx

import "fmt"

// RebaseContinue, RebaseAbort, RebaseSkip drive an in-progress `git rebase`
// started by the IPC rebase channel (internal/rebaseipc). They are plain
// wrappers: the interesting coordination lives in rebaseipc, which invokes
// `git rebase -i` itself with a sequence.editor override.

func (r *Repo) RebaseContinue() error {
	if _, err := r.run("rebase", "--continue"); err != nil {
		return fmt.Errorf("gitx: rebase --continue: %w", err)
	}
	return nil
}

func (r *Repo) RebaseAbort() error {
	if _, err := r.run("rebase", "--abort"); err != nil {
		return fmt.Errorf("gitx: rebase --abort: %w", err)
	}
	return nil
}

func (r *Repo) RebaseSkip() error {
	if _, err := r.run("rebase", "--skip"); err != nil {
		return fmt.Errorf("gitx: rebase --skip: %w", err)
	}
	return nil
}

// CherryPick applies commit onto HEAD, stopping (returning an error) on the
// first conflict - callers loop over marked commits and stop at the first
// error without rolling back already-applied picks, matching spec.md's
// Design Note (a): the source does not roll back, and gitui mirrors that.
func (r *Repo) CherryPick(commit string) error {
	if _, err := r.run("cherry-pick", commit); err != nil {
		return fmt.Errorf("gitx: cherry-pick %s: %w", commit, err)
	}
	return nil
}

// IsRepoClean reports whether the working tree and index have no pending
// changes - interactive rebase, drop, and fixup are only offered when true.
func (r *Repo) IsRepoClean() (bool, error) {
	out, err := r.run("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("gitx: status: %w", err)
	}
	return out == "", nil
}
