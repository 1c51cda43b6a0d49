package commitlist

import (
	"fmt"

	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitx"
	"github.com/theorlangur/gitui/internal/rebaseipc"
)

// RequireClean returns an error unless the repo has no pending changes;
// the rebase/drop/fixup/cherry-pick triggers are gated on this.
func RequireClean(repo *gitx.Repo) error {
	clean, err := repo.IsRepoClean()
	if err != nil {
		return fmt.Errorf("commitlist: checking repo state: %w", err)
	}
	if !clean {
		return fmt.Errorf("commitlist: repository has uncommitted changes")
	}
	return nil
}

// TriggerRebaseInteractive starts rebase -i against parents[0], the first
// parent of the selected commit, gated on a clean working tree.
func TriggerRebaseInteractive(repo *gitx.Repo, selected commitid.ID, parents []commitid.ID) error {
	if err := RequireClean(repo); err != nil {
		return err
	}
	base, ok := RebaseBaseFor(parents)
	if !ok {
		return fmt.Errorf("commitlist: %s has no parent to rebase onto", selected.Short())
	}
	return rebaseipc.RebaseInteractive(repo, base.String(), nil)
}

// TriggerDropMarked drops every marked commit (by full hash), gated on a
// clean working tree. On success the caller clears the mark list.
func TriggerDropMarked(repo *gitx.Repo, base commitid.ID, marked []commitid.ID) error {
	if err := RequireClean(repo); err != nil {
		return err
	}
	hashes := make(map[string]bool, len(marked))
	for _, id := range marked {
		hashes[id.String()] = true
	}
	return rebaseipc.RebaseDropCommits(repo, hashes, base.String())
}

// TriggerFixupMarked fixups every marked commit into its predecessor.
func TriggerFixupMarked(repo *gitx.Repo, base commitid.ID, marked []commitid.ID) error {
	if err := RequireClean(repo); err != nil {
		return err
	}
	hashes := make(map[string]bool, len(marked))
	for _, id := range marked {
		hashes[id.String()] = true
	}
	return rebaseipc.RebaseFixupCommits(repo, hashes, base.String())
}

// TriggerCherryPickMarked cherry-picks every marked commit in order,
// stopping on the first error and leaving already-applied commits in
// place (Open Question (a): the original does not roll back, so neither
// do we).
func TriggerCherryPickMarked(repo *gitx.Repo, marked []commitid.ID) error {
	if err := RequireClean(repo); err != nil {
		return err
	}
	for _, id := range marked {
		if err := repo.CherryPick(id.String()); err != nil {
			return fmt.Errorf("commitlist: cherry-pick %s: %w", id.Short(), err)
		}
	}
	return nil
}
