package gitx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

const branchFormat = "%(refname)\x01%(refname:short)\x01%(objectname)\x01%(committerdate:unix)\x01%(contents:subject)\x01%(upstream)\x01%(HEAD)"

// Branches lists local and remote branches with upstream/tracking/HEAD
// overlays, unique by full ref.
func (r *Repo) Branches() ([]gitmodel.Branch, error) {
	out, err := r.run("for-each-ref", "--format="+branchFormat, "refs/heads", "refs/remotes")
	if err != nil {
		return nil, fmt.Errorf("gitx: list branches: %w", err)
	}
	var branches []gitmodel.Branch
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		f := strings.Split(line, "\x01")
		if len(f) != 7 {
			continue
		}
		fullRef, short, oid, tstr, subject, upstream, head := f[0], f[1], f[2], f[3], f[4], f[5], f[6]
		id, err := commitid.ParseHex(oid)
		if err != nil {
			continue
		}
		if t, err := strconv.ParseInt(tstr, 10, 64); err == nil {
			id = id.WithTime(t)
		}
		b := gitmodel.Branch{Name: short, FullRef: fullRef, Top: id, TopSummary: subject}
		if strings.HasPrefix(fullRef, "refs/heads/") {
			b.Local = &gitmodel.LocalBranch{
				HasUpstream: upstream != "",
				UpstreamRef: upstream,
				IsHead:      head == "*",
			}
		} else if strings.HasPrefix(fullRef, "refs/remotes/") {
			b.Remote = &gitmodel.RemoteBranch{HasTracking: hasTrackingLocal(branches, short)}
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// hasTrackingLocal reports whether any already-seen local branch tracks
// the named remote branch, used to de-duplicate a remote overlay against
// its tracked local in the commit list.
func hasTrackingLocal(seen []gitmodel.Branch, remoteShort string) bool {
	for _, b := range seen {
		if b.Local != nil && b.Local.HasUpstream && strings.HasSuffix(b.Local.UpstreamRef, remoteShort) {
			return true
		}
	}
	return false
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repo) CurrentBranch() (string, error) {
	out, err := r.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("gitx: current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CheckoutBranch switches the working tree to the named local branch,
// used by the options store's branch-shortcut lookup.
func (r *Repo) CheckoutBranch(name string) error {
	if _, err := r.run("checkout", name); err != nil {
		return fmt.Errorf("gitx: checkout %q: %w", name, err)
	}
	return nil
}

// Tags builds the commit->tag-names map (spec.md's TagSet).
func (r *Repo) Tags() (gitmodel.TagSet, error) {
	out, err := r.run("for-each-ref", "--format=%(objectname)%1f%(refname:short)", "refs/tags")
	if err != nil {
		return gitmodel.TagSet{}, fmt.Errorf("gitx: list tags: %w", err)
	}
	m := map[string][]string{}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		f := strings.SplitN(line, "\x1f", 2)
		if len(f) != 2 {
			continue
		}
		m[f[0]] = append(m[f[0]], f[1])
	}
	return gitmodel.NewTagSet(m), nil
}
