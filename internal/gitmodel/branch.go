// Package gitmodel holds the plain data types shared across the async job
// system, the log walker, the commit list, and the diff/blame engines.
package gitmodel

import "github.com/theorlangur/gitui/internal/commitid"

// LocalBranch is the Local variant of Branch.
type LocalBranch struct {
	HasUpstream bool
	UpstreamRef string // empty when HasUpstream is false
	IsHead      bool
}

// RemoteBranch is the Remote variant of Branch.
type RemoteBranch struct {
	HasTracking bool
}

// Branch describes a local or remote ref. Unique by FullRef.
type Branch struct {
	Name        string
	FullRef     string
	Top         commitid.ID
	TopSummary  string
	Local       *LocalBranch  // non-nil iff this is a local branch
	Remote      *RemoteBranch // non-nil iff this is a remote branch
}

// IsLocal reports whether this descriptor names a local branch.
func (b Branch) IsLocal() bool { return b.Local != nil }

// TagSet maps a commit id to the tag names pointing at it. Refreshed lazily
// by callers that track their own staleness bound.
type TagSet struct {
	byCommit map[string][]string
}

// NewTagSet builds a TagSet from a commit->tags map.
func NewTagSet(m map[string][]string) TagSet {
	return TagSet{byCommit: m}
}

// Get returns the tag names for id, or nil if untagged.
func (t TagSet) Get(id commitid.ID) []string {
	if t.byCommit == nil {
		return nil
	}
	return t.byCommit[id.String()]
}

// LogEntry is one batch item produced by the log walker for the commit list.
type LogEntry struct {
	ShortHash string
	FullHash  string
	Author    string
	Time      int64
	Summary   string
}
