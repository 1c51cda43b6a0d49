// Package logwalker implements the time-ordered BFS over the commit DAG
// backing the commit list: a max-heap keyed by commit time (newest first),
// composable filters, a stopper predicate, and re-entrant reads. Grounded
// directly on the original gitui's asyncgit/src/sync/logwalker.rs.
package logwalker

import (
	"container/heap"
	"fmt"

	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitx"
)

// Filter decides whether a commit should be admitted to the walk's result.
// Repo is passed so a filter may compute its own diffs (e.g. filter_by_path).
type Filter func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error)

// ComposeAnd ANDs any number of optional filters, short-circuiting on the
// first that rejects - the Go equivalent of the original's
// filter_compose_and! macro.
func ComposeAnd(filters ...Filter) Filter {
	live := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			live = append(live, f)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error) {
		for _, f := range live {
			ok, err := f(repo, id, meta)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

// FilterByPath includes a commit iff its diff against at least one parent
// touches path; with skipMerges, any commit with more than one parent is
// excluded unconditionally.
func FilterByPath(path string, skipMerges bool) Filter {
	return func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error) {
		if skipMerges && len(meta.Parents) > 1 {
			return false, nil
		}
		bases := make([]string, 0, len(meta.Parents))
		for _, p := range meta.Parents {
			bases = append(bases, p.String())
		}
		if len(bases) == 0 {
			// Root commit has no parent; diff against the empty tree instead.
			bases = append(bases, "4b825dc642cb6eb9a060e54bf8d69288fbee4904")
		}
		for _, base := range bases {
			out, err := repo.Run("diff", "--name-only", base, id.String(), "--", path)
			if err == nil && out != "" {
				return true, nil
			}
		}
		return false, nil
	}
}

// DiffContainsFile is like FilterByPath but keyed by repo path (string)
// rather than a borrowed repo handle, so the filter can outlive a single
// walk (e.g. held by a long-lived commit-list filter state).
func DiffContainsFile(repoPath, file string) Filter {
	return func(repo *gitx.Repo, id commitid.ID, meta gitx.CommitMeta) (bool, error) {
		return FilterByPath(file, false)(&gitx.Repo{Path: repoPath}, id, meta)
	}
}

// commitHeap is a max-heap by commit time (newest popped first).
type commitHeap []gitx.CommitMeta

func (h commitHeap) Len() int            { return len(h) }
func (h commitHeap) Less(i, j int) bool  { return h[i].Time > h[j].Time }
func (h commitHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *commitHeap) Push(x any)         { *h = append(*h, x.(gitx.CommitMeta)) }
func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Walker is the re-entrant BFS state: Read can be called repeatedly and
// continues from where the previous call stopped.
type Walker struct {
	repo         *gitx.Repo
	heap         commitHeap
	visited      map[string]bool
	limit        int
	filteredLim  int
	filter       Filter
	stopper      Filter
}

// New starts a walker at start (HEAD if start is the zero id), bounded by
// limit commits examined per Read call (0 = unlimited).
func New(repo *gitx.Repo, start commitid.ID, limit int) (*Walker, error) {
	var meta gitx.CommitMeta
	var err error
	if start.IsZero() {
		meta, err = repo.HeadCommit()
	} else {
		meta, err = repo.FindCommit(start.String())
	}
	if err != nil {
		return nil, fmt.Errorf("logwalker: resolve start: %w", err)
	}
	w := &Walker{
		repo:    repo,
		visited: map[string]bool{meta.ID.String(): true},
		limit:   limit,
	}
	heap.Init(&w.heap)
	heap.Push(&w.heap, meta)
	return w, nil
}

// WithFilter sets the inclusion filter, optionally capping the number of
// commits admitted into a single Read call's output (filteredLimit, 0 =
// unlimited).
func (w *Walker) WithFilter(f Filter, filteredLimit int) *Walker {
	w.filter = f
	w.filteredLim = filteredLimit
	return w
}

// WithStopper sets a predicate that halts the walk immediately once true,
// regardless of limit.
func (w *Walker) WithStopper(f Filter) *Walker {
	w.stopper = f
	return w
}

// Read drains up to w.limit commits (0 = drain until the heap empties or
// the stopper fires), appending filter-admitted commits to out. Returns the
// number of commits examined (not just admitted).
func (w *Walker) Read(out *[]commitid.ID) (int, error) {
	examined := 0
	admitted := 0
	for w.heap.Len() > 0 {
		meta := heap.Pop(&w.heap).(gitx.CommitMeta)

		for _, p := range meta.Parents {
			if !w.visited[p.String()] {
				w.visited[p.String()] = true
				pmeta, err := w.repo.FindCommit(p.String())
				if err == nil {
					heap.Push(&w.heap, pmeta)
				}
			}
		}

		include := true
		if w.filter != nil {
			var err error
			include, err = w.filter(w.repo, meta.ID, meta)
			if err != nil {
				return examined, err
			}
		}
		examined++
		if include {
			*out = append(*out, meta.ID)
			admitted++
			if w.filteredLim > 0 && admitted == w.filteredLim {
				break
			}
		}

		if w.limit > 0 && examined == w.limit {
			break
		}

		if w.stopper != nil {
			stop, err := w.stopper(w.repo, meta.ID, meta)
			if err != nil {
				return examined, err
			}
			if stop {
				break
			}
		}
	}
	return examined, nil
}

// ReadEOF is like Read but fails if the walk is already exhausted (the
// heap is empty) before reading anything.
func (w *Walker) ReadEOF(out *[]commitid.ID) (int, error) {
	if w.heap.Len() == 0 {
		return 0, fmt.Errorf("logwalker: eof")
	}
	return w.Read(out)
}
