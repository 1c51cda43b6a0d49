package gitx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theorlangur/gitui/internal/commitid"
)

// CommitMeta is the plumbing-level view of one commit: its id, parents,
// author, time, and summary - the unit the log walker's heap and filters
// operate on.
type CommitMeta struct {
	ID      commitid.ID
	Parents []commitid.ID
	Author  string
	Time    int64
	Summary string
}

const commitLogFormat = "%H%x1f%P%x1f%an%x1f%at%x1f%s%x1e"

// parseCommitMetaBlock parses one %H/%P/%an/%at/%s record separated by the
// \x1f unit separator, terminated by \x1e.
func parseCommitMetaBlock(rec string) (CommitMeta, error) {
	fields := strings.Split(rec, "\x1f")
	if len(fields) != 5 {
		return CommitMeta{}, fmt.Errorf("gitx: malformed commit record: %q", rec)
	}
	id, err := commitid.ParseHex(fields[0])
	if err != nil {
		return CommitMeta{}, err
	}
	t, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return CommitMeta{}, fmt.Errorf("gitx: malformed commit time: %w", err)
	}
	id = id.WithTime(t)

	var parents []commitid.ID
	for _, p := range strings.Fields(fields[1]) {
		pid, err := commitid.ParseHex(p)
		if err != nil {
			continue
		}
		parents = append(parents, pid)
	}

	return CommitMeta{
		ID:      id,
		Parents: parents,
		Author:  fields[2],
		Time:    t,
		Summary: fields[4],
	}, nil
}

// HeadCommit resolves the tip commit of HEAD.
func (r *Repo) HeadCommit() (CommitMeta, error) {
	return r.FindCommit("HEAD")
}

// FindCommit resolves ref (a sha, abbreviation, or symbolic ref) to its
// full metadata. Every lookup either resolves or is rejected, per
// spec.md's commit-identifier invariant.
func (r *Repo) FindCommit(ref string) (CommitMeta, error) {
	out, err := r.run("log", "-1", "--format="+commitLogFormat, ref, "--")
	if err != nil {
		return CommitMeta{}, fmt.Errorf("gitx: commit %q not found: %w", ref, err)
	}
	rec := strings.TrimRight(strings.TrimSpace(out), "\x1e")
	return parseCommitMetaBlock(rec)
}

// Parents returns the metadata-level parent ids of id. Their commit time is
// not looked up, so Time() is zero on every returned id.
func (r *Repo) Parents(id commitid.ID) ([]commitid.ID, error) {
	meta, err := r.FindCommit(id.String())
	if err != nil {
		return nil, err
	}
	return meta.Parents, nil
}

// GetCommitsInfo fetches CommitMeta records for the given ids in one batch,
// keyed by full hash, truncating Summary to maxMsgLen runes (0 = unlimited).
func (r *Repo) GetCommitsInfo(ids []commitid.ID, maxMsgLen int) (map[string]CommitMeta, error) {
	if len(ids) == 0 {
		return map[string]CommitMeta{}, nil
	}
	args := []string{"show", "--no-patch", "--format=" + commitLogFormat}
	for _, id := range ids {
		args = append(args, id.String())
	}
	out, err := r.run(args...)
	if err != nil {
		return nil, fmt.Errorf("gitx: batch commit lookup: %w", err)
	}
	result := make(map[string]CommitMeta, len(ids))
	for _, rec := range strings.Split(strings.TrimSpace(out), "\x1e") {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		meta, err := parseCommitMetaBlock(rec)
		if err != nil {
			continue
		}
		if runes := []rune(meta.Summary); maxMsgLen > 0 && len(runes) > maxMsgLen {
			meta.Summary = string(runes[:maxMsgLen])
		}
		result[meta.ID.String()] = meta
	}
	return result, nil
}
