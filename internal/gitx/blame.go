package gitx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

// Blame computes the per-line attribution table for path as of commit (or
// the working tree if commit is zero).
func (r *Repo) Blame(path string, commit commitid.ID) (gitmodel.Blame, error) {
	args := []string{"blame", "--porcelain"}
	if !commit.IsZero() {
		args = append(args, commit.String())
	}
	args = append(args, "--", path)

	out, err := r.run(args...)
	if err != nil {
		return gitmodel.Blame{}, fmt.Errorf("gitx: blame %q: %w", path, err)
	}
	return parsePorcelainBlame(path, commit, out), nil
}

func parsePorcelainBlame(path string, commit commitid.ID, out string) gitmodel.Blame {
	b := gitmodel.Blame{FilePath: path, Commit: commit}
	type commitInfo struct {
		author string
		time   int64
	}
	infos := map[string]*commitInfo{}

	lines := strings.Split(out, "\n")
	var curHash string
	var curInfo *commitInfo

	// prevHash tracks the commit attributed to the previously emitted line,
	// so metadata (Hunk != nil) is attached only where the commit changes -
	// per spec.md's blame-model rule that metadata shows only on rows where
	// the commit differs from the previous row.
	prevHash := ""

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		if len(line) >= 40 && isHexPrefix(line) {
			fields := strings.Fields(line)
			curHash = fields[0]
			if _, ok := infos[curHash]; !ok {
				infos[curHash] = &commitInfo{}
			}
			curInfo = infos[curHash]
			continue
		}
		switch {
		case strings.HasPrefix(line, "author "):
			curInfo.author = strings.TrimPrefix(line, "author ")
		case strings.HasPrefix(line, "author-time "):
			if t, err := strconv.ParseInt(strings.TrimPrefix(line, "author-time "), 10, 64); err == nil {
				curInfo.time = t
			}
		case strings.HasPrefix(line, "\t"):
			content := line[1:]
			var hunk *gitmodel.BlameHunk
			if curHash != prevHash {
				id, err := commitid.ParseHex(curHash)
				if err == nil {
					id = id.WithTime(curInfo.time)
					hunk = &gitmodel.BlameHunk{Commit: id, Author: curInfo.author, Time: curInfo.time}
				}
				prevHash = curHash
			}
			b.Lines = append(b.Lines, gitmodel.BlameLine{Hunk: hunk, Content: content})
		}
	}
	return b
}

func isHexPrefix(s string) bool {
	for i := 0; i < 40 && i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
