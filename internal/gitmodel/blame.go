package gitmodel

import "github.com/theorlangur/gitui/internal/commitid"

// BlameHunk carries the attribution metadata for the line(s) that follow it,
// until the next BlameHunk appears in the line list.
type BlameHunk struct {
	Commit commitid.ID
	Author string
	Time   int64
}

// BlameLine pairs one line of file content with an optional hunk. Hunk is
// non-nil only on the first line of a run attributed to the same commit;
// render logic shows metadata only on those rows.
type BlameLine struct {
	Hunk    *BlameHunk
	Content string
}

// Blame is the full per-line annotation table for one file at one commit.
// Commit identifies "the commit being blamed from" - the top of the view.
type Blame struct {
	FilePath string
	Commit   commitid.ID
	Lines    []BlameLine
}
