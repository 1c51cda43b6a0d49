package gitmodel

// LineType classifies one rendered diff line.
type LineType int

const (
	LineContext LineType = iota
	LineAdd
	LineDelete
	LineHeader
)

// DiffLine is one line of a hunk: a type, a position within the hunk, and
// UTF-8-lossy content (binary content is decoded with the replacement rune).
type DiffLine struct {
	Type    LineType
	Pos     int
	Content string
}

// Hunk is a contiguous block of changed lines bounded by unchanged context.
// HeaderHash identifies the hunk for staging/unstaging purposes; it is the
// FNV-1a hash of the raw "@@ ... @@" header text Git produced for this hunk.
type Hunk struct {
	HeaderHash uint64
	Lines      []DiffLine
}

// FileDiff is the diff of a single file: an optional binary size delta, an
// untracked flag, and the list of hunks (empty for binary files).
type FileDiff struct {
	SizeDelta *int64 // non-nil for binary files
	Untracked bool
	Hunks     []Hunk
}

// LinePosition names one line within a specific hunk of a specific file, the
// unit operated on by "reset selected lines".
type LinePosition struct {
	FilePath   string
	HeaderHash uint64
	LineIndex  int // index within Hunk.Lines
}
