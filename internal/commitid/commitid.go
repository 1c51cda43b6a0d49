// Package commitid implements the opaque commit object identifier shared by
// every component that names a commit: the log walker, the commit list, the
// diff and blame engines, and the rebase-todo parser.
package commitid

import (
	"encoding/hex"
	"fmt"
)

// Size is the length in bytes of a raw object id (SHA-1).
const Size = 20

// ShortLen is the number of hex characters shown in the short form.
const ShortLen = 7

// ID is an opaque 20-byte commit object id, with an associated commit time
// used for ordering within the log walker's min/max heap.
type ID struct {
	raw  [Size]byte
	time int64
}

// Zero is the empty id, never resolvable in a repository.
var Zero = ID{}

// New builds an ID from raw bytes and a committer time (seconds since epoch).
func New(raw [Size]byte, time int64) ID {
	return ID{raw: raw, time: time}
}

// ParseHex parses a full hex string into an ID. A shorter even-length
// prefix is accepted and zero-padded (it is not resolved against the
// repository); odd-length input such as a 7-character short hash fails
// to decode and returns an error. The time
// field is left zero; callers that need ordering must look the commit up
// and call WithTime.
func ParseHex(s string) (ID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, fmt.Errorf("commitid: invalid hex %q: %w", s, err)
	}
	if len(b) > Size {
		return Zero, fmt.Errorf("commitid: hex %q too long", s)
	}
	var raw [Size]byte
	copy(raw[:], b)
	return ID{raw: raw}, nil
}

// WithTime returns a copy of id carrying the given committer time.
func (id ID) WithTime(t int64) ID {
	id.time = t
	return id
}

// Time returns the committer time used for heap ordering.
func (id ID) Time() int64 { return id.time }

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the full 40-character hex form.
func (id ID) String() string {
	return hex.EncodeToString(id.raw[:])
}

// Short returns the first ShortLen hex characters.
func (id ID) Short() string {
	return id.String()[:ShortLen]
}

// Equal reports whether two ids name the same object, ignoring time.
func (id ID) Equal(other ID) bool {
	return id.raw == other.raw
}

// Less orders ids by commit time, newest first is Less == false; used by
// the log walker's heap which pops the newest unvisited commit.
func Less(a, b ID) bool {
	return a.time < b.time
}
