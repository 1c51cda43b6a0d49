package gitmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTodoFileRoundTrip(t *testing.T) {
	content := "pick aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa first commit\n" +
		"fixup bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb squash me\n" +
		"exec make test\n" +
		"# a comment line\n" +
		"\n" +
		"drop cccccccccccccccccccccccccccccccccccccccc drop me\n"

	lines := ParseTodoFile(content)
	assert.Len(t, lines, 4)
	assert.Equal(t, OpPick, lines[0].Op)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", lines[0].FullHash)
	assert.Equal(t, "aaaaaaa", lines[0].ShortHash)
	assert.Equal(t, OpFixup, lines[1].Op)
	assert.Equal(t, OpExec, lines[2].Op)
	assert.Equal(t, "make test", lines[2].Rest)
	assert.Equal(t, OpDrop, lines[3].Op)

	reserialized := SerializeTodoFile(lines)
	reparsed := ParseTodoFile(reserialized)
	assert.Equal(t, lines, reparsed)
}

func TestParseTodoLineUnknownOpFails(t *testing.T) {
	_, err := ParseTodoLine("frobnicate aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa message")
	assert.Error(t, err)
}

func TestParseTodoLineTooFewFields(t *testing.T) {
	_, err := ParseTodoLine("pick")
	assert.Error(t, err)
}

func TestParseTodoFileSilentlyDropsMalformedLines(t *testing.T) {
	content := "pick aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa ok\n" +
		"bogus this is not a real op\n"
	lines := ParseTodoFile(content)
	assert.Len(t, lines, 1)
	assert.Equal(t, OpPick, lines[0].Op)
}

func TestRetargetOpRewritesOnlyMatchingHashes(t *testing.T) {
	lines := []TodoLine{
		{Op: OpPick, FullHash: "aaaa"},
		{Op: OpPick, FullHash: "bbbb"},
		{Op: OpPick, FullHash: "cccc"},
	}
	RetargetOp(lines, map[string]bool{"bbbb": true}, OpDrop)
	assert.Equal(t, OpPick, lines[0].Op)
	assert.Equal(t, OpDrop, lines[1].Op)
	assert.Equal(t, OpPick, lines[2].Op)
}

func TestTodoLineStringOmitsHashForHashlessOps(t *testing.T) {
	l := TodoLine{Op: OpExec, Rest: "go test ./..."}
	assert.Equal(t, "exec go test ./...", l.String())
}
