package rebaseipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theorlangur/gitui/internal/gitmodel"
)

func TestRetargetOpOnParsedTodoRewritesOnlySelectedHashes(t *testing.T) {
	lines := gitmodel.ParseTodoFile("pick aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa msg a\n" +
		"pick bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb msg b\n")
	hashes := map[string]bool{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": true}

	gitmodel.RetargetOp(lines, hashes, gitmodel.OpDrop)

	assert.Equal(t, gitmodel.OpDrop, lines[0].Op)
	assert.Equal(t, gitmodel.OpPick, lines[1].Op)
}

func TestHelperScriptNameByOS(t *testing.T) {
	name := helperScriptName(1234)
	assert.Contains(t, name, "1234")
}
