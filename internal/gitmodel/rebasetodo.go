package gitmodel

import (
	"fmt"
	"strings"
)

// TodoOp is one rebase-todo operation token.
type TodoOp int

const (
	OpPick TodoOp = iota
	OpReword
	OpEdit
	OpSquash
	OpFixup
	OpExec
	OpBreak
	OpDrop
	OpLabel
	OpReset
	OpMerge
	OpUpdateRef
)

// longForm/shortForm mirror the tokens Git itself accepts and writes; the
// parser accepts either, the serializer always emits the long form (matching
// what `git rebase -i` re-reads without complaint).
var longForm = map[TodoOp]string{
	OpPick:      "pick",
	OpReword:    "reword",
	OpEdit:      "edit",
	OpSquash:    "squash",
	OpFixup:     "fixup",
	OpExec:      "exec",
	OpBreak:     "break",
	OpDrop:      "drop",
	OpLabel:     "label",
	OpReset:     "reset",
	OpMerge:     "merge",
	OpUpdateRef: "update-ref",
}

var shortForm = map[TodoOp]string{
	OpPick:   "p",
	OpReword: "r",
	OpEdit:   "e",
	OpSquash: "s",
	OpFixup:  "f",
	OpExec:   "x",
	OpBreak:  "b",
	OpDrop:   "d",
	OpLabel:  "l",
	OpReset:  "t",
	OpMerge:  "m",
}

var tokenToOp = func() map[string]TodoOp {
	m := make(map[string]TodoOp, len(longForm)+len(shortForm))
	for op, s := range longForm {
		m[s] = op
	}
	for op, s := range shortForm {
		m[s] = op
	}
	return m
}()

// TodoLine is one line of a rebase todo file: an operation, a short hash
// (for display), and the quoted full hash (gitui runs rebase with
// rebase.instructionFormat="%H" so the hash field Git writes IS the full
// hash; ShortHash is derived from it for display. Lines whose op carries
// no hash at all - Exec, Break, Label, Reset - leave both fields empty).
type TodoLine struct {
	Op        TodoOp
	ShortHash string
	FullHash  string
	Rest      string // trailing text (commit subject, exec command, label name, ...)
}

// hasHash reports whether op's todo line carries a commit hash field.
func hasHash(op TodoOp) bool {
	switch op {
	case OpExec, OpBreak, OpLabel, OpReset:
		return false
	default:
		return true
	}
}

// ParseTodoLine parses one non-blank, non-comment line of a rebase todo
// file. Unknown operation tokens fail with a descriptive error; callers
// that walk a whole file are expected to silently drop lines that fail to
// parse, matching Git's own lenient treatment of blanks and comments
// (spec Open Question (b): this is mirrored, not "fixed").
func ParseTodoLine(line string) (TodoLine, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return TodoLine{}, fmt.Errorf("rebasetodo: line %q has too few fields", line)
	}
	op, ok := tokenToOp[fields[0]]
	if !ok {
		return TodoLine{}, fmt.Errorf("rebasetodo: unknown operation %q", fields[0])
	}
	t := TodoLine{Op: op}
	rest := fields[1:]
	if hasHash(op) && len(rest) > 0 {
		t.FullHash = rest[0]
		if len(t.FullHash) >= ShortHashLen {
			t.ShortHash = t.FullHash[:ShortHashLen]
		} else {
			t.ShortHash = t.FullHash
		}
		rest = rest[1:]
	}
	t.Rest = strings.Join(rest, " ")
	return t, nil
}

// ShortHashLen is the number of hex characters used for the display hash.
const ShortHashLen = 7

// String renders the canonical long form of the line, as Git would re-read
// it when resuming an interactive rebase.
func (t TodoLine) String() string {
	var b strings.Builder
	b.WriteString(longForm[t.Op])
	if hasHash(t.Op) && t.FullHash != "" {
		b.WriteByte(' ')
		b.WriteString(t.FullHash)
	}
	if t.Rest != "" {
		b.WriteByte(' ')
		b.WriteString(t.Rest)
	}
	return b.String()
}

// ParseTodoFile parses every line of a todo file's content, silently
// dropping lines that fail to parse (comments, blanks, and malformed
// content alike) per Git's own lenient behavior.
func ParseTodoFile(content string) []TodoLine {
	var out []TodoLine
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := ParseTodoLine(line)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SerializeTodoFile renders lines back into todo-file content.
func SerializeTodoFile(lines []TodoLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// RetargetOp rewrites, in place, every line whose full hash is a member of
// hashes to newOp. Used by rebase_drop_commits / rebase_fixup_commits to
// translate Pick lines to Drop or Fixup before handing the todo back to the
// waiting sequence-editor child.
func RetargetOp(lines []TodoLine, hashes map[string]bool, newOp TodoOp) {
	for i := range lines {
		if hashes[lines[i].FullHash] {
			lines[i].Op = newOp
		}
	}
}

