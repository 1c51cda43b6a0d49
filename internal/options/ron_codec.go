package options

import (
	"github.com/theorlangur/gitui/internal/ron"
)

var untrackedNames = map[UntrackedMode]string{
	UntrackedNo:     "No",
	UntrackedNormal: "Normal",
	UntrackedAll:    "All",
}

var untrackedValues = map[string]UntrackedMode{
	"No":     UntrackedNo,
	"Normal": UntrackedNormal,
	"All":    UntrackedAll,
}

func marshal(d data) string {
	var untracked ron.Value
	if d.StatusShowUntracked != nil {
		untracked = ron.Some{Value: ron.Struct{Name: untrackedNames[*d.StatusShowUntracked]}}
	}

	commitMsgs := make([]ron.Value, len(d.CommitMsgs))
	for i, m := range d.CommitMsgs {
		commitMsgs[i] = m
	}

	externCmds := make([]ron.Value, len(d.ExternCmds))
	for i, c := range d.ExternCmds {
		var shortcut ron.Value
		if c.Shortcut != nil {
			shortcut = ron.Some{Value: ron.Tuple{c.Shortcut.Code, c.Shortcut.Mods}}
		}
		externCmds[i] = ron.Tuple{c.Command, shortcut}
	}

	branchShortcuts := make([]ron.Value, len(d.BranchShortcuts))
	for i, b := range d.BranchShortcuts {
		branchShortcuts[i] = ron.Tuple{b.Branch, ron.Tuple{b.Shortcut.Code, b.Shortcut.Mods}}
	}

	ptrOrNone := func(s *string) ron.Value {
		if s == nil {
			return nil
		}
		return ron.Some{Value: *s}
	}

	root := ron.Struct{Fields: []ron.Field{
		{Name: "tab", Value: int64(d.Tab)},
		{Name: "diff", Value: ron.Struct{Fields: []ron.Field{
			{Name: "context", Value: int64(d.Diff.Context)},
			{Name: "interhunk_lines", Value: int64(d.Diff.InterhunkLines)},
			{Name: "ignore_whitespace", Value: d.Diff.IgnoreWhitespace},
		}}},
		{Name: "status_show_untracked", Value: untracked},
		{Name: "commit_msgs", Value: commitMsgs},
		{Name: "extern_cmds", Value: externCmds},
		{Name: "git_extern_cmds", Value: ron.Struct{Fields: []ron.Field{
			{Name: "push_base", Value: ptrOrNone(d.GitExternCmds.PushBase)},
			{Name: "fetch_base", Value: ptrOrNone(d.GitExternCmds.FetchBase)},
			{Name: "checkout_base", Value: ptrOrNone(d.GitExternCmds.CheckoutBase)},
		}}},
		{Name: "branch_shortcuts", Value: branchShortcuts},
	}}
	return ron.Marshal(root)
}

func unmarshal(text string) (data, error) {
	v, err := ron.Parse(text)
	if err != nil {
		return data{}, err
	}
	m := ron.AsMap(v)
	d := defaultData()

	d.Tab = int(ron.AsInt64(m["tab"], 0))

	diff := ron.AsMap(m["diff"])
	d.Diff.Context = uint32(ron.AsInt64(diff["context"], 3))
	d.Diff.InterhunkLines = uint32(ron.AsInt64(diff["interhunk_lines"], 0))
	d.Diff.IgnoreWhitespace = ron.AsBool(diff["ignore_whitespace"], false)

	if su, ok := m["status_show_untracked"]; ok && su != nil {
		variant := ron.AsString(ron.FieldValue(su, "__variant"), "")
		if mode, ok := untrackedValues[variant]; ok {
			d.StatusShowUntracked = &mode
		}
	}

	for _, it := range ron.AsSeq(m["commit_msgs"]) {
		if s, ok := it.(string); ok {
			d.CommitMsgs = append(d.CommitMsgs, s)
		}
	}

	for _, it := range ron.AsSeq(m["extern_cmds"]) {
		tup := ron.AsSeq(it)
		if len(tup) != 2 {
			continue
		}
		cmd := ron.AsString(tup[0], "")
		var shortcut *Event
		if tup[1] != nil {
			pair := ron.AsSeq(tup[1])
			if len(pair) == 2 {
				shortcut = &Event{Code: ron.AsInt64(pair[0], 0), Mods: ron.AsInt64(pair[1], 0)}
			}
		}
		d.ExternCmds = append(d.ExternCmds, ExternCmd{Command: cmd, Shortcut: shortcut})
	}

	gec := ron.AsMap(m["git_extern_cmds"])
	strOrNone := func(v ron.Value) *string {
		if v == nil {
			return nil
		}
		s := ron.AsString(v, "")
		return &s
	}
	d.GitExternCmds.PushBase = strOrNone(gec["push_base"])
	d.GitExternCmds.FetchBase = strOrNone(gec["fetch_base"])
	d.GitExternCmds.CheckoutBase = strOrNone(gec["checkout_base"])

	for _, it := range ron.AsSeq(m["branch_shortcuts"]) {
		tup := ron.AsSeq(it)
		if len(tup) != 2 {
			continue
		}
		branch := ron.AsString(tup[0], "")
		pair := ron.AsSeq(tup[1])
		if len(pair) != 2 {
			continue
		}
		d.BranchShortcuts = append(d.BranchShortcuts, BranchShortcut{
			Branch:   branch,
			Shortcut: Event{Code: ron.AsInt64(pair[0], 0), Mods: ron.AsInt64(pair[1], 0)},
		})
	}

	return d, nil
}
