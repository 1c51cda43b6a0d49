// Package keybinding defines the key-event type of the action binding
// table and its RON overlay (the options store's shortcut tables use their
// own options.Event), and loads that overlay as a patch over a
// caller-supplied default table.
package keybinding

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/theorlangur/gitui/internal/ron"
)

// Event is a single key chord: a bubbletea key type plus the printable
// rune(s) for KeyRunes, plus the Alt modifier - the ecosystem's KeyMsg
// already folds Ctrl into dedicated KeyType values (KeyCtrlA, ...), so no
// separate modifier bitmask is needed beyond Alt.
type Event struct {
	Type  tea.KeyType
	Runes string
	Alt   bool
}

// FromKeyMsg builds an Event from a bubbletea key message.
func FromKeyMsg(msg tea.KeyMsg) Event {
	return Event{Type: msg.Type, Runes: string(msg.Runes), Alt: msg.Alt}
}

// Match reports whether msg matches e on both key code and modifiers.
func (e Event) Match(msg tea.KeyMsg) bool {
	return e.Type == msg.Type && e.Runes == string(msg.Runes) && e.Alt == msg.Alt
}

// Equal reports whether two Events name the same chord.
func (e Event) Equal(o Event) bool {
	return e.Type == o.Type && e.Runes == o.Runes && e.Alt == o.Alt
}

// Table is a named-action -> Event default binding set, patchable from an
// overlay file.
type Table map[string]Event

// defaultBindingsYAML is the authored source of truth for the built-in
// table: rebase, drop/fixup/cherry-pick, diff open/stage/unstage/reset,
// blame open/search, copy, and extern-command dispatch. Kept as YAML
// rather than a Go literal so the binding list can be hand-edited or
// regenerated without touching code, then parsed once by Default via
// parseKeySpec.
const defaultBindingsYAML = `
RebaseInteractive: "R"
DropCommit: "ctrl+d"
FixupCommit: "ctrl+f"
CherryPick: "p"
OpenDiff: "d"
DiffStageHunk: "enter"
DiffUnstageHunk: "backspace"
DiffReset: "D"
DiffToggleWhitespace: "w"
DiffNextFile: "n"
BlameOpen: "B"
BlameSearch: "/"
CopyHunk: "h"
CopyLine: "l"
RunExternCmd: "!"
Fetch: "f"
Push: "P"
Pull: "u"
`

// namedKeys maps the non-printable key specs defaultBindingsYAML may use
// to their bubbletea KeyType.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+f":    tea.KeyCtrlF,
	"ctrl+c":    tea.KeyCtrlC,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
}

// parseKeySpec turns one YAML scalar ("R", "ctrl+d", "enter", ...) into an
// Event: a named entry in namedKeys, or else a single printable rune.
func parseKeySpec(spec string) (Event, error) {
	if kt, ok := namedKeys[spec]; ok {
		return Event{Type: kt}, nil
	}
	if len([]rune(spec)) == 1 {
		return Event{Type: tea.KeyRunes, Runes: spec}, nil
	}
	return Event{}, fmt.Errorf("keybinding: unrecognized key spec %q", spec)
}

// Default returns the built-in binding table, parsed once per call from
// defaultBindingsYAML. A malformed entry is a programmer error in the
// embedded YAML, not a user-facing condition, so it panics rather than
// silently dropping a binding.
func Default() Table {
	var raw map[string]string
	if err := yaml.Unmarshal([]byte(defaultBindingsYAML), &raw); err != nil {
		panic(fmt.Sprintf("keybinding: malformed default table: %v", err))
	}
	t := make(Table, len(raw))
	for action, spec := range raw {
		e, err := parseKeySpec(spec)
		if err != nil {
			panic(err)
		}
		t[action] = e
	}
	return t
}

// Load reads a RON overlay file's content and patches it over base,
// returning a new Table (base is not mutated). Absent or malformed
// content leaves base untouched, matching the options store's
// absent/invalid -> defaults rule.
func Load(overlayRON string, base Table) Table {
	out := make(Table, len(base))
	for k, v := range base {
		out[k] = v
	}
	if overlayRON == "" {
		return out
	}
	v, err := ron.Parse(overlayRON)
	if err != nil {
		return out
	}
	m := ron.AsMap(v)
	for action, raw := range m {
		fields := ron.AsMap(raw)
		e := Event{
			Type:  tea.KeyType(ron.AsInt64(fields["type"], int64(tea.KeyRunes))),
			Runes: ron.AsString(fields["runes"], ""),
			Alt:   ron.AsBool(fields["alt"], false),
		}
		out[action] = e
	}
	return out
}

// Marshal renders a Table overlay back to RON text in the shape Load reads.
func Marshal(t Table) string {
	fields := make([]ron.Field, 0, len(t))
	for action, e := range t {
		fields = append(fields, ron.Field{
			Name: action,
			Value: ron.Struct{Fields: []ron.Field{
				{Name: "type", Value: int64(e.Type)},
				{Name: "runes", Value: e.Runes},
				{Name: "alt", Value: e.Alt},
			}},
		})
	}
	return ron.Marshal(ron.Struct{Fields: fields})
}
