package gitmodel

import "strings"

// SmartCaseContains reports whether line contains needle, and at which byte
// index: case-insensitively unless needle itself contains an ASCII uppercase
// character, in which case the match is case-sensitive. This is the "smart
// case" rule shared by the diff and blame search sub-machines; it keeps no
// state, so the choice is made again from the needle on every call.
func SmartCaseContains(line, needle string) (index int, ok bool) {
	if needle == "" {
		return -1, false
	}
	if hasUpper(needle) {
		idx := strings.Index(line, needle)
		return idx, idx >= 0
	}
	idx := strings.Index(strings.ToLower(line), strings.ToLower(needle))
	return idx, idx >= 0
}

func hasUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
