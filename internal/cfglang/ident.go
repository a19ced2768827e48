package cfglang

import "github.com/smasher164/xid"

// ValidIdentifier reports whether name can be used as a namespace,
// property, variable or parameter name: its first rune must be a valid
// Unicode identifier start (or underscore), and every subsequent rune a
// valid identifier continuation (or underscore). This mirrors the
// identifier-rune classification the teacher's scanners perform with the
// same library, one layer above raw byte/separator tokenizing.
//
// The interpreter does not call ValidIdentifier itself: declarations and
// (% name) lookups accept any word the tokenizer produces, so a name that
// fails this check can still be bound and injected.
func ValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' {
			continue
		}
		if i == 0 {
			if !xid.Start(r) {
				return false
			}
			continue
		}
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}
