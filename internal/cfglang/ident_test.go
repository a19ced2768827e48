package cfglang

import "testing"

func TestValidIdentifier(t *testing.T) {
	cases := map[string]bool{
		"host":       true,
		"_private":   true,
		"host2":      true,
		"2host":      false,
		"has space":  false,
		"has-dash":   false,
		"":           false,
	}
	for name, want := range cases {
		if got := ValidIdentifier(name); got != want {
			t.Errorf("ValidIdentifier(%q) = %v, want %v", name, got, want)
		}
	}
}
