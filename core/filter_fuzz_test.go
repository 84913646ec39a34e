package core

import (
	"testing"
)

// FuzzCompileSearch fuzzes the wildcard search compiler. Malformed patterns
// must compile to a matcher that matches nothing, never panic.
func FuzzCompileSearch(f *testing.F) {
	seeds := []string{
		"jose",
		"jo*",
		"*castro*",
		"j.c*",
		"**",
		"(*", // would be an invalid regexp without escaping
		"",   // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, term string) {
		m := compileSearch(term)
		_ = m.matches("Jose Castro [jose.castro]")
		_ = m.matches("")
	})
}
