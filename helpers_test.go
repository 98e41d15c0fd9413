package jtac

import (
	"testing"
)

func mustCulture(t *testing.T, name string) *CultureProfile {
	t.Helper()
	culture, err := DefaultCultureRegistry().Culture(name)
	if err != nil {
		t.Fatalf("Culture(%q): %v", name, err)
	}
	return culture
}

// assertValidChars checks that every character of text passes IsValidChar.
func assertValidChars(t *testing.T, tm TypeManager, text string) {
	t.Helper()
	for _, ch := range text {
		if !tm.IsValidChar(ch) {
			t.Errorf("%s: IsValidChar(%q) = false for formatted %q", tm.Name(), ch, text)
		}
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
