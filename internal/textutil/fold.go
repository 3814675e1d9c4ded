package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s after case folding both.
// An empty substr is contained in every string.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}

// CompareFold orders a and b by their case-folded forms, byte-wise, which is
// code point order for valid UTF-8.
func CompareFold(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}
