// Package tag implements the loose free-text tag matching used for interests,
// skills, categories and culture tags.
package tag

import (
	"strings"
	"unicode/utf8"
)

// MinContainLen is the minimum rune length of the shorter side for a
// containment match. Shorter tags only match on equality.
const MinContainLen = 3

// Normalize case-folds and trims a tag.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match reports whether two tags fuzzy-match: equal after normalization, or
// one contains the other.
func Match(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	short, long := a, b
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	if utf8.RuneCountInString(short) < MinContainLen {
		return false
	}
	return strings.Contains(long, short)
}

// MatchAny reports whether s fuzzy-matches any tag in set.
func MatchAny(s string, set []string) bool {
	for _, t := range set {
		if Match(s, t) {
			return true
		}
	}
	return false
}

// Clean normalizes tags and drops empty entries and duplicates, keeping order.
func Clean(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		n := Normalize(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
