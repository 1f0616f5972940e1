package utils

import "strings"

// ToSnakeCase converts a string to snake_case
func ToSnakeCase(s string) string {
	if s == "" {
		return s
	}

	var result strings.Builder
	result.Grow(len(s) + 10) // Pre-allocate some extra space for underscores

	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r - 'A' + 'a')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeName turns an asset or game name into a single safe path
// element. Anything other than letters, digits, '-', '_' and '.' becomes
// '_', runs of '_' collapse, and leading dots are dropped so the result can
// never name a parent directory.
func SanitizeName(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	last := rune(0)
	for _, r := range strings.ToLower(s) {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '.' || r == '_') {
			r = '_'
		}
		if r == '_' && last == '_' {
			continue
		}
		result.WriteRune(r)
		last = r
	}

	return strings.TrimRight(strings.TrimLeft(result.String(), "._"), "_")
}
