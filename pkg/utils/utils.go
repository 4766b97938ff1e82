package utils

import "strings"

// ToPointer returns a pointer to the given value.
func ToPointer[T any](v T) *T {
	return &v
}

// ContainsString reports whether s is present in list (case-insensitive).
func ContainsString(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// CleanToValidUTF8 strips invalid UTF-8 sequences from s.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
