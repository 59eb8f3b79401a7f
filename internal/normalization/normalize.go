package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.TrimSpace(input)
}

// NormalizeEmail lowercases in addition to trimming; emails are the unique
// login key and must not differ by case.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
