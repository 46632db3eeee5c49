package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// IsNumeric reports whether a token parses as a number. Tokens containing a
// dot are read as floats, everything else as integers.
func IsNumeric(token string) bool {
	if strings.Contains(token, ".") {
		_, err := strconv.ParseFloat(token, 64)
		return err == nil
	}

	_, err := strconv.Atoi(token)
	return err == nil
}

// CountNonNumeric counts the tokens of a phrase that are not numbers.
func CountNonNumeric(words []string) int {
	n := 0
	for _, w := range words {
		if !IsNumeric(w) {
			n++
		}
	}
	return n
}

func RenderPhrase(words []string) string {
	return strings.Join(words, " ")
}

// Truncate cuts s to at most maxLength runes. Blank input yields "Unknown".
func Truncate(s string, maxLength int) string {
	defaultString := "Unknown"

	if strings.TrimSpace(s) == "" {
		return defaultString
	}

	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	return string([]rune(s)[:maxLength])
}
