package utils

import (
	"regexp"
	"strconv"
)

var (
	nonDigits  = regexp.MustCompile(`[^\d]`)
	digitRun   = regexp.MustCompile(`(\d+)`)
	percentage = regexp.MustCompile(`(\d+)%`)
)

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// ParseInt parses s as a base-10 integer, returning nil instead of an error
func ParseInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// DigitsOnly drops every non-digit character of text and parses what is left.
// "1,234 global ratings" yields 1234; text without digits yields nil.
func DigitsOnly(text string) *int {
	return ParseInt(nonDigits.ReplaceAllString(text, ""))
}

// FirstNumber parses the first run of digits in text
func FirstNumber(text string) *int {
	m := digitRun.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return ParseInt(m[1])
}

// Percentage parses the first "NN%" figure in text
func Percentage(text string) *int {
	m := percentage.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return ParseInt(m[1])
}
