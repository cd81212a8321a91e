package procedures

import (
	"slices"
	"strings"

	"proc-loader/core/proc"
)

// Revert reverses the order of whitespace-delimited words and joins them
// with single spaces.
func Revert() proc.Func {
	return proc.Text(func(s string, _ ...string) string {
		words := strings.Fields(s)
		slices.Reverse(words)
		return strings.Join(words, " ")
	})
}

// Separate splits on whitespace and joins the words with args[0], or a
// single space when the parameter is missing or empty.
func Separate() proc.Func {
	return proc.Text(func(s string, args ...string) string {
		sep := " "
		if len(args) > 0 && args[0] != "" {
			sep = args[0]
		}
		return strings.Join(strings.Fields(s), sep)
	})
}

// Upper converts text to upper case.
func Upper() proc.Func {
	return proc.Text(func(s string, _ ...string) string { return strings.ToUpper(s) })
}

// Lower converts text to lower case.
func Lower() proc.Func {
	return proc.Text(func(s string, _ ...string) string { return strings.ToLower(s) })
}

// Trim removes surrounding whitespace, or the characters in args[0] when given.
func Trim() proc.Func {
	return proc.Text(func(s string, args ...string) string {
		if len(args) > 0 && args[0] != "" {
			return strings.Trim(s, args[0])
		}
		return strings.TrimSpace(s)
	})
}
