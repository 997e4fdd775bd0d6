package matcher

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on whitespace. Punctuation
// surrounding a token is dropped, so "Hello!" yields "hello".
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, unicode.IsPunct)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// windows returns every run of n consecutive tokens joined by a single space.
func windows(tokens []string, n int) []string {
	if n <= 0 || n > len(tokens) {
		return nil
	}
	if n == 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}
