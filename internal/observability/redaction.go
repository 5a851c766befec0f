// ABOUTME: Redaction of recovered plaintexts before they reach logs
// ABOUTME: Keeps a short prefix hint and masks the rest

package observability

import (
	"strings"
	"unicode/utf8"
)

// RedactionPlaceholder is the replacement text for fully redacted values.
const RedactionPlaceholder = "[REDACTED]"

// RedactCandidate masks a plaintext for logging. Values of four runes or
// fewer are replaced entirely; longer ones keep their first rune.
func RedactCandidate(value string) string {
	n := utf8.RuneCountInString(value)
	if n <= 4 {
		return RedactionPlaceholder
	}
	first, size := utf8.DecodeRuneInString(value)
	if first == utf8.RuneError && size <= 1 {
		return RedactionPlaceholder
	}
	return string(first) + strings.Repeat("*", n-1)
}

// MaybeRedact returns value unchanged when reveal is set, otherwise redacted.
func MaybeRedact(value string, reveal bool) string {
	if reveal {
		return value
	}
	return RedactCandidate(value)
}
