// Package text holds small string helpers shared by the service and CLI.
package text

import "unicode/utf8"

// CountRunes counts Unicode characters rather than bytes.
//
//	CountRunes("hello")     // 5
//	CountRunes("こんにちは") // 5
//	CountRunes("")          // 0
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens s to at most maxRunes characters, appending "..." when
// anything was cut. It never splits a multi-byte character.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string([]rune(s)[:maxRunes])
	}
	return string([]rune(s)[:maxRunes-3]) + "..."
}
