// Package textutil provides display helpers for free-form post text.
package textutil

// Ellipsis is the single-rune marker appended to truncated text.
const Ellipsis = '…'

// CutText returns s unchanged when it holds at most n runes; otherwise the
// first n runes followed by the ellipsis marker. Counting runes rather than
// bytes keeps multi-byte text from being split mid-character.
func CutText(s string, n int) string {
	if n < 0 {
		n = 0
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + string(Ellipsis)
}
