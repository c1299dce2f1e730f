package text

import (
	"unicode"
	"unicode/utf8"
)

// Wrap splits text into lines no wider than maxWidth as measured by width.
//
// A line may only end right after a non-word rune, so trailing spaces and
// punctuation stay with the word before them and concatenating the result
// gives back text. A word wider than maxWidth is left on a line of its own.
// The result always has at least one element.
func Wrap(text string, maxWidth float64, width func(string) float64) []string {
	var lines []string
	start, prev := 0, 0
	for _, cand := range breakOffsets(text) {
		if width(text[start:cand]) > maxWidth && start < prev {
			lines = append(lines, text[start:prev])
			start = prev
		}
		prev = cand
	}
	return append(lines, text[start:])
}

// breakOffsets returns the byte offsets just after each non-word rune,
// followed by len(text).
func breakOffsets(text string) []int {
	var offsets []int
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		i += n
		if !isWordRune(r) {
			offsets = append(offsets, i)
		}
	}
	if n := len(offsets); n == 0 || offsets[n-1] != len(text) {
		offsets = append(offsets, len(text))
	}
	return offsets
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
