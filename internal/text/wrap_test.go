package text

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"
)

// runeWidth measures every rune as 5 points wide.
func runeWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 5
}

func TestWrapExamples(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "Hello World", 100, []string{"Hello World"}},
		{"two words", "Hello World", 30, []string{"Hello ", "World"}},
		{"overflowing word", "Supercalifragilistic is long", 40, []string{"Supercalifragilistic ", "is long"}},
		{"punctuation stays", "one, two, three", 25, []string{"one, ", "two, ", "three"}},
		{"zero width", "a b c", 0, []string{"a ", "b ", "c"}},
		{"underscore joins", "snake_case_word x", 20, []string{"snake_case_word ", "x"}},
		{"only spaces", "     ", 10, []string{"  ", "  ", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.maxWidth, runeWidth)
			if len(got) != len(tt.want) {
				t.Fatalf("Wrap(%q) = %q, want %q", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Wrap(%q) = %q, want %q", tt.text, got, tt.want)
				}
			}
		})
	}
}

func TestWrapProperties(t *testing.T) {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "é", "naïve", "x_y", "1234567890", "a-b", "Ωmega"}
	seps := []string{" ", ", ", ". ", "-", "  ", "/"}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		n := 1 + rng.Intn(12)
		for j := 0; j < n; j++ {
			b.WriteString(words[rng.Intn(len(words))])
			if j < n-1 || rng.Intn(2) == 0 {
				b.WriteString(seps[rng.Intn(len(seps))])
			}
		}
		text := b.String()
		maxWidth := float64(rng.Intn(120))

		lines := Wrap(text, maxWidth, runeWidth)
		if got := strings.Join(lines, ""); got != text {
			t.Fatalf("lines %q do not reconstruct %q", lines, text)
		}

		offset := 0
		for k, line := range lines {
			if line == "" {
				t.Fatalf("empty line %d in %q for %q", k, lines, text)
			}
			offset += len(line)
			if k == len(lines)-1 {
				continue
			}
			last, _ := utf8.DecodeLastRuneInString(line)
			if isWordRune(last) {
				t.Fatalf("line %q of %q ends inside a word", line, text)
			}
			if runeWidth(line) > maxWidth && strings.IndexFunc(strings.TrimRightFunc(line, func(r rune) bool { return !isWordRune(r) }), func(r rune) bool { return !isWordRune(r) }) >= 0 {
				t.Fatalf("line %q is wider than %v but holds more than one word", line, maxWidth)
			}
		}
		if offset != len(text) {
			t.Fatalf("consumed %d bytes of %d", offset, len(text))
		}

		wide := Wrap(text, runeWidth(text), runeWidth)
		if len(wide) != 1 {
			t.Fatalf("Wrap at full width gave %d lines for %q", len(wide), text)
		}
	}
}

func TestWrapInvalidUTF8(t *testing.T) {
	text := "ab\xffcd ef"
	lines := Wrap(text, 5, func(s string) float64 { return float64(len(s)) })
	if got := strings.Join(lines, ""); got != text {
		t.Fatalf("lines %q do not reconstruct input", lines)
	}
}
